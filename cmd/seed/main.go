package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stunite/backend/internal/config"
	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/infrastructure/database"
	"github.com/stunite/backend/internal/usecase/onboarding"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the users table with fake onboarded students for local development.
func main() {
	count := flag.Int("count", 25, "number of fake profiles to insert")
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	ctx := context.Background()
	inserted := 0
	for i := 0; i < *count; i++ {
		user := fakeStudent(string(hash))
		query := `
			INSERT INTO users (unique_id, username, email, password_hash, age, gender,
			                   year_of_study, major, origin, residency, clubs, questions,
			                   social_media, likers, onboarding_complete)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, '{}', TRUE)
			ON CONFLICT DO NOTHING
		`
		_, err := db.ExecContext(ctx, query,
			user.UniqueID, user.Username, user.Email, user.PasswordHash,
			user.Age, user.Gender, user.YearOfStudy, user.Major, user.Origin,
			user.Residency, user.Clubs, user.Questions, user.SocialMedia,
		)
		if err != nil {
			log.Printf("Failed to insert %s: %v", user.Username, err)
			continue
		}
		inserted++
	}

	fmt.Printf("Seeded %d fake profiles\n", inserted)
}

func fakeStudent(passwordHash string) *domain.User {
	username := strings.ToLower(gofakeit.Username())
	if len(username) > 20 {
		username = username[:20]
	}
	age := gofakeit.Number(17, 28)
	gender := gofakeit.RandomString(onboarding.GenderOptions)
	year := gofakeit.RandomString(onboarding.YearOfStudyOptions)
	major := gofakeit.RandomString(onboarding.PopularMajors)
	origin := gofakeit.RandomString(onboarding.PopularCountries)
	residency := gofakeit.City()
	contact := "https://instagram.com/" + username

	questions := domain.QuestionMap{}
	for _, prompt := range pickPrompts(3) {
		questions[prompt] = gofakeit.Sentence(8)
	}

	return &domain.User{
		UniqueID:     uuid.NewString(),
		Username:     username,
		Email:        fmt.Sprintf("%s@stonybrook.edu", username),
		PasswordHash: passwordHash,
		Age:          &age,
		Gender:       &gender,
		YearOfStudy:  &year,
		Major:        &major,
		Origin:       &origin,
		Residency:    &residency,
		Clubs:        pq.StringArray{gofakeit.Hobby(), gofakeit.Hobby()},
		Questions:    questions,
		SocialMedia:  &contact,
	}
}

func pickPrompts(n int) []string {
	pool := append([]string(nil), onboarding.QuestionPool...)
	gofakeit.ShuffleStrings(pool)
	return pool[:n]
}
