package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// User is a single profile record. unique_id is the stable correlation key
// between the auth side (email/password, sessions) and the profile side; the
// username starts out equal to unique_id and is replaced during onboarding.
type User struct {
	UniqueID           string         `json:"unique_id" db:"unique_id"`
	Username           string         `json:"username" db:"username"`
	Email              string         `json:"email" db:"email"`
	PasswordHash       string         `json:"-" db:"password_hash"`
	Age                *int           `json:"age" db:"age"`
	Gender             *string        `json:"gender" db:"gender"`
	YearOfStudy        *string        `json:"year_of_study" db:"year_of_study"`
	Major              *string        `json:"major" db:"major"`
	Origin             *string        `json:"origin" db:"origin"`
	Residency          *string        `json:"residency" db:"residency"`
	Clubs              pq.StringArray `json:"clubs" db:"clubs"`
	Questions          QuestionMap    `json:"questions" db:"questions"`
	SocialMedia        *string        `json:"social_media" db:"social_media"`
	AvatarLink         *string        `json:"avatar_link" db:"avatar_link"`
	Likers             pq.StringArray `json:"likers,omitempty" db:"likers"`
	OnboardingComplete bool           `json:"onboarding_complete" db:"onboarding_complete"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

// IsOwner reports whether the session identifier owns this record.
func (u *User) IsOwner(sessionID string) bool {
	return sessionID != "" && sessionID == u.UniqueID
}

func (u *User) HasLiker(username string) bool {
	for _, l := range u.Likers {
		if l == username {
			return true
		}
	}
	return false
}

// ContactHandle returns the handle to include in a like notification,
// falling back to the account email when onboarding never set one.
func (u *User) ContactHandle() string {
	if u.SocialMedia != nil && *u.SocialMedia != "" {
		return *u.SocialMedia
	}
	return u.Email
}

// QuestionMap maps a fixed prompt string to the user's free-text answer.
// Stored as a jsonb column.
type QuestionMap map[string]string

func (q QuestionMap) Value() (driver.Value, error) {
	if q == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(q)
}

func (q *QuestionMap) Scan(src interface{}) error {
	if src == nil {
		*q = QuestionMap{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into QuestionMap", src)
	}
	if len(b) == 0 {
		*q = QuestionMap{}
		return nil
	}
	return json.Unmarshal(b, q)
}
