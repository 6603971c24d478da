package onboarding

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/stunite/backend/internal/domain"
	"github.com/stunite/backend/internal/infrastructure/cache"
	"github.com/stunite/backend/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9._-]{3,20}$`)

const (
	minAge          = 16
	maxAge          = 100
	requiredAnswers = 3
	minAnswerLen    = 10
	maxAnswerLen    = 250
	maxClubs        = 10
	maxClubLen      = 50
)

type OnboardingUseCase struct {
	userRepo  repository.UserRepository
	flagCache *cache.OnboardingFlagCache
}

func NewOnboardingUseCase(userRepo repository.UserRepository, flagCache *cache.OnboardingFlagCache) *OnboardingUseCase {
	return &OnboardingUseCase{
		userRepo:  userRepo,
		flagCache: flagCache,
	}
}

// Submission collects every onboarding answer. The same struct backs
// step-local validation and the terminal batched write.
type Submission struct {
	Username          string            `json:"username"`
	Age               int               `json:"age"`
	Gender            string            `json:"gender"`
	Major             string            `json:"major"`
	Origin            string            `json:"origin"`
	Residency         string            `json:"residency"`
	YearOfStudy       string            `json:"year_of_study"`
	Clubs             []string          `json:"clubs"`
	Questions         map[string]string `json:"questions"`
	SocialMediaChoice string            `json:"social_media_choice"`
	SocialMediaHandle string            `json:"social_media_handle"`
}

// Form tracks a caller's position in the step sequence. Next validates the
// current step before advancing; Back retreats without re-validation.
type Form struct {
	StepIndex  int        `json:"step_index"`
	Done       bool       `json:"done"`
	Error      string     `json:"error,omitempty"`
	Submission Submission `json:"submission"`
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) Current() Step {
	return Steps[f.StepIndex]
}

func (f *Form) Back() {
	if f.StepIndex > 0 {
		f.StepIndex--
		f.Error = ""
	}
}

// Next validates the current step and advances; validation failure records the
// step-local error and blocks advancement.
func (uc *OnboardingUseCase) Next(ctx context.Context, uniqueID string, f *Form) error {
	if err := uc.ValidateStep(ctx, uniqueID, f.Current().Key, &f.Submission); err != nil {
		f.Error = err.Error()
		return err
	}
	f.Error = ""
	if f.StepIndex < len(Steps)-1 {
		f.StepIndex++
	} else {
		f.Done = true
	}
	return nil
}

// ValidateStep runs the step-local checks for a single step.
func (uc *OnboardingUseCase) ValidateStep(ctx context.Context, uniqueID string, key StepKey, sub *Submission) error {
	switch key {
	case StepUsername:
		return uc.validateUsername(ctx, uniqueID, sub)
	case StepAge:
		if sub.Age < minAge || sub.Age > maxAge {
			return fmt.Errorf("%w: age must be between %d and %d", domain.ErrInvalidInput, minAge, maxAge)
		}
	case StepGender:
		if !containsFold(GenderOptions, sub.Gender) {
			return fmt.Errorf("%w: select a gender option", domain.ErrInvalidInput)
		}
	case StepMajor:
		if strings.TrimSpace(sub.Major) == "" {
			return fmt.Errorf("%w: major is required", domain.ErrInvalidInput)
		}
	case StepOrigin:
		if strings.TrimSpace(sub.Origin) == "" {
			return fmt.Errorf("%w: origin is required", domain.ErrInvalidInput)
		}
	case StepResidency:
		if strings.TrimSpace(sub.Residency) == "" {
			return fmt.Errorf("%w: residency is required", domain.ErrInvalidInput)
		}
	case StepYearOfStudy:
		if !containsFold(YearOfStudyOptions, sub.YearOfStudy) {
			return fmt.Errorf("%w: select a year of study", domain.ErrInvalidInput)
		}
	case StepClubs:
		return validateClubs(sub.Clubs)
	case StepQuestions:
		return validateQuestions(sub.Questions)
	case StepSocialMedia:
		_, err := NormalizeContact(sub.SocialMediaChoice, sub.SocialMediaHandle, "placeholder@stonybrook.edu")
		return err
	default:
		return fmt.Errorf("%w: unknown step %q", domain.ErrInvalidInput, key)
	}
	return nil
}

func (uc *OnboardingUseCase) validateUsername(ctx context.Context, uniqueID string, sub *Submission) error {
	username := strings.ToLower(strings.TrimSpace(sub.Username))
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: username must be 3-20 characters of a-z, 0-9, '.', '_' or '-'", domain.ErrInvalidInput)
	}
	sub.Username = username

	// Point lookup at the step boundary; the store's unique constraint is
	// the real arbiter under concurrent signups.
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err == domain.ErrUserNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if existing.UniqueID != uniqueID {
		return domain.ErrUsernameTaken
	}
	return nil
}

func validateClubs(clubs []string) error {
	if len(clubs) > maxClubs {
		return fmt.Errorf("%w: at most %d clubs", domain.ErrInvalidInput, maxClubs)
	}
	seen := map[string]bool{}
	for _, club := range clubs {
		club = strings.TrimSpace(club)
		if club == "" || len(club) > maxClubLen {
			return fmt.Errorf("%w: club tags must be 1-%d characters", domain.ErrInvalidInput, maxClubLen)
		}
		if seen[strings.ToLower(club)] {
			return fmt.Errorf("%w: duplicate club %q", domain.ErrInvalidInput, club)
		}
		seen[strings.ToLower(club)] = true
	}
	return nil
}

func validateQuestions(questions map[string]string) error {
	if len(questions) != requiredAnswers {
		return fmt.Errorf("%w: answer exactly %d questions", domain.ErrInvalidInput, requiredAnswers)
	}
	for prompt, answer := range questions {
		if !containsFold(QuestionPool, prompt) {
			return fmt.Errorf("%w: unknown question %q", domain.ErrInvalidInput, prompt)
		}
		if len(answer) < minAnswerLen || len(answer) > maxAnswerLen {
			return fmt.Errorf("%w: answers must be %d-%d characters", domain.ErrInvalidInput, minAnswerLen, maxAnswerLen)
		}
	}
	return nil
}

// NormalizeContact turns the contact-method choice into the stored handle:
// a profile URL for a social network, or the account email for "Email".
func NormalizeContact(choice, handle, email string) (string, error) {
	switch {
	case strings.EqualFold(choice, "Email"):
		return email, nil
	case strings.EqualFold(choice, "Instagram"):
		handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
		if handle == "" {
			return "", fmt.Errorf("%w: instagram handle is required", domain.ErrInvalidInput)
		}
		return "https://instagram.com/" + handle, nil
	case strings.EqualFold(choice, "Snapchat"):
		handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
		if handle == "" {
			return "", fmt.Errorf("%w: snapchat handle is required", domain.ErrInvalidInput)
		}
		return "https://snapchat.com/add/" + handle, nil
	default:
		return "", fmt.Errorf("%w: unknown contact method %q", domain.ErrInvalidInput, choice)
	}
}

// Submit validates every step and performs the single batched write flipping
// onboarding_complete to true. Re-submitting the same data converges to the
// same record; the flag never goes back to false.
func (uc *OnboardingUseCase) Submit(ctx context.Context, uniqueID string, sub *Submission) (*domain.User, error) {
	user, err := uc.userRepo.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		return nil, err
	}

	// Once the flag is set the username is frozen; likers reference it by
	// value, so a rename would orphan every entry. Resubmitting the same
	// name still converges.
	if user.OnboardingComplete && !strings.EqualFold(strings.TrimSpace(sub.Username), user.Username) {
		return nil, fmt.Errorf("%w: username cannot change after onboarding", domain.ErrInvalidInput)
	}

	for _, step := range Steps {
		if err := uc.ValidateStep(ctx, uniqueID, step.Key, sub); err != nil {
			return nil, err
		}
	}

	contact, err := NormalizeContact(sub.SocialMediaChoice, sub.SocialMediaHandle, user.Email)
	if err != nil {
		return nil, err
	}

	user.Username = sub.Username
	user.Age = &sub.Age
	user.Gender = &sub.Gender
	user.YearOfStudy = &sub.YearOfStudy
	user.Major = &sub.Major
	user.Origin = &sub.Origin
	user.Residency = &sub.Residency
	user.Clubs = dedupe(sub.Clubs)
	user.Questions = domain.QuestionMap(sub.Questions)
	user.SocialMedia = &contact

	if err := uc.userRepo.CompleteOnboarding(ctx, user); err != nil {
		return nil, err
	}

	uc.flagCache.Invalidate(ctx, uniqueID)
	return user, nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[strings.ToLower(s)] {
			continue
		}
		seen[strings.ToLower(s)] = true
		out = append(out, s)
	}
	return out
}

func containsFold(options []string, value string) bool {
	for _, o := range options {
		if strings.EqualFold(o, value) {
			return true
		}
	}
	return false
}
