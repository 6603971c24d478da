package onboarding

type StepKey string

const (
	StepUsername    StepKey = "username"
	StepAge         StepKey = "age"
	StepGender      StepKey = "gender"
	StepMajor       StepKey = "major"
	StepOrigin      StepKey = "origin"
	StepResidency   StepKey = "residency"
	StepYearOfStudy StepKey = "year_of_study"
	StepClubs       StepKey = "clubs"
	StepQuestions   StepKey = "questions"
	StepSocialMedia StepKey = "social_media"
)

type StepType string

const (
	TypeInput     StepType = "input"
	TypeSelect    StepType = "select"
	TypeTags      StepType = "tags"
	TypeQuestions StepType = "questions"
	TypeContact   StepType = "contact"
)

type Step struct {
	Key     StepKey  `json:"key"`
	Label   string   `json:"label"`
	Type    StepType `json:"type"`
	Options []string `json:"options,omitempty"`
}

var GenderOptions = []string{"Male", "Female", "Other"}

var YearOfStudyOptions = []string{"Freshman", "Sophomore", "Junior", "Senior", "Graduate"}

var ContactChoices = []string{"Email", "Instagram", "Snapchat"}

// Steps is the ordered onboarding sequence. Next advances through it one at a
// time; the terminal step triggers the batched profile write.
var Steps = []Step{
	{Key: StepUsername, Label: "Enter your username", Type: TypeInput},
	{Key: StepAge, Label: "Enter your age", Type: TypeInput},
	{Key: StepGender, Label: "Select your gender", Type: TypeSelect, Options: GenderOptions},
	{Key: StepMajor, Label: "Enter your major", Type: TypeInput},
	{Key: StepOrigin, Label: "Enter your origin", Type: TypeInput},
	{Key: StepResidency, Label: "Enter your residency", Type: TypeInput},
	{Key: StepYearOfStudy, Label: "Select your year of study", Type: TypeSelect, Options: YearOfStudyOptions},
	{Key: StepClubs, Label: "Add your clubs", Type: TypeTags},
	{Key: StepQuestions, Label: "Answer three questions", Type: TypeQuestions, Options: QuestionPool},
	{Key: StepSocialMedia, Label: "How should people reach you?", Type: TypeContact, Options: ContactChoices},
}

// QuestionPool is the fixed prompt pool; exactly three must be answered.
var QuestionPool = []string{
	"Who were your top three Spotify artists on Wrapped?",
	"What is your favorite spot on campus?",
	"Which class are you retaking this semester that you find most challenging?",
	"What is one thing you love about your room at home?",
	"Do you consider yourself a night owl or an early riser?",
	"If death were not a concern, what would be the riskiest thing you'd try?",
	"What's the wildest name you've used (or heard) for a group chat?",
	"Which major do you think is the most notorious or overrated?",
	"Can you share your worst roommate experience?",
	"What is your most 'useless' talent?",
}

var PopularMajors = []string{
	"Computer Science", "Business", "Engineering", "Psychology", "Biology",
	"Economics", "Mathematics", "Physics", "Chemistry", "Political Science",
	"Sociology", "English", "History", "Philosophy", "Art", "Music",
	"Education", "Nursing", "Environmental Science", "Geology",
	"Anthropology", "Linguistics",
}

var PopularCountries = []string{
	"United States", "Canada", "United Kingdom", "Australia", "Germany",
	"France", "India", "China", "Brazil", "Japan", "South Korea", "Italy",
	"Spain", "Russia", "Mexico", "Netherlands", "Switzerland", "Sweden",
	"New Zealand", "Norway",
}
