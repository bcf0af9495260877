package registration

// Step is a state of the registration workflow.
type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepBirthDate
	StepCitizenship
	StepAccountSetup
	StepLocationPrompt
	StepSubmitting
	StepSuccess
	StepFailed
)

// formSteps is the number of form pages before the location prompt.
const formSteps = 4

var stepNames = map[Step]string{
	StepPersonalInfo:   "personal_info",
	StepBirthDate:      "birth_date",
	StepCitizenship:    "citizenship",
	StepAccountSetup:   "account_setup",
	StepLocationPrompt: "location_prompt",
	StepSubmitting:     "submitting",
	StepSuccess:        "success",
	StepFailed:         "failed",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}

	return "unknown"
}

// Title is the heading shown for a form step.
func (s Step) Title() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Information"
	case StepBirthDate:
		return "Date of Birth"
	case StepCitizenship:
		return "Citizenship & Education"
	case StepAccountSetup:
		return "Account Setup"
	case StepLocationPrompt:
		return "Share Your Location"
	default:
		return ""
	}
}

// IsFormStep reports whether s is one of the four form pages.
func (s Step) IsFormStep() bool {
	return s >= StepPersonalInfo && s <= StepAccountSetup
}

// Transition records a state change.
type Transition struct {
	From Step
	To   Step
}
