package registration

import (
	"strconv"
	"strings"

	"gaia/internal/client"
	"gaia/internal/domain/validation"
	"gaia/internal/geolocation"
)

// Field names, as used by Update and the error map.
const (
	FieldFirstName                   = "firstName"
	FieldMiddleInitial               = "middleInitial"
	FieldLastName                    = "lastName"
	FieldGender                      = "gender"
	FieldBirthYear                   = "birthYear"
	FieldBirthMonth                  = "birthMonth"
	FieldBirthDay                    = "birthDay"
	FieldGenerationalIdentity        = "generationalIdentity"
	FieldCitizenshipByBirth          = "citizenshipByBirth"
	FieldBirthplaceProvinceState     = "birthplaceProvinceState"
	FieldBirthplaceCity              = "birthplaceCity"
	FieldCitizenshipByNaturalization = "citizenshipByNaturalization"
	FieldEducationLevel              = "educationLevel"
	FieldEmail                       = "email"
	FieldPassword                    = "password"
	FieldConfirmPassword             = "confirmPassword"

	// FieldMessage carries a form-wide error such as a failed submission.
	FieldMessage = "message"
)

// StepFields lists the inputs shown on each form step, in display order.
var StepFields = map[Step][]string{
	StepPersonalInfo: {FieldFirstName, FieldMiddleInitial, FieldLastName, FieldGender},
	StepBirthDate:    {FieldBirthYear, FieldBirthMonth, FieldBirthDay},
	StepCitizenship: {
		FieldCitizenshipByBirth, FieldBirthplaceProvinceState, FieldBirthplaceCity,
		FieldCitizenshipByNaturalization, FieldEducationLevel,
	},
	StepAccountSetup: {FieldEmail, FieldPassword, FieldConfirmPassword},
}

var requiredByStep = map[Step][]string{
	StepPersonalInfo: {FieldFirstName, FieldLastName, FieldGender},
	StepBirthDate:    {FieldBirthYear},
	StepAccountSetup: {FieldEmail, FieldPassword},
}

var requiredMessages = map[string]string{
	FieldFirstName: "First name is required",
	FieldLastName:  "Last name is required",
	FieldGender:    "Gender is required",
	FieldBirthYear: "Birth year is required",
	FieldEmail:     "Email is required",
	FieldPassword:  "Password is required",
}

// Form holds the raw input, one string per field.
type Form struct {
	FirstName                   string
	MiddleInitial               string
	LastName                    string
	Gender                      string
	BirthYear                   string
	BirthMonth                  string
	BirthDay                    string
	GenerationalIdentity        string
	CitizenshipByBirth          string
	BirthplaceProvinceState     string
	BirthplaceCity              string
	CitizenshipByNaturalization string
	EducationLevel              string
	Email                       string
	Password                    string
	ConfirmPassword             string
}

func (f *Form) field(name string) (*string, bool) {
	switch name {
	case FieldFirstName:
		return &f.FirstName, true
	case FieldMiddleInitial:
		return &f.MiddleInitial, true
	case FieldLastName:
		return &f.LastName, true
	case FieldGender:
		return &f.Gender, true
	case FieldBirthYear:
		return &f.BirthYear, true
	case FieldBirthMonth:
		return &f.BirthMonth, true
	case FieldBirthDay:
		return &f.BirthDay, true
	case FieldGenerationalIdentity:
		return &f.GenerationalIdentity, true
	case FieldCitizenshipByBirth:
		return &f.CitizenshipByBirth, true
	case FieldBirthplaceProvinceState:
		return &f.BirthplaceProvinceState, true
	case FieldBirthplaceCity:
		return &f.BirthplaceCity, true
	case FieldCitizenshipByNaturalization:
		return &f.CitizenshipByNaturalization, true
	case FieldEducationLevel:
		return &f.EducationLevel, true
	case FieldEmail:
		return &f.Email, true
	case FieldPassword:
		return &f.Password, true
	case FieldConfirmPassword:
		return &f.ConfirmPassword, true
	default:
		return nil, false
	}
}

// Value returns the current input for a field name, or "" for an unknown name.
func (f Form) Value(name string) string {
	if p, ok := f.field(name); ok {
		return *p
	}

	return ""
}

func (f *Form) values(names []string) map[string]any {
	out := make(map[string]any, len(names))
	for _, name := range names {
		out[name] = f.Value(name)
	}

	return out
}

// validateStep applies the required-field and format rules of one step.
func (f *Form) validateStep(step Step, policy validation.PasswordPolicy, errs map[string]string) {
	result := validation.RequiredFieldsPresent(f.values(requiredByStep[step]), requiredByStep[step])
	for _, name := range result.MissingFields {
		errs[name] = requiredMessages[name]
	}

	switch step {
	case StepPersonalInfo:
		if _, missing := errs[FieldGender]; !missing && f.Gender != "Male" && f.Gender != "Female" {
			errs[FieldGender] = "Please select a gender"
		}
	case StepBirthDate:
		if _, missing := errs[FieldBirthYear]; !missing {
			if year, err := strconv.Atoi(strings.TrimSpace(f.BirthYear)); err != nil || year <= 0 {
				errs[FieldBirthYear] = "Birth year must be a number"
			}
		}
	case StepAccountSetup:
		if _, missing := errs[FieldEmail]; !missing && !validation.IsValidEmail(f.Email) {
			errs[FieldEmail] = "Please enter a valid email address"
		}
		if _, missing := errs[FieldPassword]; !missing && !policy.Allows(f.Password) {
			errs[FieldPassword] = "Password does not meet requirements"
		}
		if f.Password != f.ConfirmPassword {
			errs[FieldConfirmPassword] = "Passwords do not match"
		}
	}
}

// request flattens the form for the registration call. The confirmation field is not sent.
func (f *Form) request(sample *geolocation.Sample) *client.RegisterRequest {
	req := &client.RegisterRequest{
		FirstName:                   strings.TrimSpace(f.FirstName),
		MiddleInitial:               strings.TrimSpace(f.MiddleInitial),
		LastName:                    strings.TrimSpace(f.LastName),
		Gender:                      f.Gender,
		BirthYear:                   atoi(f.BirthYear),
		BirthMonth:                  atoi(f.BirthMonth),
		BirthDay:                    atoi(f.BirthDay),
		GenerationalIdentity:        f.GenerationalIdentity,
		CitizenshipByBirth:          strings.TrimSpace(f.CitizenshipByBirth),
		BirthplaceProvinceState:     strings.TrimSpace(f.BirthplaceProvinceState),
		BirthplaceCity:              strings.TrimSpace(f.BirthplaceCity),
		CitizenshipByNaturalization: strings.TrimSpace(f.CitizenshipByNaturalization),
		EducationLevel:              f.EducationLevel,
		Email:                       validation.NormalizeEmail(f.Email),
		Password:                    f.Password,
	}
	if sample != nil {
		ts := sample.Timestamp
		req.Location = &client.Location{
			Latitude:  sample.Latitude,
			Longitude: sample.Longitude,
			Accuracy:  sample.Accuracy,
			Timestamp: &ts,
		}
	}

	return req
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}

	return n
}
