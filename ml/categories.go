package ml

// Each categorical field is a distinct type. The label arrays are sized by the
// trailing count constant so a code without a label fails to compile.

type Gender int

const (
	GenderMale Gender = iota
	GenderFemale
	genderCount
)

var genderLabels = [genderCount]string{
	GenderMale:   "Male",
	GenderFemale: "Female",
}

func (g Gender) Valid() bool { return g >= 0 && g < genderCount }
func (g Gender) String() string { return labelOf(genderLabels[:], int(g)) }
func (g Gender) Choices() []Choice { return choicesOf(genderLabels[:]) }

type Ethnicity int

const (
	EthnicityCaucasian Ethnicity = iota
	EthnicityAfricanAmerican
	EthnicityAsian
	EthnicityOther
	ethnicityCount
)

var ethnicityLabels = [ethnicityCount]string{
	EthnicityCaucasian:       "Caucasian",
	EthnicityAfricanAmerican: "African American",
	EthnicityAsian:           "Asian",
	EthnicityOther:           "Other",
}

func (e Ethnicity) Valid() bool { return e >= 0 && e < ethnicityCount }
func (e Ethnicity) String() string { return labelOf(ethnicityLabels[:], int(e)) }
func (e Ethnicity) Choices() []Choice { return choicesOf(ethnicityLabels[:]) }

// ParentalEducation is ordinal: higher codes mean more education.
type ParentalEducation int

const (
	ParentalEducationNone ParentalEducation = iota
	ParentalEducationHighSchool
	ParentalEducationSomeCollege
	ParentalEducationBachelors
	ParentalEducationHigher
	parentalEducationCount
)

var parentalEducationLabels = [parentalEducationCount]string{
	ParentalEducationNone:        "None",
	ParentalEducationHighSchool:  "High School",
	ParentalEducationSomeCollege: "Some College",
	ParentalEducationBachelors:   "Bachelor's",
	ParentalEducationHigher:      "Higher",
}

func (p ParentalEducation) Valid() bool {
	return p >= 0 && p < parentalEducationCount
}
func (p ParentalEducation) String() string { return labelOf(parentalEducationLabels[:], int(p)) }
func (p ParentalEducation) Choices() []Choice { return choicesOf(parentalEducationLabels[:]) }

// ParentalSupport is ordinal: higher codes mean more support.
type ParentalSupport int

const (
	ParentalSupportNone ParentalSupport = iota
	ParentalSupportLow
	ParentalSupportModerate
	ParentalSupportHigh
	ParentalSupportVeryHigh
	parentalSupportCount
)

var parentalSupportLabels = [parentalSupportCount]string{
	ParentalSupportNone:     "None",
	ParentalSupportLow:      "Low",
	ParentalSupportModerate: "Moderate",
	ParentalSupportHigh:     "High",
	ParentalSupportVeryHigh: "Very High",
}

func (p ParentalSupport) Valid() bool {
	return p >= 0 && p < parentalSupportCount
}
func (p ParentalSupport) String() string { return labelOf(parentalSupportLabels[:], int(p)) }
func (p ParentalSupport) Choices() []Choice { return choicesOf(parentalSupportLabels[:]) }

// YesNo encodes the binary toggles (tutoring and the four activities).
type YesNo int

const (
	No YesNo = iota
	Yes
	yesNoCount
)

var yesNoLabels = [yesNoCount]string{
	No:  "No",
	Yes: "Yes",
}

func (y YesNo) Valid() bool { return y >= 0 && y < yesNoCount }
func (y YesNo) String() string { return labelOf(yesNoLabels[:], int(y)) }
func (y YesNo) Choices() []Choice { return choicesOf(yesNoLabels[:]) }

// Choice is one selectable code of a categorical field.
type Choice struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

func labelOf(labels []string, code int) string {
	if code < 0 || code >= len(labels) {
		return "Unknown"
	}
	return labels[code]
}

func choicesOf(labels []string) []Choice {
	choices := make([]Choice, len(labels))
	for code, label := range labels {
		choices[code] = Choice{Code: code, Label: label}
	}
	return choices
}
