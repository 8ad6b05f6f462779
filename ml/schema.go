package ml

// ControlKind names the input control a field is collected with.
type ControlKind string

const (
	ControlNumber ControlKind = "number"
	ControlSlider ControlKind = "slider"
	ControlSelect ControlKind = "select"
	ControlToggle ControlKind = "toggle"
)

// Field describes one slot of the feature vector as the form presents it.
type Field struct {
	Index   int         `json:"index"`
	Name    string      `json:"name"`
	Key     string      `json:"key"`
	Label   string      `json:"label"`
	Control ControlKind `json:"control"`
	Range   *IntRange   `json:"range,omitempty"`
	Choices []Choice    `json:"choices,omitempty"`
	Default int         `json:"default"`
	Section string      `json:"section"`
}

const (
	sectionDemographics = "Demographics & Education"
	sectionActivities   = "Activities & Support"
)

// Schema returns the twelve fields in feature-vector order.
func Schema() []Field {
	defaults := DefaultInputs()
	ranged := func(r IntRange) *IntRange { return &r }

	fields := []Field{
		{Index: IdxAge, Key: "age", Label: "Age", Control: ControlNumber, Range: ranged(AgeRange), Default: defaults.Age, Section: sectionDemographics},
		{Index: IdxGender, Key: "gender", Label: "Gender", Control: ControlSelect, Choices: Gender(0).Choices(), Section: sectionDemographics},
		{Index: IdxEthnicity, Key: "ethnicity", Label: "Ethnicity", Control: ControlSelect, Choices: Ethnicity(0).Choices(), Section: sectionDemographics},
		{Index: IdxParentalEducation, Key: "parental_education", Label: "Parental Education", Control: ControlSelect, Choices: ParentalEducation(0).Choices(), Section: sectionDemographics},
		{Index: IdxStudyTimeWeekly, Key: "study_time_weekly", Label: "Weekly Study Time (hours)", Control: ControlSlider, Range: ranged(StudyTimeRange), Default: defaults.StudyTimeWeekly, Section: sectionDemographics},
		{Index: IdxAbsences, Key: "absences", Label: "Absences (days missed)", Control: ControlSlider, Range: ranged(AbsencesRange), Default: defaults.Absences, Section: sectionDemographics},
		{Index: IdxTutoring, Key: "tutoring", Label: "Tutoring", Control: ControlToggle, Choices: YesNo(0).Choices(), Section: sectionActivities},
		{Index: IdxParentalSupport, Key: "parental_support", Label: "Parental Support", Control: ControlSelect, Choices: ParentalSupport(0).Choices(), Section: sectionActivities},
		{Index: IdxExtracurricular, Key: "extracurricular", Label: "Extracurricular Activities", Control: ControlToggle, Choices: YesNo(0).Choices(), Section: sectionActivities},
		{Index: IdxSports, Key: "sports", Label: "Sports", Control: ControlToggle, Choices: YesNo(0).Choices(), Section: sectionActivities},
		{Index: IdxMusic, Key: "music", Label: "Music", Control: ControlToggle, Choices: YesNo(0).Choices(), Section: sectionActivities},
		{Index: IdxVolunteering, Key: "volunteering", Label: "Volunteering", Control: ControlToggle, Choices: YesNo(0).Choices(), Section: sectionActivities},
	}
	for i := range fields {
		fields[i].Name = featureNames[fields[i].Index]
	}
	return fields
}

// Values returns the inputs keyed by schema field key, the inverse of InputsFromValues.
func (in StudentInputs) Values() map[string]float64 {
	return map[string]float64{
		"age":                float64(in.Age),
		"gender":             float64(in.Gender),
		"ethnicity":          float64(in.Ethnicity),
		"parental_education": float64(in.ParentalEducation),
		"study_time_weekly":  float64(in.StudyTimeWeekly),
		"absences":           float64(in.Absences),
		"tutoring":           float64(in.Tutoring),
		"parental_support":   float64(in.ParentalSupport),
		"extracurricular":    float64(in.Extracurricular),
		"sports":             float64(in.Sports),
		"music":              float64(in.Music),
		"volunteering":       float64(in.Volunteering),
	}
}
