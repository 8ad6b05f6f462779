package ml

import (
	"fmt"
	"math"
)

// FeatureCount is the width every scaler and model must accept.
const FeatureCount = 12

// FeatureVector is the model input in training order. Reordering the slots
// produces wrong predictions without any error, so the indices below are the
// only place the order is defined.
type FeatureVector [FeatureCount]float64

const (
	IdxAge = iota
	IdxGender
	IdxEthnicity
	IdxParentalEducation
	IdxStudyTimeWeekly
	IdxAbsences
	IdxTutoring
	IdxParentalSupport
	IdxExtracurricular
	IdxSports
	IdxMusic
	IdxVolunteering
)

var featureNames = [FeatureCount]string{
	IdxAge:               "Age",
	IdxGender:            "Gender",
	IdxEthnicity:         "Ethnicity",
	IdxParentalEducation: "ParentalEducation",
	IdxStudyTimeWeekly:   "StudyTimeWeekly",
	IdxAbsences:          "Absences",
	IdxTutoring:          "Tutoring",
	IdxParentalSupport:   "ParentalSupport",
	IdxExtracurricular:   "Extracurricular",
	IdxSports:            "Sports",
	IdxMusic:             "Music",
	IdxVolunteering:      "Volunteering",
}

func FeatureNames() []string {
	return append([]string(nil), featureNames[:]...)
}

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// IntRange is an inclusive integer range used for the numeric inputs.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r IntRange) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

var (
	AgeRange       = IntRange{Min: 15, Max: 18}
	StudyTimeRange = IntRange{Min: 0, Max: 20}
	AbsencesRange  = IntRange{Min: 0, Max: 30}
)

// StudentInputs holds the raw values of the twelve form controls.
type StudentInputs struct {
	Age               int
	Gender            Gender
	Ethnicity         Ethnicity
	ParentalEducation ParentalEducation
	StudyTimeWeekly   int
	Absences          int
	Tutoring          YesNo
	ParentalSupport   ParentalSupport
	Extracurricular   YesNo
	Sports            YesNo
	Music             YesNo
	Volunteering      YesNo
}

// DefaultInputs returns the values the form starts with.
func DefaultInputs() StudentInputs {
	return StudentInputs{
		Age:             16,
		StudyTimeWeekly: 10,
		Absences:        5,
	}
}

type validator interface {
	Valid() bool
}

// BuildFeatureVector validates categorical codes, clamps numeric fields to
// their ranges and lays the values out in training order.
func BuildFeatureVector(in StudentInputs) (FeatureVector, error) {
	var v FeatureVector

	categorical := [...]struct {
		idx   int
		value validator
		code  int
	}{
		{IdxGender, in.Gender, int(in.Gender)},
		{IdxEthnicity, in.Ethnicity, int(in.Ethnicity)},
		{IdxParentalEducation, in.ParentalEducation, int(in.ParentalEducation)},
		{IdxTutoring, in.Tutoring, int(in.Tutoring)},
		{IdxParentalSupport, in.ParentalSupport, int(in.ParentalSupport)},
		{IdxExtracurricular, in.Extracurricular, int(in.Extracurricular)},
		{IdxSports, in.Sports, int(in.Sports)},
		{IdxMusic, in.Music, int(in.Music)},
		{IdxVolunteering, in.Volunteering, int(in.Volunteering)},
	}
	for _, c := range categorical {
		if !c.value.Valid() {
			return FeatureVector{}, fmt.Errorf("%w: %s=%d", ErrInvalidCategoricalCode, featureNames[c.idx], c.code)
		}
		v[c.idx] = float64(c.code)
	}

	v[IdxAge] = float64(AgeRange.Clamp(in.Age))
	v[IdxStudyTimeWeekly] = float64(StudyTimeRange.Clamp(in.StudyTimeWeekly))
	v[IdxAbsences] = float64(AbsencesRange.Clamp(in.Absences))
	return v, nil
}

// InputsFromValues maps field keys (see Schema) to StudentInputs. Every field
// must be present and integral; range and enum checks are left to
// BuildFeatureVector.
func InputsFromValues(values map[string]float64) (StudentInputs, error) {
	var codes [FeatureCount]int
	for _, field := range Schema() {
		raw, ok := values[field.Key]
		if !ok {
			return StudentInputs{}, fmt.Errorf("%w: %s", ErrMissingField, field.Key)
		}
		if math.IsNaN(raw) || math.IsInf(raw, 0) || raw != math.Trunc(raw) {
			return StudentInputs{}, fmt.Errorf("%w: %s=%v", ErrInvalidValue, field.Key, raw)
		}
		if raw > math.MaxInt32 || raw < math.MinInt32 {
			return StudentInputs{}, fmt.Errorf("%w: %s=%v", ErrInvalidValue, field.Key, raw)
		}
		codes[field.Index] = int(raw)
	}

	return StudentInputs{
		Age:               codes[IdxAge],
		Gender:            Gender(codes[IdxGender]),
		Ethnicity:         Ethnicity(codes[IdxEthnicity]),
		ParentalEducation: ParentalEducation(codes[IdxParentalEducation]),
		StudyTimeWeekly:   codes[IdxStudyTimeWeekly],
		Absences:          codes[IdxAbsences],
		Tutoring:          YesNo(codes[IdxTutoring]),
		ParentalSupport:   ParentalSupport(codes[IdxParentalSupport]),
		Extracurricular:   YesNo(codes[IdxExtracurricular]),
		Sports:            YesNo(codes[IdxSports]),
		Music:             YesNo(codes[IdxMusic]),
		Volunteering:      YesNo(codes[IdxVolunteering]),
	}, nil
}
