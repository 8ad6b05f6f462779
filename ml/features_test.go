package ml

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureNamesOrder(t *testing.T) {
	expected := []string{
		"Age", "Gender", "Ethnicity", "ParentalEducation", "StudyTimeWeekly", "Absences",
		"Tutoring", "ParentalSupport", "Extracurricular", "Sports", "Music", "Volunteering",
	}
	assert.Equal(t, expected, FeatureNames())

	names := FeatureNames()
	names[0] = "changed"
	assert.Equal(t, "Age", FeatureNames()[0], "FeatureNames must return a copy")
}

func TestBuildFeatureVectorOrder(t *testing.T) {
	vector, err := BuildFeatureVector(sampleInputs())
	require.NoError(t, err)

	expected := FeatureVector{17, 1, 2, 3, 12, 3, 1, 3, 0, 1, 0, 1}
	assert.Equal(t, expected, vector)
}

func TestBuildFeatureVectorPreservesOrderForAllInputs(t *testing.T) {
	count := 0
	allValidInputs(func(in StudentInputs) {
		count++
		vector, err := BuildFeatureVector(in)
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", in, err)
		}
		if len(vector.Slice()) != FeatureCount {
			t.Fatalf("unexpected vector length: %d", len(vector.Slice()))
		}
		checks := map[int]float64{
			IdxAge:               float64(AgeRange.Clamp(in.Age)),
			IdxGender:            float64(in.Gender),
			IdxEthnicity:         float64(in.Ethnicity),
			IdxParentalEducation: float64(in.ParentalEducation),
			IdxStudyTimeWeekly:   float64(StudyTimeRange.Clamp(in.StudyTimeWeekly)),
			IdxAbsences:          float64(AbsencesRange.Clamp(in.Absences)),
			IdxTutoring:          float64(in.Tutoring),
			IdxParentalSupport:   float64(in.ParentalSupport),
			IdxExtracurricular:   float64(in.Extracurricular),
			IdxSports:            float64(in.Sports),
			IdxMusic:             float64(in.Music),
			IdxVolunteering:      float64(in.Volunteering),
		}
		for idx, want := range checks {
			if vector[idx] != want {
				t.Fatalf("slot %d (%s): got %v want %v", idx, featureNames[idx], vector[idx], want)
			}
		}
	})
	require.Greater(t, count, 0)
}

func TestBuildFeatureVectorDomainClosure(t *testing.T) {
	categorical := []int{IdxGender, IdxEthnicity, IdxParentalEducation, IdxTutoring, IdxParentalSupport,
		IdxExtracurricular, IdxSports, IdxMusic, IdxVolunteering}
	limits := map[int]int{
		IdxGender: int(genderCount), IdxEthnicity: int(ethnicityCount),
		IdxParentalEducation: int(parentalEducationCount), IdxParentalSupport: int(parentalSupportCount),
		IdxTutoring: int(yesNoCount), IdxExtracurricular: int(yesNoCount), IdxSports: int(yesNoCount),
		IdxMusic: int(yesNoCount), IdxVolunteering: int(yesNoCount),
	}
	allValidInputs(func(in StudentInputs) {
		vector, err := BuildFeatureVector(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, idx := range categorical {
			code := vector[idx]
			if code < 0 || code >= float64(limits[idx]) || code != math.Trunc(code) {
				t.Fatalf("slot %d holds code %v outside its enumeration", idx, code)
			}
		}
	})
}

func TestBuildFeatureVectorRejectsInvalidCodes(t *testing.T) {
	cases := map[string]func(*StudentInputs){
		"gender":             func(in *StudentInputs) { in.Gender = 2 },
		"ethnicity":          func(in *StudentInputs) { in.Ethnicity = 4 },
		"parental education": func(in *StudentInputs) { in.ParentalEducation = -1 },
		"parental support":   func(in *StudentInputs) { in.ParentalSupport = 5 },
		"tutoring":           func(in *StudentInputs) { in.Tutoring = 2 },
		"volunteering":       func(in *StudentInputs) { in.Volunteering = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := sampleInputs()
			mutate(&in)
			_, err := BuildFeatureVector(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCategoricalCode), "got %v", err)
		})
	}
}

func TestBuildFeatureVectorClampsNumericRanges(t *testing.T) {
	in := sampleInputs()
	in.Age, in.StudyTimeWeekly, in.Absences = 10, 50, -3

	vector, err := BuildFeatureVector(in)
	require.NoError(t, err)
	assert.Equal(t, 15.0, vector[IdxAge])
	assert.Equal(t, 20.0, vector[IdxStudyTimeWeekly])
	assert.Equal(t, 0.0, vector[IdxAbsences])
}

func TestCategoryLabelsAreTotal(t *testing.T) {
	for g := Gender(0); g < genderCount; g++ {
		assert.NotEmpty(t, g.String())
	}
	for e := Ethnicity(0); e < ethnicityCount; e++ {
		assert.NotEmpty(t, e.String())
	}
	for p := ParentalEducation(0); p < parentalEducationCount; p++ {
		assert.NotEmpty(t, p.String())
	}
	for p := ParentalSupport(0); p < parentalSupportCount; p++ {
		assert.NotEmpty(t, p.String())
	}
	for y := YesNo(0); y < yesNoCount; y++ {
		assert.NotEmpty(t, y.String())
	}
	assert.Equal(t, "African American", EthnicityAfricanAmerican.String())
	assert.Equal(t, "Very High", ParentalSupportVeryHigh.String())
	assert.Equal(t, "Unknown", Gender(7).String())
	assert.False(t, Gender(7).Valid())
}

func TestSchemaMatchesFeatureOrder(t *testing.T) {
	fields := Schema()
	require.Len(t, fields, FeatureCount)
	for i, field := range fields {
		assert.Equal(t, i, field.Index)
		assert.Equal(t, featureNames[i], field.Name)
		assert.NotEmpty(t, field.Key)
	}
	assert.Equal(t, &AgeRange, fields[IdxAge].Range)
	assert.Len(t, fields[IdxEthnicity].Choices, 4)
}

func TestInputsFromValuesRoundTrip(t *testing.T) {
	in := sampleInputs()
	out, err := InputsFromValues(in.Values())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestInputsFromValuesErrors(t *testing.T) {
	values := sampleInputs().Values()
	delete(values, "music")
	_, err := InputsFromValues(values)
	assert.ErrorIs(t, err, ErrMissingField)

	values = sampleInputs().Values()
	values["age"] = 16.5
	_, err = InputsFromValues(values)
	assert.ErrorIs(t, err, ErrInvalidValue)

	values = sampleInputs().Values()
	values["absences"] = math.NaN()
	_, err = InputsFromValues(values)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
