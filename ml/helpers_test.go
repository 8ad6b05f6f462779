package ml

type constantModel struct {
	value float64
	width int
	calls int
}

func (m *constantModel) Width() int { return m.width }

func (m *constantModel) Predict(features []float64) (float64, error) {
	m.calls++
	return m.value, nil
}

// sumModel returns the sum of its inputs so tests can see what the scaler produced.
type sumModel struct{}

func (sumModel) Width() int { return FeatureCount }

func (sumModel) Predict(features []float64) (float64, error) {
	total := 0.0
	for _, v := range features {
		total += v
	}
	return total, nil
}

func identity() IdentityScaler { return IdentityScaler{N: FeatureCount} }

func sampleInputs() StudentInputs {
	return StudentInputs{
		Age:               17,
		Gender:            GenderFemale,
		Ethnicity:         EthnicityAsian,
		ParentalEducation: ParentalEducationBachelors,
		StudyTimeWeekly:   12,
		Absences:          3,
		Tutoring:          Yes,
		ParentalSupport:   ParentalSupportHigh,
		Extracurricular:   No,
		Sports:            Yes,
		Music:             No,
		Volunteering:      Yes,
	}
}

// allValidInputs enumerates every categorical combination with a handful of
// numeric values, including out-of-range ones that must be clamped.
func allValidInputs(visit func(StudentInputs)) {
	numeric := []StudentInputs{
		{Age: 15, StudyTimeWeekly: 0, Absences: 0},
		{Age: 18, StudyTimeWeekly: 20, Absences: 30},
		{Age: 40, StudyTimeWeekly: -5, Absences: 99},
	}
	for _, base := range numeric {
		for g := Gender(0); g < genderCount; g++ {
			for e := Ethnicity(0); e < ethnicityCount; e++ {
				for pe := ParentalEducation(0); pe < parentalEducationCount; pe++ {
					for ps := ParentalSupport(0); ps < parentalSupportCount; ps++ {
						for bits := 0; bits < 32; bits++ {
							in := base
							in.Gender, in.Ethnicity, in.ParentalEducation, in.ParentalSupport = g, e, pe, ps
							in.Tutoring = YesNo(bits & 1)
							in.Extracurricular = YesNo(bits >> 1 & 1)
							in.Sports = YesNo(bits >> 2 & 1)
							in.Music = YesNo(bits >> 3 & 1)
							in.Volunteering = YesNo(bits >> 4 & 1)
							visit(in)
						}
					}
				}
			}
		}
	}
}
