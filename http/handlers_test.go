package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"gpapredict/ml"
)

type stubSource struct {
	runtime *ml.Runtime
	err     error
}

func (s stubSource) Current() (*ml.Runtime, error) {
	if s.runtime == nil && s.err == nil {
		return nil, ml.ErrArtifactMissing
	}
	return s.runtime, s.err
}

type failingModel struct{}

func (failingModel) Width() int { return ml.FeatureCount }

func (failingModel) Predict(features []float64) (float64, error) {
	return 0, fmt.Errorf("%w: model expects 11 features, got 12", ml.ErrShapeMismatch)
}

// constantRuntime predicts gpa for every input.
func constantRuntime(t *testing.T, gpa float64) *ml.Runtime {
	t.Helper()
	runtime, err := ml.NewRuntime(ml.IdentityScaler{N: ml.FeatureCount}, &ml.LinearRegressor{Coef: make([]float64, ml.FeatureCount), Intercept: gpa}, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return runtime
}

func newTestHandler(source RuntimeSource) http.Handler {
	mux := http.NewServeMux()
	NewHandler(source, nil, zap.NewNop(), HandlerOptions{}).Register(mux)
	return mux
}

func validValues() map[string]float64 {
	return map[string]float64{
		"age":                17,
		"gender":             1,
		"ethnicity":          2,
		"parental_education": 3,
		"study_time_weekly":  12,
		"absences":           3,
		"tutoring":           1,
		"parental_support":   3,
		"extracurricular":    1,
		"sports":             0,
		"music":              1,
		"volunteering":       0,
	}
}

func TestHealthHandler(t *testing.T) {
	handler := newTestHandler(stubSource{runtime: constantRuntime(t, 3.0)})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["status"] != "ok" || payload["source"] != "test" {
		t.Fatalf("unexpected body: %v", payload)
	}
}

func TestHealthHandlerArtifactMissing(t *testing.T) {
	handler := newTestHandler(stubSource{err: fmt.Errorf("%w: models/gpa_scaler.json", ml.ErrArtifactMissing)})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "artifact_missing") {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}

func TestSchemaHandler(t *testing.T) {
	handler := newTestHandler(stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/schema", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var payload struct {
		Features []ml.Field `json:"features"`
		Count    int        `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Count != ml.FeatureCount || len(payload.Features) != ml.FeatureCount {
		t.Fatalf("expected %d features, got %d/%d", ml.FeatureCount, payload.Count, len(payload.Features))
	}
	names := ml.FeatureNames()
	for i, field := range payload.Features {
		if field.Name != names[i] {
			t.Fatalf("feature %d: expected %s, got %s", i, names[i], field.Name)
		}
	}
}

func TestIndexRendersForm(t *testing.T) {
	handler := newTestHandler(stubSource{runtime: constantRuntime(t, 3.0)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Demographics &amp; Education", "Activities &amp; Support", `name="study_time_weekly"`, "Predict Student GPA"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
}

func TestIndexHaltsWithoutArtifacts(t *testing.T) {
	handler := newTestHandler(stubSource{err: fmt.Errorf("%w: models/student_gpa_model.json", ml.ErrArtifactMissing)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Model or scaler files could not be loaded") {
		t.Fatalf("expected error banner, got %s", body)
	}
	if strings.Contains(body, "<form") {
		t.Fatal("form must not render without artifacts")
	}
}

func TestSubmitForm(t *testing.T) {
	handler := newTestHandler(stubSource{runtime: constantRuntime(t, 3.8)})

	form := url.Values{}
	for key, value := range validValues() {
		form.Set(key, fmt.Sprint(value))
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Predicted GPA: 3.80") {
		t.Fatalf("expected formatted GPA, got %s", body)
	}
	if !strings.Contains(body, ml.TierExcellent.Message()) {
		t.Fatal("expected excellent message")
	}
	if !strings.Contains(body, `<progress value="0.95"`) {
		t.Fatal("expected progress at 0.95")
	}
}

func TestSubmitFormInvalidNumber(t *testing.T) {
	handler := newTestHandler(stubSource{runtime: constantRuntime(t, 3.0)})

	form := url.Values{"age": {"seventeen"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestValuesFromForm(t *testing.T) {
	values, err := valuesFromForm(url.Values{"age": {" 16 "}, "unknown": {"1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 1 || values["age"] != 16 {
		t.Fatalf("unexpected values: %v", values)
	}

	if _, err := valuesFromForm(url.Values{"gender": {"x"}}); !errors.Is(err, ml.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestFormatGPALocale(t *testing.T) {
	h := NewHandler(stubSource{}, nil, nil, HandlerOptions{Locale: "de"})
	if got := h.formatGPA(3.456); got != "3,46" {
		t.Fatalf("expected 3,46, got %s", got)
	}
	h = NewHandler(stubSource{}, nil, nil, HandlerOptions{Locale: "not a locale"})
	if got := h.formatGPA(3.456); got != "3.46" {
		t.Fatalf("expected 3.46, got %s", got)
	}
}
