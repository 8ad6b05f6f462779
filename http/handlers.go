package http

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gpapredict/ml"
	"gpapredict/monitoring"
)

// RuntimeSource yields the loaded runtime or the error that prevented
// loading it.
type RuntimeSource interface {
	Current() (*ml.Runtime, error)
}

// HandlerOptions holds presentation settings.
type HandlerOptions struct {
	Locale string
	Title  string
}

// Handler serves every route. It holds no per-request state.
type Handler struct {
	source   RuntimeSource
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	printer  *message.Printer
	title    string
	page     *template.Template
	upgrader websocket.Upgrader
}

func NewHandler(source RuntimeSource, metrics *monitoring.Metrics, logger *zap.Logger, opts HandlerOptions) *Handler {
	if metrics == nil {
		metrics, _ = monitoring.NewMetrics("", "")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	title := opts.Title
	if title == "" {
		title = "Student GPA Predictor"
	}
	return &Handler{
		source:  source,
		metrics: metrics,
		logger:  logger,
		printer: message.NewPrinter(parseLocale(opts.Locale)),
		title:   title,
		page:    template.Must(template.New("index").Parse(pageTemplate)),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /{$}", h.handleSubmit)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/schema", h.handleSchema)
	mux.HandleFunc("GET /api/metrics", h.handleMetrics)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
	mux.HandleFunc("GET /api/ws/predict", h.handleLivePredict)
}

type predictionResponse struct {
	GPA       float64 `json:"gpa"`
	GPAText   string  `json:"gpa_text"`
	Display   float64 `json:"display"`
	Tier      ml.Tier `json:"tier"`
	Message   string  `json:"message"`
	Celebrate bool    `json:"celebrate"`
	Warn      bool    `json:"warn"`
}

type errorResponse struct {
	Error string `json:"error"`
	Class string `json:"class"`
}

// predict runs one request/response cycle. The runtime is checked first so a
// missing artifact never reaches input handling or the model.
func (h *Handler) predict(values map[string]float64) (*predictionResponse, error) {
	start := time.Now()
	result, err := h.run(values)
	if err != nil {
		h.metrics.RecordError(err)
		return nil, err
	}
	h.metrics.RecordPrediction(result.Tier, time.Since(start))
	return h.newResponse(result), nil
}

func (h *Handler) run(values map[string]float64) (ml.PredictionResult, error) {
	runtime, err := h.source.Current()
	if err != nil {
		return ml.PredictionResult{}, err
	}
	inputs, err := ml.InputsFromValues(values)
	if err != nil {
		return ml.PredictionResult{}, err
	}
	return runtime.Predict(inputs)
}

func (h *Handler) newResponse(result ml.PredictionResult) *predictionResponse {
	return &predictionResponse{
		GPA:       result.GPA,
		GPAText:   h.formatGPA(result.GPA),
		Display:   result.Display,
		Tier:      result.Tier,
		Message:   result.Tier.Message(),
		Celebrate: result.Tier.Celebrate(),
		Warn:      result.Tier.Warn(),
	}
}

func (h *Handler) formatGPA(gpa float64) string {
	return h.printer.Sprintf("%.2f", gpa)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	runtime, err := h.source.Current()
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": monitoring.ErrorClass(err),
			"error":  err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"source":    runtime.Source(),
		"loaded_at": runtime.LoadedAt(),
	})
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"features": ml.Schema(),
		"count":    ml.FeatureCount,
		"thresholds": map[string]float64{
			"excellent":     ml.ExcellentThreshold,
			"needs_support": ml.SupportThreshold,
			"max_gpa":       ml.MaxGPA,
		},
	})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.metrics.Snapshot())
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var values map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		h.writeError(w, fmt.Errorf("%w: request body: %v", ml.ErrInvalidValue, err))
		return
	}

	response, err := h.predict(values)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	respondJSON(w, statusFor(err), errorResponse{Error: err.Error(), Class: monitoring.ErrorClass(err)})
}

func statusFor(err error) int {
	switch monitoring.ErrorClass(err) {
	case monitoring.ErrorArtifactMissing:
		return http.StatusServiceUnavailable
	case monitoring.ErrorInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// handleLivePredict answers each JSON inputs message with a prediction, so
// the page can update as controls move.
func (h *Handler) handleLivePredict(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		var reply interface{}
		var values map[string]float64
		if err := json.Unmarshal(data, &values); err != nil {
			err = fmt.Errorf("%w: message: %v", ml.ErrInvalidValue, err)
			reply = errorResponse{Error: err.Error(), Class: monitoring.ErrorClass(err)}
		} else if response, err := h.predict(values); err != nil {
			reply = errorResponse{Error: err.Error(), Class: monitoring.ErrorClass(err)}
		} else {
			reply = response
		}

		if err := conn.WriteJSON(reply); err != nil {
			h.logger.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

type formField struct {
	ml.Field
	Value int
}

type formSection struct {
	Name   string
	Fields []formField
}

type pageData struct {
	Title    string
	Sections []formSection
	Result   *predictionResponse
	Error    string
	Halted   bool
	Percent  int
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if h.halted(w) {
		return
	}
	h.render(w, http.StatusOK, h.newPage(ml.DefaultInputs().Values()))
}

// halted renders the error-only page when no runtime is available. Nothing
// else is collected or predicted in that state.
func (h *Handler) halted(w http.ResponseWriter) bool {
	_, err := h.source.Current()
	if err == nil {
		return false
	}
	h.render(w, http.StatusServiceUnavailable, pageData{Title: h.title, Halted: true, Error: haltMessage(err)})
	return true
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if h.halted(w) {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, pageData{Title: h.title, Error: err.Error()})
		return
	}
	values, parseErr := valuesFromForm(r.PostForm)
	data := h.newPage(values)

	err := parseErr
	if err == nil {
		data.Result, err = h.predict(values)
	}
	if err != nil {
		data.Error = err.Error()
		h.render(w, statusFor(err), data)
		return
	}
	data.Percent = int(data.Result.Display*100 + 0.5)
	h.render(w, http.StatusOK, data)
}

func (h *Handler) newPage(values map[string]float64) pageData {
	data := pageData{Title: h.title}
	for _, field := range ml.Schema() {
		value := field.Default
		if v, ok := values[field.Key]; ok {
			value = int(v)
		}
		if len(data.Sections) == 0 || data.Sections[len(data.Sections)-1].Name != field.Section {
			data.Sections = append(data.Sections, formSection{Name: field.Section})
		}
		last := &data.Sections[len(data.Sections)-1]
		last.Fields = append(last.Fields, formField{Field: field, Value: value})
	}
	return data
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.page.Execute(w, data); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

func haltMessage(err error) string {
	return "Model or scaler files could not be loaded. Export the trained artifacts and restart the service. (" + err.Error() + ")"
}

func valuesFromForm(form url.Values) (map[string]float64, error) {
	values := make(map[string]float64, ml.FeatureCount)
	for _, field := range ml.Schema() {
		raw := strings.TrimSpace(form.Get(field.Key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return values, fmt.Errorf("%w: %s=%q", ml.ErrInvalidValue, field.Key, raw)
		}
		values[field.Key] = v
	}
	return values, nil
}

func parseLocale(locale string) language.Tag {
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}
