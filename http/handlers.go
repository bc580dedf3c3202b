package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"diabetescheck/ml"
	"diabetescheck/predict"
)

// Predictor 预测流水线接口, 由 predict.Pipeline 实现
type Predictor interface {
	Submit(ctx context.Context, req predict.Request) predict.Result
}

// Handlers 持有页面与API处理器的依赖
type Handlers struct {
	predictor Predictor
	logger    *zap.Logger
}

func NewHandlers(predictor Predictor, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{predictor: predictor, logger: logger}
}

// Register 注册所有路由
func (h *Handlers) Register(mux *http.ServeMux) {
	// 页面
	mux.HandleFunc("GET /{$}", h.handleAbout)
	mux.HandleFunc("GET /predict", h.handlePredictForm)
	mux.HandleFunc("POST /predict", h.handlePredictSubmit)

	// API
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("POST /api/predict", h.handlePredictAPI)
	mux.HandleFunc("GET /api/ws/predict", h.handlePredictWebSocket)
}

// RegisterMetrics 注册 /metrics
func RegisterMetrics(mux *http.ServeMux, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// PredictResponse is the JSON shape of one answered submission.
type PredictResponse struct {
	Status  string               `json:"status"`
	Outcome string               `json:"outcome,omitempty"`
	Label   *int                 `json:"label,omitempty"`
	Message string               `json:"message"`
	Advice  []predict.Suggestion `json:"advice,omitempty"`
}

func newPredictResponse(res predict.Result) PredictResponse {
	resp := PredictResponse{
		Status:  res.Kind.String(),
		Message: res.Message,
	}
	if res.OK() {
		label := int(res.Label)
		resp.Label = &label
		resp.Outcome = res.Outcome.String()
		resp.Advice = res.Advice
	}
	return resp
}

func statusFor(res predict.Result) int {
	switch res.Kind {
	case predict.KindOutcome:
		return http.StatusOK
	case predict.KindWarning:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) handlePredictAPI(w http.ResponseWriter, r *http.Request) {
	req, err := decodePredictRequest(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	res := h.predictor.Submit(r.Context(), req)
	h.logResult(r.Context(), res)
	respondJSON(w, statusFor(res), newPredictResponse(res))
}

// decodePredictRequest rejects unknown fields so a misspelled measurement
// is not silently replaced by its floor.
func decodePredictRequest(body io.Reader) (predict.Request, error) {
	var req predict.Request
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return predict.Request{}, err
	}
	return req, nil
}

func (h *Handlers) logResult(ctx context.Context, res predict.Result) {
	fields := []zap.Field{
		zap.String("request_id", GetRequestID(ctx)),
		zap.Stringer("kind", res.Kind),
	}
	switch res.Kind {
	case predict.KindOutcome:
		h.logger.Info("prediction answered", append(fields, zap.Stringer("outcome", res.Outcome))...)
	case predict.KindFailure:
		h.logger.Warn("prediction failed", append(fields, zap.Error(res.Err))...)
	default:
		h.logger.Debug("submission rejected", append(fields, zap.String("message", res.Message))...)
	}
}

// formRequest reads the name and the measurements of ml.FeatureFields from a posted form.
func formRequest(r *http.Request) (predict.Request, error) {
	if err := r.ParseForm(); err != nil {
		return predict.Request{}, err
	}
	req := predict.Request{Name: r.PostForm.Get("name")}
	// an empty name wins over malformed numbers
	if strings.TrimSpace(req.Name) == "" {
		return req, nil
	}
	for _, field := range ml.FeatureFields {
		if err := req.SetString(field.Key, r.PostForm.Get(field.Key)); err != nil {
			return req, err
		}
	}
	return req, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode JSON", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
