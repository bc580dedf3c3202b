package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"diabetescheck/ml"
	"diabetescheck/predict"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// formField 表单中的一个数值输入框
type formField struct {
	Key   string
	Label string
	Min   string
	Step  string
	Value string
}

// message 页面上渲染的一条结果消息
type message struct {
	Style  string // success, warning, error
	Text   string
	Advice []predict.Suggestion
}

type pageData struct {
	Active  string
	Name    string
	Fields  []formField
	Message *message
	Heading string
}

func formFields(values map[string]string) []formField {
	fields := make([]formField, 0, ml.FeatureCount)
	for _, f := range ml.FeatureFields {
		step := "any"
		if f.Integer {
			step = "1"
		}
		fields = append(fields, formField{
			Key:   f.Key,
			Label: f.Label,
			Min:   strconv.FormatFloat(f.Min, 'f', -1, 64),
			Step:  step,
			Value: values[f.Key],
		})
	}
	return fields
}

func messageFor(res predict.Result) *message {
	switch res.Kind {
	case predict.KindOutcome:
		if res.Outcome == predict.Diabetic {
			return &message{Style: "error", Text: res.Message, Advice: res.Advice}
		}
		return &message{Style: "success", Text: res.Message}
	case predict.KindWarning:
		return &message{Style: "warning", Text: res.Message}
	default:
		return &message{Style: "error", Text: res.Message}
	}
}

func (h *Handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "about.html", pageData{Active: "about"})
}

func (h *Handlers) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "predict.html", pageData{
		Active: "predict",
		Fields: formFields(nil),
	})
}

func (h *Handlers) handlePredictSubmit(w http.ResponseWriter, r *http.Request) {
	data := pageData{Active: "predict", Heading: predict.PreventionHeading}

	req, err := formRequest(r)
	values := make(map[string]string, ml.FeatureCount)
	for _, f := range ml.FeatureFields {
		values[f.Key] = r.PostForm.Get(f.Key)
	}
	data.Name = r.PostForm.Get("name")
	data.Fields = formFields(values)

	if err != nil {
		data.Message = &message{Style: "warning", Text: err.Error()}
		h.render(w, http.StatusUnprocessableEntity, "predict.html", data)
		return
	}

	res := h.predictor.Submit(r.Context(), req)
	h.logResult(r.Context(), res)
	data.Message = messageFor(res)
	h.render(w, statusFor(res), "predict.html", data)
}

func (h *Handlers) render(w http.ResponseWriter, status int, name string, data pageData) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
