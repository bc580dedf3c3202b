// Package predict turns a form submission into a diabetes outcome.
package predict

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"diabetescheck/ml"
	"diabetescheck/monitoring"
)

const DefaultCacheSize = 1024

// Pipeline runs submissions against one classifier loaded at startup.
// It is safe for concurrent use.
type Pipeline struct {
	classifier ml.Classifier
	logger     *zap.Logger
	metrics    *monitoring.Metrics
	cacheSize  int
	cache      *lru.Cache[ml.FeatureVector, ml.Label]
}

type Option func(*Pipeline)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = metrics
	}
}

// WithCacheSize bounds the outcome cache; zero disables it.
func WithCacheSize(size int) Option {
	return func(p *Pipeline) {
		p.cacheSize = size
	}
}

func NewPipeline(classifier ml.Classifier, opts ...Option) (*Pipeline, error) {
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	p := &Pipeline{
		classifier: classifier,
		logger:     zap.NewNop(),
		cacheSize:  DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cacheSize > 0 {
		cache, err := lru.New[ml.FeatureVector, ml.Label](p.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create outcome cache: %w", err)
		}
		p.cache = cache
	}
	return p, nil
}

// Submit validates req, runs the classifier once and maps its label.
// It never panics and never returns an error: failures are reported as a
// KindFailure result and the pipeline stays usable.
func (p *Pipeline) Submit(ctx context.Context, req Request) Result {
	name := normalizeName(req.Name)
	if name == "" {
		p.metrics.IncWarning()
		return warning(WarningEmptyName)
	}

	vector, err := ml.FeatureVectorFromValues(req.values())
	if err != nil {
		p.metrics.IncWarning()
		p.logger.Debug("submission rejected", zap.Error(err))
		return warning(capitalize(err.Error()) + ".")
	}

	if err := ctx.Err(); err != nil {
		p.metrics.IncFailure()
		return failure(name, vector, err)
	}

	label, err := p.label(vector)
	if err != nil {
		p.metrics.IncFailure()
		p.logger.Error("prediction failed", zap.Error(err), zap.Float64s("features", vector.Values()))
		return failure(name, vector, err)
	}
	return outcome(name, vector, label)
}

func (p *Pipeline) label(vector ml.FeatureVector) (ml.Label, error) {
	start := time.Now()
	if p.cache != nil {
		if label, ok := p.cache.Get(vector); ok {
			p.metrics.IncCacheHit()
			p.metrics.ObservePrediction(outcomeFor(label).String(), time.Since(start))
			return label, nil
		}
	}

	label, err := p.invoke(vector.Values())
	if err != nil {
		return 0, err
	}
	if !label.Valid() {
		return 0, fmt.Errorf("classifier returned %v, want 0 or 1", label)
	}
	took := time.Since(start)
	p.metrics.ObservePrediction(outcomeFor(label).String(), took)
	p.logger.Debug("prediction", zap.Stringer("label", label), zap.Duration("took", took))

	if p.cache != nil {
		p.cache.Add(vector, label)
	}
	return label, nil
}

// invoke turns a classifier panic into an error.
func (p *Pipeline) invoke(features []float64) (label ml.Label, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classifier panic: %v", r)
		}
	}()
	return p.classifier.Predict(features)
}

func outcomeFor(label ml.Label) Outcome {
	if label == ml.LabelDiabetic {
		return Diabetic
	}
	return NonDiabetic
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
