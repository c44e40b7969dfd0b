package multiomics

import (
	"log/slog"

	"github.com/arunb2895/multi-omics-enteric-neurons/reduce"
)

type options struct {
	components      map[string]int
	jointComponents int
	scaled          map[string]bool
	order           []string
	reducer         reduce.Reducer
	parallelism     int
	logger          *Logger
	metrics         MetricsCollector
}

// Option configures an Integrator.
type Option func(*options)

// WithComponents sets the target dimensionality for one modality.
// Unconfigured modalities use reduce.DefaultComponents. Values above
// the modality's mathematical ceiling are lowered to the ceiling and
// recorded as a ClampWarning.
func WithComponents(modality string, k int) Option {
	return func(o *options) {
		o.components[modality] = k
	}
}

// WithJointComponents sets the target dimensionality of the final joint
// reduction. Values above min(retained samples, concatenated width)-1
// are clamped and recorded.
func WithJointComponents(k int) Option {
	return func(o *options) {
		o.jointComponents = k
	}
}

// WithScaling enables per-feature variance scaling for one modality.
// Scaling is off by default. Ignored when a custom reducer is set via
// WithReducer.
func WithScaling(modality string) Option {
	return func(o *options) {
		o.scaled[modality] = true
	}
}

// WithModalityOrder fixes the concatenation order of the modalities.
// The names must be exactly the supplied modality names. The default
// order is the order datasets are passed to FitTransform; the first
// modality in the order also fixes the row order of the embedding.
func WithModalityOrder(names ...string) Option {
	return func(o *options) {
		o.order = append([]string(nil), names...)
	}
}

// WithReducer replaces the built-in PCA with a custom reduction method
// for both the per-modality and the joint stage. Alignment and
// concatenation are unaffected.
func WithReducer(r reduce.Reducer) Option {
	return func(o *options) {
		o.reducer = r
	}
}

// WithParallelism runs up to n per-modality reductions concurrently.
// Reductions are mutually independent, so this changes wall time only,
// never results. n <= 1 keeps the pipeline sequential (default).
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithLogger configures structured logging for pipeline stages.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for pipeline runs.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		components: make(map[string]int),
		scaled:     make(map[string]bool),
		logger:     NoopLogger(),
		metrics:    NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
