package predictor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/caloriedash/dataset"
	"github.com/ezoic/caloriedash/features"
	"github.com/ezoic/caloriedash/metrics"
	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/pkg/log"
)

// Adapter runs a Model on encoded vectors.
type Adapter struct {
	model   *Model
	logger  log.Logger
	total   *prometheus.CounterVec
	kcal    prometheus.Histogram
	latency prometheus.Histogram
}

// NewAdapter wraps m. When reg is not nil the adapter registers its
// prediction counters and histograms with it.
func NewAdapter(m *Model, reg prometheus.Registerer) (*Adapter, error) {
	a := &Adapter{
		model: m,
		logger: log.GetLoggerWithName("predictor").With(
			log.ComponentKey, "predictor",
			log.SchemaKey, m.schema.Version,
		),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "caloriedash_predictions_total",
			Help: "Predictions served, by result.",
		}, []string{"result"}),
		kcal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "caloriedash_predicted_kcal",
			Help:    "Distribution of predicted calories burned.",
			Buckets: prometheus.LinearBuckets(0, 250, 10),
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "caloriedash_prediction_duration_seconds",
			Help:    "Time spent in model inference.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{a.total, a.kcal, a.latency} {
			if err := reg.Register(c); err != nil {
				return nil, kcalErrors.Wrap(err, "register prediction metrics")
			}
		}
	}
	return a, nil
}

// Schema returns the schema Predict expects.
func (a *Adapter) Schema() features.Schema {
	return a.model.schema
}

// Predict returns the model's kcal estimate for v. v must be in schema
// order; a wrong length is a DimensionError. The estimate is returned as
// computed, without clamping.
func (a *Adapter) Predict(v features.Vector) (float64, error) {
	if len(v) != a.model.schema.Len() {
		a.total.WithLabelValues("error").Inc()
		return 0, kcalErrors.NewDimensionError("Adapter.Predict", a.model.schema.Len(), len(v), 1)
	}

	start := time.Now()
	out, err := a.model.regression.Predict(mat.NewDense(1, len(v), append([]float64(nil), v...)))
	if err != nil {
		a.total.WithLabelValues("error").Inc()
		return 0, kcalErrors.Wrap(err, "predict")
	}
	elapsed := time.Since(start)

	kcal := out.At(0, 0)
	a.total.WithLabelValues("ok").Inc()
	a.kcal.Observe(kcal)
	a.latency.Observe(elapsed.Seconds())

	a.logger.Debug("Prediction served",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		"kcal", kcal,
	)
	return kcal, nil
}

// Evaluate scores the model against every row of d, encoding rows with enc.
func (a *Adapter) Evaluate(d *dataset.Dataset, enc *features.Encoder) (metrics.Report, error) {
	if err := enc.Schema().Validate(a.model.schema.Version, a.model.schema.Names); err != nil {
		return metrics.Report{}, kcalErrors.Wrap(err, "encoder and model disagree")
	}

	members := d.Members()
	inputs := make([]features.Input, len(members))
	yTrue := mat.NewVecDense(len(members), nil)
	for i, m := range members {
		inputs[i] = m.Input()
		yTrue.SetVec(i, m.CaloriesBurned)
	}

	X, err := enc.EncodeBatch(inputs)
	if err != nil {
		return metrics.Report{}, kcalErrors.Wrap(err, "encode dataset")
	}
	pred, err := a.model.regression.Predict(X)
	if err != nil {
		return metrics.Report{}, kcalErrors.Wrap(err, "predict dataset")
	}

	yPred := mat.NewVecDense(len(members), mat.Col(nil, 0, pred))
	report, err := metrics.Evaluate(yTrue, yPred)
	if err != nil {
		return metrics.Report{}, err
	}

	a.logger.Info("Model evaluated on dataset",
		log.OperationKey, log.OperationEvaluate,
		log.SamplesKey, report.Samples,
		"mae", report.MAE,
		"rmse", report.RMSE,
		"r2", report.R2,
	)
	return report, nil
}
