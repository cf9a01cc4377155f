// Package predictor loads the trained calories model and runs it on encoded
// feature vectors.
package predictor

import (
	"io"
	"os"

	"github.com/ezoic/caloriedash/features"
	"github.com/ezoic/caloriedash/linear"
	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/pkg/log"
)

// Model is a loaded artifact whose columns are known to match a schema.
type Model struct {
	regression *linear.LinearRegression
	schema     features.Schema
}

// LoadModel reads the artifact at path and validates it against schema.
// Every failure is marked ErrModelUnavailable; schema disagreement is
// additionally marked ErrSchemaMismatch.
func LoadModel(path string, schema features.Schema) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, kcalErrors.ModelUnavailable(err, "open model %q", path)
	}
	defer func() { _ = f.Close() }()

	m, err := LoadModelReader(f, schema)
	if err != nil {
		return nil, kcalErrors.ModelUnavailable(err, "load model %q", path)
	}

	log.GetLoggerWithName("predictor").Info("Model loaded",
		log.OperationKey, log.OperationLoad,
		log.PhaseKey, log.PhaseStartup,
		log.PathKey, path,
		log.FeaturesKey, schema.Len(),
		log.SchemaKey, schema.Version,
	)
	return m, nil
}

// LoadModelReader decodes an artifact from r and validates it against schema.
// The artifact must record its feature names; without them the column order
// cannot be checked.
func LoadModelReader(r io.Reader, schema features.Schema) (*Model, error) {
	lr := linear.NewLinearRegression()
	if err := lr.LoadFromSKLearnReader(r); err != nil {
		return nil, kcalErrors.ModelUnavailable(err, "decode artifact")
	}

	if len(lr.FeatureNames) == 0 {
		return nil, kcalErrors.ModelUnavailable(
			kcalErrors.Mark(kcalErrors.New("artifact does not record feature_names"), kcalErrors.ErrSchemaMismatch),
			"validate artifact")
	}
	if err := schema.Validate(lr.Spec.FeatureSchemaVersion, lr.FeatureNames); err != nil {
		return nil, kcalErrors.ModelUnavailable(err, "validate artifact")
	}

	return &Model{regression: lr, schema: schema}, nil
}

// Schema returns the schema the model was validated against.
func (m *Model) Schema() features.Schema {
	return m.schema
}

// Coefficient is one named model weight.
type Coefficient struct {
	Feature string
	Weight  float64
}

// Info describes a loaded model for display.
type Info struct {
	SKLearnVersion string
	SchemaVersion  string
	Intercept      float64
	Coefficients   []Coefficient
}

// Info returns the model's metadata and weights in schema order.
func (m *Model) Info() Info {
	weights := m.regression.GetWeights()
	coefs := make([]Coefficient, len(weights))
	for i, w := range weights {
		coefs[i] = Coefficient{Feature: m.schema.Names[i], Weight: w}
	}
	return Info{
		SKLearnVersion: m.regression.Spec.SKLearnVersion,
		SchemaVersion:  m.schema.Version,
		Intercept:      m.regression.GetIntercept(),
		Coefficients:   coefs,
	}
}
