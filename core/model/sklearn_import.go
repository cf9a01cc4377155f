package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ezoic/caloriedash/pkg/errors"
)

// SupportedFormatVersion is the only artifact format version this package reads.
const SupportedFormatVersion = "1.0"

// SKLearnModelSpec is the metadata block of an exported scikit-learn model.
type SKLearnModelSpec struct {
	Name           string `json:"name"`                      // estimator class, e.g. "LinearRegression"
	FormatVersion  string `json:"format_version"`            // artifact format version
	SKLearnVersion string `json:"sklearn_version,omitempty"` // scikit-learn version used for training

	// FeatureSchemaVersion names the feature schema the estimator was
	// trained against. Optional; when present it must match the schema of
	// the consumer.
	FeatureSchemaVersion string `json:"feature_schema_version,omitempty"`
}

// SKLearnLinearRegressionParams holds the parameters of a fitted LinearRegression.
type SKLearnLinearRegressionParams struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	NFeatures    int       `json:"n_features"`

	// FeatureNames mirrors scikit-learn's feature_names_in_: the training
	// columns in the order the coefficients apply to.
	FeatureNames []string `json:"feature_names,omitempty"`
}

// SKLearnModel is a model exported from scikit-learn.
type SKLearnModel struct {
	ModelSpec SKLearnModelSpec `json:"model_spec"`
	Params    json.RawMessage  `json:"params"`
}

// LoadSKLearnModelFromFile reads an exported scikit-learn model from a JSON file.
//
// Example:
//
//	skModel, err := model.LoadSKLearnModelFromFile("models/calories_model.json")
//	if err != nil {
//	    return err
//	}
func LoadSKLearnModelFromFile(filename string) (*SKLearnModel, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer func() { _ = file.Close() }()

	return LoadSKLearnModelFromReader(file)
}

// LoadSKLearnModelFromReader decodes an exported scikit-learn model and
// validates its metadata block.
func LoadSKLearnModelFromReader(r io.Reader) (*SKLearnModel, error) {
	var model SKLearnModel
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&model); err != nil {
		return nil, errors.Wrap(err, "failed to decode JSON")
	}

	if model.ModelSpec.FormatVersion == "" {
		return nil, errors.NewValueError("LoadSKLearnModel", "format_version is required")
	}

	if model.ModelSpec.FormatVersion != SupportedFormatVersion {
		return nil, errors.NewValueError("LoadSKLearnModel",
			fmt.Sprintf("unsupported format version: %s", model.ModelSpec.FormatVersion))
	}

	if model.ModelSpec.Name == "" {
		return nil, errors.NewValueError("LoadSKLearnModel", "model name is required")
	}

	if len(model.Params) == 0 {
		return nil, errors.NewValueError("LoadSKLearnModel", "params are required")
	}

	return &model, nil
}

// LoadLinearRegressionParams extracts and validates LinearRegression parameters.
func LoadLinearRegressionParams(model *SKLearnModel) (*SKLearnLinearRegressionParams, error) {
	if model.ModelSpec.Name != "LinearRegression" {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			fmt.Sprintf("expected LinearRegression, got %s", model.ModelSpec.Name))
	}

	var params SKLearnLinearRegressionParams
	if err := json.Unmarshal(model.Params, &params); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal params")
	}

	if len(params.Coefficients) == 0 {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			"coefficients cannot be empty")
	}

	if params.NFeatures != len(params.Coefficients) {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			fmt.Sprintf("n_features (%d) does not match coefficients length (%d)",
				params.NFeatures, len(params.Coefficients)))
	}

	if len(params.FeatureNames) != 0 && len(params.FeatureNames) != params.NFeatures {
		return nil, errors.NewValueError("LoadLinearRegressionParams",
			fmt.Sprintf("feature_names length (%d) does not match n_features (%d)",
				len(params.FeatureNames), params.NFeatures))
	}

	return &params, nil
}

// ExportSKLearnModel writes params in the scikit-learn compatible JSON format.
func ExportSKLearnModel(spec SKLearnModelSpec, params interface{}, w io.Writer) error {
	if spec.FormatVersion == "" {
		spec.FormatVersion = SupportedFormatVersion
	}
	model := SKLearnModel{ModelSpec: spec}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return errors.Wrap(err, "failed to marshal params")
	}
	model.Params = paramsJSON

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}

	return nil
}
