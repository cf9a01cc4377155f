// Package linear provides linear regression inference for models trained in
// scikit-learn.
//
// A LinearRegression is loaded from the JSON artifact produced by the
// training pipeline and computes y = X·w + b with gonum/mat:
//
//	lr := linear.NewLinearRegression()
//	if err := lr.LoadFromSKLearn("models/calories_model.json"); err != nil {
//		return err
//	}
//	predictions, err := lr.Predict(X)
//
// The package does not train models.
package linear

import (
	"io"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/caloriedash/core/model"
	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/pkg/log"
)

// LinearRegression is an ordinary least squares model restored from an artifact.
type LinearRegression struct {
	State        *model.StateManager // State manager (composition instead of embedding)
	Weights      *mat.VecDense       // Model weights (coefficients)
	Intercept    float64             // Model intercept
	NFeatures    int                 // Number of features
	FeatureNames []string            // Training column order, when the artifact records it
	Spec         model.SKLearnModelSpec
	logger       log.Logger
}

// NewLinearRegression creates an empty model. Load parameters with
// LoadFromSKLearn or LoadFromSKLearnReader before calling Predict.
func NewLinearRegression() *LinearRegression {
	lr := &LinearRegression{
		State: model.NewStateManager(),
	}

	lr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "LinearRegression",
		log.ComponentKey, "linear",
	)

	return lr
}

// Predict computes X·w + b for every row of X.
//
// Parameters:
//   - X: Feature matrix of shape (n_samples, n_features)
//
// Returns:
//   - mat.Matrix: Predictions of shape (n_samples, 1)
//   - error: NotFittedError before parameters are loaded, DimensionError
//     when X has the wrong number of columns
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer kcalErrors.Recover(&err, "LinearRegression.Predict")
	if !lr.State.IsFitted() {
		return nil, kcalErrors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, kcalErrors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	startTime := time.Now()

	// y = X * weights + intercept
	var product mat.VecDense
	product.MulVec(X, lr.Weights)

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, product.AtVec(i)+lr.Intercept)
	}

	if lr.logger != nil {
		lr.logger.Debug("Prediction completed",
			log.OperationKey, log.OperationPredict,
			log.PhaseKey, log.PhaseInference,
			log.SamplesKey, r,
			log.FeaturesKey, c,
			log.DurationMsKey, time.Since(startTime).Milliseconds(),
		)
	}

	return predictions, nil
}

// GetWeights returns a copy of the coefficients.
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}

	weights := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept returns the intercept, or 0 before parameters are loaded.
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.State.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// LoadFromSKLearn loads parameters from a JSON file exported from scikit-learn.
func (lr *LinearRegression) LoadFromSKLearn(filename string) (err error) {
	defer kcalErrors.Recover(&err, "LinearRegression.LoadFromSKLearn")
	file, err := os.Open(filename)
	if err != nil {
		return kcalErrors.Wrap(err, "failed to open file")
	}
	defer func() { _ = file.Close() }()

	return lr.LoadFromSKLearnReader(file)
}

// LoadFromSKLearnReader loads parameters from a Reader holding an exported
// scikit-learn model.
func (lr *LinearRegression) LoadFromSKLearnReader(r io.Reader) (err error) {
	defer kcalErrors.Recover(&err, "LinearRegression.LoadFromSKLearnReader")
	skModel, err := model.LoadSKLearnModelFromReader(r)
	if err != nil {
		return kcalErrors.Wrap(err, "failed to load sklearn model")
	}

	params, err := model.LoadLinearRegressionParams(skModel)
	if err != nil {
		return kcalErrors.Wrap(err, "failed to load linear regression params")
	}

	lr.Spec = skModel.ModelSpec
	lr.NFeatures = params.NFeatures
	lr.Intercept = params.Intercept
	lr.FeatureNames = append([]string(nil), params.FeatureNames...)
	lr.Weights = mat.NewVecDense(len(params.Coefficients), append([]float64(nil), params.Coefficients...))

	lr.State.SetFitted()
	// sample count is not part of the artifact
	lr.State.SetDimensions(lr.NFeatures, 0)

	if lr.logger != nil {
		lr.logger.Info("Parameters loaded",
			log.OperationKey, log.OperationLoad,
			log.FeaturesKey, lr.NFeatures,
			"sklearn_version", skModel.ModelSpec.SKLearnVersion,
		)
	}

	return nil
}

// ExportToSKLearnWriter writes the model in the scikit-learn compatible format.
func (lr *LinearRegression) ExportToSKLearnWriter(w io.Writer) (err error) {
	defer kcalErrors.Recover(&err, "LinearRegression.ExportToSKLearnWriter")
	if !lr.State.IsFitted() {
		return kcalErrors.NewNotFittedError("LinearRegression", "ExportToSKLearnWriter")
	}

	spec := lr.Spec
	spec.Name = "LinearRegression"
	return model.ExportSKLearnModel(spec, model.SKLearnLinearRegressionParams{
		Coefficients: lr.GetWeights(),
		Intercept:    lr.Intercept,
		NFeatures:    lr.NFeatures,
		FeatureNames: lr.FeatureNames,
	}, w)
}

// IsFitted returns whether parameters have been loaded.
func (lr *LinearRegression) IsFitted() bool {
	return lr.State.IsFitted()
}
