// Package metrics provides regression evaluation metrics.
//
//   - MSE / RMSE: squared error, sensitive to outliers
//   - MAE: absolute error, in the target's unit (kcal)
//   - R2Score: coefficient of determination
//
// Evaluate bundles them into a Report, which the dashboard prints on its
// Conclusion page.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

func validate(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, kcalErrors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, kcalErrors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// MSE calculates the mean squared error.
//
// Example:
//
//	mse, err := metrics.MSE(yTrue, yPred)
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}
	return sum / float64(n), nil
}

// RMSE calculates the root mean squared error.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE calculates the mean absolute error.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}
	return sum / float64(n), nil
}

// R2Score calculates R² = 1 - RSS/TSS. A constant yTrue has no variance to
// explain and is reported as an error.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	yMean := stat.Mean(mat.Col(nil, 0, yTrue), nil)

	var tss, rss float64
	for i := 0; i < n; i++ {
		t := yTrue.AtVec(i)
		p := yPred.AtVec(i)
		tss += (t - yMean) * (t - yMean)
		rss += (t - p) * (t - p)
	}

	if tss == 0 {
		return 0, kcalErrors.NewValueError("R2Score", "total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}

// Report summarizes a model's fit on a set of samples.
type Report struct {
	Samples int
	MAE     float64
	RMSE    float64
	R2      float64
}

// Evaluate computes MAE, RMSE and R².
func Evaluate(yTrue, yPred *mat.VecDense) (Report, error) {
	n, err := validate("Evaluate", yTrue, yPred)
	if err != nil {
		return Report{}, err
	}

	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}

	return Report{Samples: n, MAE: mae, RMSE: rmse, R2: r2}, nil
}
