package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0})
	yPred := mat.NewVecDense(4, []float64{0.8, 2.2, 2.9, 4.3})

	mae, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE failed: %v", err)
	}
	if math.Abs(mae-0.2) > 1e-12 {
		t.Errorf("expected 0.2, got %f", mae)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{"perfect", []float64{1, 2, 3}, []float64{1, 2, 3}, 1, false},
		{"mean predictor", []float64{1, 2, 3}, []float64{2, 2, 2}, 0, false},
		{"worse than mean", []float64{1, 2, 3}, []float64{3, 2, 1}, -3, false},
		{"constant target", []float64{5, 5, 5}, []float64{4, 5, 6}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(
				mat.NewVecDense(len(tt.yTrue), tt.yTrue),
				mat.NewVecDense(len(tt.yPred), tt.yPred),
			)
			if (err != nil) != tt.wantErr {
				t.Fatalf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("R2Score() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestValidationErrors(t *testing.T) {
	_, err := MSE(&mat.VecDense{}, &mat.VecDense{})
	var valueErr *kcalErrors.ValueError
	if !kcalErrors.As(err, &valueErr) {
		t.Errorf("expected ValueError for empty input, got %v", err)
	}

	_, err = Evaluate(mat.NewVecDense(2, []float64{1, 2}), mat.NewVecDense(3, []float64{1, 2, 3}))
	if !kcalErrors.Is(err, kcalErrors.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}
