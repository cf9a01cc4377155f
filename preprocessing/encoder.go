// Package preprocessing turns raw categorical values into the numeric
// columns a trained model expects.
package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/caloriedash/core/model"
	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

// DummyEncoder is a one-hot encoder with a fixed, reduced category set, the
// shape pandas.get_dummies(drop_first=True) followed by column selection
// leaves behind. Each input feature keeps only the categories listed for
// it; any other value, including the baseline, encodes to all zeros.
//
// Unlike a fitted OneHotEncoder the categories come from the training
// contract, not from data, so the encoder is ready as soon as it is built.
type DummyEncoder struct {
	state *model.StateManager

	// Features are the input feature names, e.g. "Gender".
	Features []string

	// Categories are the kept categories per feature, in output order.
	Categories [][]string

	// CategoryToIdx maps a kept category to its offset inside its feature's block.
	CategoryToIdx []map[string]int

	// NFeatures is the number of input features.
	NFeatures int

	// NOutputs is the number of output columns (sum of kept categories).
	NOutputs int
}

// NewDummyEncoder creates an encoder for features with the given kept
// categories. features and categories must have the same length, every
// feature must keep at least one category and categories must be unique
// per feature.
//
// Example:
//
//	enc, err := preprocessing.NewDummyEncoder(
//		[]string{"Gender", "Workout_Type"},
//		[][]string{{"Male"}, {"HIIT"}},
//	)
//	row, err := enc.TransformRow([]string{"Male", "Yoga"}) // [1, 0]
func NewDummyEncoder(features []string, categories [][]string) (*DummyEncoder, error) {
	if len(features) == 0 {
		return nil, kcalErrors.NewModelError("NewDummyEncoder", "empty features", kcalErrors.ErrEmptyData)
	}
	if len(categories) != len(features) {
		return nil, kcalErrors.NewDimensionError("NewDummyEncoder", len(features), len(categories), 0)
	}

	e := &DummyEncoder{
		state:         model.NewStateManager(),
		Features:      append([]string(nil), features...),
		Categories:    make([][]string, len(features)),
		CategoryToIdx: make([]map[string]int, len(features)),
		NFeatures:     len(features),
	}

	for j, cats := range categories {
		if len(cats) == 0 {
			return nil, kcalErrors.NewValueError("NewDummyEncoder",
				fmt.Sprintf("feature %q keeps no categories", features[j]))
		}
		idx := make(map[string]int, len(cats))
		for k, c := range cats {
			if _, dup := idx[c]; dup {
				return nil, kcalErrors.NewValueError("NewDummyEncoder",
					fmt.Sprintf("feature %q lists category %q twice", features[j], c))
			}
			idx[c] = k
		}
		e.Categories[j] = append([]string(nil), cats...)
		e.CategoryToIdx[j] = idx
		e.NOutputs += len(cats)
	}

	e.state.SetFitted()
	e.state.SetDimensions(e.NFeatures, 0)
	return e, nil
}

// IsFitted reports whether the encoder is usable. It is true for every
// encoder returned by NewDummyEncoder.
func (e *DummyEncoder) IsFitted() bool {
	return e.state != nil && e.state.IsFitted()
}

// TransformRow encodes one sample (one value per feature) into NOutputs
// indicator values.
func (e *DummyEncoder) TransformRow(row []string) (_ []float64, err error) {
	defer kcalErrors.Recover(&err, "DummyEncoder.TransformRow")
	if !e.IsFitted() {
		return nil, kcalErrors.NewNotFittedError("DummyEncoder", "TransformRow")
	}
	if len(row) != e.NFeatures {
		return nil, kcalErrors.NewDimensionError("DummyEncoder.TransformRow", e.NFeatures, len(row), 1)
	}

	out := make([]float64, e.NOutputs)
	offset := 0
	for j, value := range row {
		if idx, kept := e.CategoryToIdx[j][value]; kept {
			out[offset+idx] = 1.0
		}
		// baseline and unknown categories stay 0
		offset += len(e.Categories[j])
	}
	return out, nil
}

// Transform encodes n samples into an n × NOutputs matrix.
func (e *DummyEncoder) Transform(data [][]string) (_ mat.Matrix, err error) {
	defer kcalErrors.Recover(&err, "DummyEncoder.Transform")
	if !e.IsFitted() {
		return nil, kcalErrors.NewNotFittedError("DummyEncoder", "Transform")
	}
	if len(data) == 0 {
		return nil, kcalErrors.NewModelError("DummyEncoder.Transform", "empty data", kcalErrors.ErrEmptyData)
	}

	result := mat.NewDense(len(data), e.NOutputs, nil)
	for i, row := range data {
		encoded, err := e.TransformRow(row)
		if err != nil {
			return nil, err
		}
		result.SetRow(i, encoded)
	}
	return result, nil
}

// GetFeatureNamesOut returns the output column names, "<feature>_<category>",
// matching the names pandas.get_dummies produces.
func (e *DummyEncoder) GetFeatureNamesOut() []string {
	names := make([]string, 0, e.NOutputs)
	for j, cats := range e.Categories {
		for _, c := range cats {
			names = append(names, fmt.Sprintf("%s_%s", e.Features[j], c))
		}
	}
	return names
}
