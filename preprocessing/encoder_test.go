package preprocessing_test

import (
	"testing"

	"github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/preprocessing"
)

func newWorkoutEncoder(t *testing.T) *preprocessing.DummyEncoder {
	t.Helper()
	encoder, err := preprocessing.NewDummyEncoder(
		[]string{"Gender", "Workout_Type", "Experience_Level"},
		[][]string{{"Male"}, {"HIIT"}, {"2"}},
	)
	if err != nil {
		t.Fatalf("NewDummyEncoder failed: %v", err)
	}
	return encoder
}

func TestDummyEncoder_New(t *testing.T) {
	encoder := newWorkoutEncoder(t)

	if !encoder.IsFitted() {
		t.Error("Encoder should be usable right after construction")
	}
	if encoder.NFeatures != 3 {
		t.Errorf("Expected NFeatures=3, got %d", encoder.NFeatures)
	}
	if encoder.NOutputs != 3 {
		t.Errorf("Expected NOutputs=3, got %d", encoder.NOutputs)
	}

	names := encoder.GetFeatureNamesOut()
	expected := []string{"Gender_Male", "Workout_Type_HIIT", "Experience_Level_2"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %d names, got %v", len(expected), names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("name %d: expected %s, got %s", i, expected[i], names[i])
		}
	}
}

func TestDummyEncoder_TransformRow(t *testing.T) {
	encoder := newWorkoutEncoder(t)

	tests := []struct {
		row      []string
		expected []float64
	}{
		{[]string{"Male", "HIIT", "2"}, []float64{1, 1, 1}},
		{[]string{"Female", "HIIT", "2"}, []float64{0, 1, 1}},
		{[]string{"Male", "Cardio", "1"}, []float64{1, 0, 0}},
		{[]string{"Female", "Strength", "3"}, []float64{0, 0, 0}},
		{[]string{"Female", "Yoga", "2"}, []float64{0, 0, 1}},
		{[]string{"Other", "Pilates", "9"}, []float64{0, 0, 0}}, // unknown values collapse to baseline
	}

	for _, tt := range tests {
		got, err := encoder.TransformRow(tt.row)
		if err != nil {
			t.Fatalf("TransformRow(%v) failed: %v", tt.row, err)
		}
		for j := range tt.expected {
			if got[j] != tt.expected[j] {
				t.Errorf("TransformRow(%v)[%d]: expected %f, got %f", tt.row, j, tt.expected[j], got[j])
			}
		}
	}
}

func TestDummyEncoder_TransformMatchesRows(t *testing.T) {
	encoder := newWorkoutEncoder(t)
	data := [][]string{
		{"Male", "Yoga", "1"},
		{"Female", "HIIT", "2"},
	}

	result, err := encoder.Transform(data)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	r, c := result.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("Expected 2x3 matrix, got %dx%d", r, c)
	}

	for i, row := range data {
		expected, _ := encoder.TransformRow(row)
		for j := 0; j < c; j++ {
			if result.At(i, j) != expected[j] {
				t.Errorf("Result[%d][%d]: expected %f, got %f", i, j, expected[j], result.At(i, j))
			}
		}
	}
}

func TestDummyEncoder_Errors(t *testing.T) {
	if _, err := preprocessing.NewDummyEncoder(nil, nil); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}
	if _, err := preprocessing.NewDummyEncoder([]string{"Gender"}, [][]string{{"Male"}, {"HIIT"}}); !errors.Is(err, errors.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := preprocessing.NewDummyEncoder([]string{"Gender"}, [][]string{{}}); err == nil {
		t.Error("expected error for feature without categories")
	}
	if _, err := preprocessing.NewDummyEncoder([]string{"Gender"}, [][]string{{"Male", "Male"}}); err == nil {
		t.Error("expected error for duplicate category")
	}

	encoder := newWorkoutEncoder(t)
	if _, err := encoder.TransformRow([]string{"Male"}); !errors.Is(err, errors.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := encoder.Transform(nil); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("expected ErrEmptyData, got %v", err)
	}

	var zero preprocessing.DummyEncoder
	if _, err := zero.TransformRow([]string{"Male"}); !errors.Is(err, errors.ErrNotFitted) {
		t.Errorf("expected ErrNotFitted, got %v", err)
	}
}
