package features

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/preprocessing"
)

// Gender as entered on the form.
type Gender string

// Genders.
const (
	Female Gender = "Female"
	Male   Gender = "Male"
)

// Genders lists the form choices in display order.
func Genders() []Gender {
	return []Gender{Female, Male}
}

// WorkoutType as entered on the form.
type WorkoutType string

// Workout types.
const (
	Cardio   WorkoutType = "Cardio"
	HIIT     WorkoutType = "HIIT"
	Strength WorkoutType = "Strength"
	Yoga     WorkoutType = "Yoga"
)

// WorkoutTypes lists the form choices in display order.
func WorkoutTypes() []WorkoutType {
	return []WorkoutType{Cardio, HIIT, Strength, Yoga}
}

// ExperienceLevels lists the form choices in display order.
func ExperienceLevels() []int {
	return []int{1, 2, 3}
}

// Input is one set of raw, human-entered values. Bounds are enforced where
// the values are entered, not here.
type Input struct {
	Age              int
	BMI              float64
	Weight           float64 // kg
	MaxBPM           int
	AvgBPM           int
	SessionMinutes   float64
	WorkoutFrequency int // days per week
	Gender           Gender
	WorkoutType      WorkoutType
	ExperienceLevel  int
}

// DefaultInput returns the values the prediction form starts with.
func DefaultInput() Input {
	return Input{
		Age:              25,
		BMI:              24.0,
		Weight:           70.0,
		MaxBPM:           170,
		AvgBPM:           140,
		SessionMinutes:   60,
		WorkoutFrequency: 3,
		Gender:           Female,
		WorkoutType:      Cardio,
		ExperienceLevel:  1,
	}
}

// SessionHours converts the entered session duration to the hours the
// model was trained on.
func (in Input) SessionHours() float64 {
	return in.SessionMinutes / 60.0
}

// Warnings lists physiologically inconsistent combinations. They are
// advisory: the input is still encoded and predicted as entered.
func (in Input) Warnings() []string {
	var warnings []string
	if in.AvgBPM > in.MaxBPM {
		warnings = append(warnings,
			fmt.Sprintf("Avg BPM (%d) is higher than Max BPM (%d); the estimate may be unreliable.", in.AvgBPM, in.MaxBPM))
	}
	return warnings
}

// Vector is an encoded input in schema order.
type Vector []float64

// Encoder maps Input onto a Schema.
type Encoder struct {
	schema  Schema
	dummies *preprocessing.DummyEncoder
}

// numericColumns are the leading schema columns copied from Input.
var numericColumns = []string{Age, BMI, Weight, MaxBPM, AvgBPM, SessionDuration, WorkoutFrequency}

// NewEncoder builds the encoder for schema. It fails when the columns the
// encoder produces do not line up with the schema.
func NewEncoder(schema Schema) (*Encoder, error) {
	dummies, err := preprocessing.NewDummyEncoder(
		[]string{"Gender", "Workout_Type", "Experience_Level"},
		[][]string{{string(Male)}, {string(HIIT)}, {"2"}},
	)
	if err != nil {
		return nil, kcalErrors.Wrap(err, "build indicator encoder")
	}

	produced := append(append([]string(nil), numericColumns...), dummies.GetFeatureNamesOut()...)
	if err := schema.Validate("", produced); err != nil {
		return nil, kcalErrors.Wrapf(err, "encoder does not produce schema %s", schema.Version)
	}

	return &Encoder{schema: schema, dummies: dummies}, nil
}

// Schema returns the schema the encoder produces.
func (e *Encoder) Schema() Schema {
	return e.schema
}

func (e *Encoder) numeric(in Input) []float64 {
	return []float64{
		float64(in.Age),
		in.BMI,
		in.Weight,
		float64(in.MaxBPM),
		float64(in.AvgBPM),
		in.SessionHours(),
		float64(in.WorkoutFrequency),
	}
}

func categorical(in Input) []string {
	return []string{string(in.Gender), string(in.WorkoutType), strconv.Itoa(in.ExperienceLevel)}
}

// Encode returns in as a Vector in schema order. Gender, workout type and
// experience level become single indicators: Male, HIIT and level 2 encode
// to 1, every other value to 0.
func (e *Encoder) Encode(in Input) (Vector, error) {
	indicators, err := e.dummies.TransformRow(categorical(in))
	if err != nil {
		return nil, err
	}

	v := make(Vector, 0, e.schema.Len())
	v = append(v, e.numeric(in)...)
	v = append(v, indicators...)
	return v, nil
}

// EncodeBatch encodes inputs into a len(inputs) × schema.Len() matrix whose
// rows equal Encode of each input.
func (e *Encoder) EncodeBatch(inputs []Input) (*mat.Dense, error) {
	if len(inputs) == 0 {
		return nil, kcalErrors.NewModelError("Encoder.EncodeBatch", "empty data", kcalErrors.ErrEmptyData)
	}

	cats := make([][]string, len(inputs))
	for i, in := range inputs {
		cats[i] = categorical(in)
	}
	indicators, err := e.dummies.Transform(cats)
	if err != nil {
		return nil, err
	}

	nNumeric := len(numericColumns)
	X := mat.NewDense(len(inputs), e.schema.Len(), nil)
	for i, in := range inputs {
		for j, v := range e.numeric(in) {
			X.Set(i, j, v)
		}
		for j := 0; j < e.dummies.NOutputs; j++ {
			X.Set(i, nNumeric+j, indicators.At(i, j))
		}
	}
	return X, nil
}
