// Package features defines the feature schema the calories model was trained
// on and the encoder that maps form input onto it.
//
// The schema is the only contract between the model artifact and the
// dashboard: coefficients are positional, so a renamed, missing or reordered
// column produces a wrong number rather than an error. Schema.Validate is
// therefore run against the artifact's recorded column names at load time.
package features

import (
	"fmt"
	"strings"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

// Column names of the version 1 schema, as they appear in the training data.
const (
	Age              = "Age"
	BMI              = "BMI"
	Weight           = "Weight (kg)"
	MaxBPM           = "Max_BPM"
	AvgBPM           = "Avg_BPM"
	SessionDuration  = "Session_Duration (hours)"
	WorkoutFrequency = "Workout_Frequency (days/week)"
	GenderMale       = "Gender_Male"
	WorkoutTypeHIIT  = "Workout_Type_HIIT"
	ExperienceLevel2 = "Experience_Level_2"
)

// SchemaVersion is the version of the schema returned by DefaultSchema.
const SchemaVersion = "1"

// Schema is an ordered, versioned list of model input columns.
type Schema struct {
	Version string
	Names   []string
}

// DefaultSchema returns the schema the calories model was trained on.
func DefaultSchema() Schema {
	return Schema{
		Version: SchemaVersion,
		Names: []string{
			Age,
			BMI,
			Weight,
			MaxBPM,
			AvgBPM,
			SessionDuration,
			WorkoutFrequency,
			GenderMale,
			WorkoutTypeHIIT,
			ExperienceLevel2,
		},
	}
}

// Len returns the number of columns.
func (s Schema) Len() int {
	return len(s.Names)
}

// Index returns the position of name, or -1.
func (s Schema) Index(name string) int {
	for i, n := range s.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Validate checks that names lists exactly the schema columns in schema
// order. version is the schema version recorded by the artifact; an empty
// version is accepted. The returned error is marked ErrSchemaMismatch.
func (s Schema) Validate(version string, names []string) error {
	if version != "" && version != s.Version {
		return kcalErrors.Mark(
			kcalErrors.Newf("schema version %q, want %q", version, s.Version),
			kcalErrors.ErrSchemaMismatch)
	}
	if len(names) != len(s.Names) {
		return kcalErrors.Mark(
			kcalErrors.NewDimensionError("Schema.Validate", len(s.Names), len(names), 1),
			kcalErrors.ErrSchemaMismatch)
	}

	var diffs []string
	for i, want := range s.Names {
		if names[i] != want {
			diffs = append(diffs, fmt.Sprintf("column %d is %q, want %q", i, names[i], want))
		}
	}
	if len(diffs) > 0 {
		return kcalErrors.Mark(
			kcalErrors.Newf("%s", strings.Join(diffs, "; ")),
			kcalErrors.ErrSchemaMismatch)
	}
	return nil
}
