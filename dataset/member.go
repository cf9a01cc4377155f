package dataset

import "github.com/ezoic/caloriedash/features"

// Column names of the gym members CSV.
const (
	ColAge              = "Age"
	ColGender           = "Gender"
	ColWeight           = "Weight (kg)"
	ColHeight           = "Height (m)"
	ColMaxBPM           = "Max_BPM"
	ColAvgBPM           = "Avg_BPM"
	ColRestingBPM       = "Resting_BPM"
	ColSessionDuration  = "Session_Duration (hours)"
	ColCaloriesBurned   = "Calories_Burned"
	ColWorkoutType      = "Workout_Type"
	ColFatPercentage    = "Fat_Percentage"
	ColWaterIntake      = "Water_Intake (liters)"
	ColWorkoutFrequency = "Workout_Frequency (days/week)"
	ColExperienceLevel  = "Experience_Level"
	ColBMI              = "BMI"
)

// Target is the column the model predicts.
const Target = ColCaloriesBurned

// NumericColumns are the columns shown in the correlation heatmap.
var NumericColumns = []string{
	ColAge,
	ColBMI,
	ColWeight,
	ColHeight,
	ColMaxBPM,
	ColAvgBPM,
	ColRestingBPM,
	ColSessionDuration,
	ColFatPercentage,
	ColWaterIntake,
	ColWorkoutFrequency,
	ColCaloriesBurned,
}

// Member is one row of the dataset: one gym member's session.
type Member struct {
	Age              int     `csv:"Age" dataframe:"Age"`
	Gender           string  `csv:"Gender" dataframe:"Gender"`
	Weight           float64 `csv:"Weight (kg)" dataframe:"Weight (kg)"`
	Height           float64 `csv:"Height (m)" dataframe:"Height (m)"`
	MaxBPM           int     `csv:"Max_BPM" dataframe:"Max_BPM"`
	AvgBPM           int     `csv:"Avg_BPM" dataframe:"Avg_BPM"`
	RestingBPM       int     `csv:"Resting_BPM" dataframe:"Resting_BPM"`
	SessionDuration  float64 `csv:"Session_Duration (hours)" dataframe:"Session_Duration (hours)"`
	CaloriesBurned   float64 `csv:"Calories_Burned" dataframe:"Calories_Burned"`
	WorkoutType      string  `csv:"Workout_Type" dataframe:"Workout_Type"`
	FatPercentage    float64 `csv:"Fat_Percentage" dataframe:"Fat_Percentage"`
	WaterIntake      float64 `csv:"Water_Intake (liters)" dataframe:"Water_Intake (liters)"`
	WorkoutFrequency int     `csv:"Workout_Frequency (days/week)" dataframe:"Workout_Frequency (days/week)"`
	ExperienceLevel  int     `csv:"Experience_Level" dataframe:"Experience_Level"`
	BMI              float64 `csv:"BMI" dataframe:"BMI"`
}

// Input returns the member's session as prediction form input.
func (m Member) Input() features.Input {
	return features.Input{
		Age:              m.Age,
		BMI:              m.BMI,
		Weight:           m.Weight,
		MaxBPM:           m.MaxBPM,
		AvgBPM:           m.AvgBPM,
		SessionMinutes:   m.SessionDuration * 60,
		WorkoutFrequency: m.WorkoutFrequency,
		Gender:           features.Gender(m.Gender),
		WorkoutType:      features.WorkoutType(m.WorkoutType),
		ExperienceLevel:  m.ExperienceLevel,
	}
}
