package dataset_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/caloriedash/dataset"
	"github.com/ezoic/caloriedash/features"
	"github.com/ezoic/caloriedash/pkg/errors"
)

const fixture = "testdata/gym_members.csv"

func loadFixture(t *testing.T) *dataset.Dataset {
	t.Helper()
	d, err := dataset.Load(fixture)
	require.NoError(t, err)
	return d
}

func TestLoad(t *testing.T) {
	d := loadFixture(t)
	assert.Equal(t, 10, d.Len())
	assert.Equal(t, dataset.ColAge, d.Columns()[0])
	assert.Equal(t, dataset.ColBMI, d.Columns()[len(d.Columns())-1])

	first := d.Members()[0]
	assert.Equal(t, 56, first.Age)
	assert.Equal(t, "Male", first.Gender)
	assert.Equal(t, 1313.0, first.CaloriesBurned)
	assert.Equal(t, "Yoga", first.WorkoutType)
	assert.Equal(t, 3, first.ExperienceLevel)
}

func TestLoad_Unavailable(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	header := "Age,Gender,Weight (kg),Height (m),Max_BPM,Avg_BPM,Resting_BPM,Session_Duration (hours),Calories_Burned,Workout_Type,Fat_Percentage,Water_Intake (liters),Workout_Frequency (days/week),Experience_Level,BMI\n"

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.csv")},
		{"empty file", write("empty.csv", "")},
		{"header only", write("header.csv", header)},
		{"missing column", write("nocol.csv", "Age,Gender\n25,Male\n")},
		{"malformed cell", write("bad.csv", header+"abc,Male,88.3,1.71,180,157,60,1.69,1313.0,Yoga,12.6,3.5,4,3,30.2\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dataset.Load(tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrDataUnavailable), "got %v", err)
		})
	}
}

func TestLoadReader_ExtraColumnsIgnored(t *testing.T) {
	raw, err := os.ReadFile(fixture)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] += ",Member_ID"
		} else {
			lines[i] += ",m" + string(rune('0'+i%10))
		}
	}

	d, err := dataset.LoadReader(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	assert.Equal(t, 10, d.Len())
	assert.NotContains(t, d.Columns(), "Member_ID")
}

func TestHead(t *testing.T) {
	d := loadFixture(t)

	head := d.Head(5)
	require.Len(t, head.Rows, 5)
	assert.Equal(t, d.Columns(), head.Header)

	weight := indexOf(head.Header, dataset.ColWeight)
	calories := indexOf(head.Header, dataset.ColCaloriesBurned)
	gender := indexOf(head.Header, dataset.ColGender)
	assert.Equal(t, "88.3", head.Rows[0][weight])
	assert.Equal(t, "1313", head.Rows[0][calories])
	assert.Equal(t, "Female", head.Rows[1][gender])

	assert.Len(t, d.Head(100).Rows, 10)
	assert.Empty(t, d.Head(0).Rows)
}

func TestDescribe(t *testing.T) {
	d := loadFixture(t)
	desc := d.Describe()

	assert.Equal(t, "column", desc.Header[0])
	// every column except Gender and Workout_Type
	require.Len(t, desc.Rows, 13)

	for _, row := range desc.Rows {
		if row[0] == dataset.ColAge {
			assert.Equal(t, "10", row[1])
			assert.Equal(t, "38.50", row[2])
			assert.Equal(t, "25.00", row[4])
			assert.Equal(t, "56.00", row[8])
		}
	}
}

func TestGroupFloats(t *testing.T) {
	d := loadFixture(t)

	groups, err := d.GroupFloats(dataset.ColCaloriesBurned, dataset.ColWorkoutType)
	require.NoError(t, err)

	names := make([]string, len(groups))
	sizes := make(map[string]int)
	total := 0
	for i, g := range groups {
		names[i] = g.Name
		sizes[g.Name] = len(g.Values)
		total += len(g.Values)
	}
	assert.Equal(t, []string{"Cardio", "HIIT", "Strength", "Yoga"}, names)
	assert.Equal(t, map[string]int{"Cardio": 4, "HIIT": 2, "Strength": 3, "Yoga": 1}, sizes)
	assert.Equal(t, d.Len(), total)
	assert.Equal(t, []float64{1313}, groups[3].Values)

	_, err = d.GroupFloats(dataset.ColWorkoutType, dataset.ColGender)
	assert.Error(t, err)
}

func TestCorrelation(t *testing.T) {
	d := loadFixture(t)

	corr, err := d.Correlation(dataset.NumericColumns)
	require.NoError(t, err)
	n := corr.SymmetricDim()
	require.Equal(t, len(dataset.NumericColumns), n)

	for i := 0; i < n; i++ {
		assert.InDelta(t, 1.0, corr.At(i, i), 1e-9)
		for j := 0; j < n; j++ {
			v := corr.At(i, j)
			assert.False(t, math.IsNaN(v))
			assert.LessOrEqual(t, math.Abs(v), 1.0+1e-9)
			assert.Equal(t, v, corr.At(j, i))
		}
	}

	_, err = d.Correlation([]string{"Nope"})
	assert.Error(t, err)
}

func TestMemberInput(t *testing.T) {
	m := loadFixture(t).Members()[0]
	in := m.Input()

	assert.Equal(t, features.Male, in.Gender)
	assert.Equal(t, features.Yoga, in.WorkoutType)
	assert.InDelta(t, 1.69, in.SessionHours(), 1e-12)
	assert.InDelta(t, 101.4, in.SessionMinutes, 1e-9)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
