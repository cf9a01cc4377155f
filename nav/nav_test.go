package nav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/caloriedash/nav"
	"github.com/ezoic/caloriedash/pkg/errors"
)

func TestNewController_StartsOnIntroduction(t *testing.T) {
	assert.Equal(t, nav.Introduction, nav.NewController().Current())

	var zero nav.Controller
	assert.Equal(t, nav.Introduction, zero.Current())
}

func TestSelect_AnyToAny(t *testing.T) {
	for _, from := range nav.Pages() {
		for _, to := range nav.Pages() {
			c := nav.NewController()
			require.NoError(t, c.Select(from))
			require.NoError(t, c.Select(to))
			assert.Equal(t, to, c.Current(), "%s -> %s", from, to)
		}
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		in   string
		want nav.Page
	}{
		{"Introduction", nav.Introduction},
		{"eda", nav.EDA},
		{"EDA", nav.EDA},
		{"prediction", nav.Prediction},
		{"CONCLUSION", nav.Conclusion},
	}
	for _, tt := range tests {
		got, err := nav.ParsePage(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := nav.ParsePage("Settings")
	var ve *errors.ValueError
	assert.True(t, errors.As(err, &ve))
}

func TestSelectName_UnknownKeepsState(t *testing.T) {
	c := nav.NewController()
	_, err := c.SelectName("prediction")
	require.NoError(t, err)

	p, err := c.SelectName("admin")
	assert.Error(t, err)
	assert.Equal(t, nav.Prediction, p)
	assert.Equal(t, nav.Prediction, c.Current())

	assert.Error(t, c.Select(nav.Page(42)))
	assert.Equal(t, nav.Prediction, c.Current())
}

func TestPageNames(t *testing.T) {
	names := make([]string, 0, 4)
	for _, p := range nav.Pages() {
		names = append(names, p.String())
		assert.Equal(t, p, mustParse(t, p.Slug()))
	}
	assert.Equal(t, []string{"Introduction", "EDA", "Prediction", "Conclusion"}, names)
	assert.Equal(t, "Unknown", nav.Page(-1).String())
}

func mustParse(t *testing.T, name string) nav.Page {
	t.Helper()
	p, err := nav.ParsePage(name)
	require.NoError(t, err)
	return p
}
