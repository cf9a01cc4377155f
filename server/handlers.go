package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ezoic/caloriedash/features"
	"github.com/ezoic/caloriedash/nav"
	"github.com/ezoic/caloriedash/pkg/log"
	"github.com/ezoic/caloriedash/views"
)

// predictionForm carries the Prediction page inputs. The bounds mirror the
// form widgets.
type predictionForm struct {
	Age              int     `form:"age" binding:"required,gte=10,lte=80"`
	BMI              float64 `form:"bmi" binding:"required,gte=10,lte=50"`
	Weight           float64 `form:"weight" binding:"required,gte=30,lte=200"`
	MaxBPM           int     `form:"max_bpm" binding:"required,gte=80,lte=220"`
	AvgBPM           int     `form:"avg_bpm" binding:"required,gte=60,lte=200"`
	SessionMinutes   float64 `form:"session_minutes" binding:"required,gte=10,lte=300"`
	WorkoutFrequency int     `form:"workout_frequency" binding:"required,gte=1,lte=7"`
	Gender           string  `form:"gender" binding:"required,oneof=Female Male"`
	WorkoutType      string  `form:"workout_type" binding:"required,oneof=Cardio HIIT Strength Yoga"`
	ExperienceLevel  int     `form:"experience_level" binding:"required,oneof=1 2 3"`
}

var formLabels = map[string]string{
	"Age":              "Age",
	"BMI":              "BMI",
	"Weight":           "Weight (kg)",
	"MaxBPM":           "Max BPM",
	"AvgBPM":           "Avg BPM",
	"SessionMinutes":   "Session Duration (minutes)",
	"WorkoutFrequency": "Workout Frequency (days/week)",
	"Gender":           "Gender",
	"WorkoutType":      "Workout Type",
	"ExperienceLevel":  "Experience Level",
}

func formFromInput(in features.Input) predictionForm {
	return predictionForm{
		Age:              in.Age,
		BMI:              in.BMI,
		Weight:           in.Weight,
		MaxBPM:           in.MaxBPM,
		AvgBPM:           in.AvgBPM,
		SessionMinutes:   in.SessionMinutes,
		WorkoutFrequency: in.WorkoutFrequency,
		Gender:           string(in.Gender),
		WorkoutType:      string(in.WorkoutType),
		ExperienceLevel:  in.ExperienceLevel,
	}
}

func (f predictionForm) input() features.Input {
	return features.Input{
		Age:              f.Age,
		BMI:              f.BMI,
		Weight:           f.Weight,
		MaxBPM:           f.MaxBPM,
		AvgBPM:           f.AvgBPM,
		SessionMinutes:   f.SessionMinutes,
		WorkoutFrequency: f.WorkoutFrequency,
		Gender:           features.Gender(f.Gender),
		WorkoutType:      features.WorkoutType(f.WorkoutType),
		ExperienceLevel:  f.ExperienceLevel,
	}
}

// validationMessages turns a binding error into messages for the form.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"The form could not be read: " + err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := formLabels[fe.Field()]
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, label+" is required")
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", label, fe.Param()))
		case "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", label, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", label, fe.Param()))
		default:
			msgs = append(msgs, label+" is invalid")
		}
	}
	return msgs
}

func (s *Server) render(c *gin.Context, status int, page nav.Page, state *views.PredictionState) {
	var buf bytes.Buffer
	if err := s.views.Render(&buf, page, state); err != nil {
		log.LogError(err, "Render failed", log.PageKey, page.String())
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "page could not be rendered")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) index(c *gin.Context) {
	s.render(c, http.StatusOK, controller(c).Current(), nil)
}

func (s *Server) navigate(c *gin.Context) {
	if _, err := controller(c).SelectName(c.Param("page")); err != nil {
		_ = c.Error(err)
		c.String(http.StatusNotFound, "unknown page %q", c.Param("page"))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) predict(c *gin.Context) {
	_ = controller(c).Select(nav.Prediction)

	form := formFromInput(features.DefaultInput())
	if err := c.ShouldBind(&form); err != nil {
		state := views.PredictionState{Form: form.input(), Errors: validationMessages(err)}
		s.render(c, http.StatusUnprocessableEntity, nav.Prediction, &state)
		return
	}

	in := form.input()
	res, err := s.views.Predict(in)
	if err != nil {
		log.LogError(err, "Prediction failed", log.OperationKey, log.OperationPredict)
		state := views.PredictionState{Form: in, Errors: []string{"The prediction could not be computed."}}
		s.render(c, http.StatusInternalServerError, nav.Prediction, &state)
		return
	}

	s.render(c, http.StatusOK, nav.Prediction, &views.PredictionState{Form: in, Result: &res})
}

func (s *Server) chart(c *gin.Context) {
	chart, ok := s.views.Chart(c.Param("name"))
	if !ok {
		c.String(http.StatusNotFound, "unknown chart %q", c.Param("name"))
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/svg+xml", chart.SVG)
}
