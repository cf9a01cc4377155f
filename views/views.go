// Package views renders the four dashboard pages.
//
// Everything a page shows apart from the prediction result is computed once
// in New: the dataset preview and summary, the EDA charts and the model's
// score on the dataset. Rendering afterwards only executes templates, so a
// Views value is safe for concurrent use.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/ezoic/caloriedash/dataset"
	"github.com/ezoic/caloriedash/features"
	"github.com/ezoic/caloriedash/metrics"
	"github.com/ezoic/caloriedash/nav"
	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/pkg/log"
	"github.com/ezoic/caloriedash/predictor"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// DefaultTitle is the application title shown on every page.
const DefaultTitle = "Calories Burned Prediction App"

// previewRows is the number of dataset rows on the Introduction page.
const previewRows = 5

// Result is the outcome of one prediction.
type Result struct {
	Kcal     float64
	Warnings []string
}

// String formats the result the way the Prediction page shows it.
func (r Result) String() string {
	return fmt.Sprintf("Predicted Calories Burned: %.2f kcal", r.Kcal)
}

// PredictionState is what the Prediction page shows: the form values and,
// after a submission, either a result or the reasons it was rejected.
type PredictionState struct {
	Form   features.Input
	Result *Result
	Errors []string
}

// NewPredictionState returns the state of an untouched form.
func NewPredictionState() PredictionState {
	return PredictionState{Form: features.DefaultInput()}
}

type introductionData struct {
	Rows     string
	Columns  int
	Head     dataset.Table
	Target   string
	Features []string
}

type edaData struct {
	Charts   []Chart
	Describe dataset.Table
}

type predictionData struct {
	PredictionState
	Genders          []features.Gender
	WorkoutTypes     []features.WorkoutType
	ExperienceLevels []int
}

type conclusionData struct {
	Report metrics.Report
	Model  predictor.Info
}

type layoutData struct {
	Title   string
	Pages   []nav.Page
	Current nav.Page
	Body    interface{}
}

// Views holds the templates and precomputed content of every page.
type Views struct {
	title   string
	tmpl    *template.Template
	encoder *features.Encoder
	adapter *predictor.Adapter
	logger  log.Logger

	intro      introductionData
	eda        edaData
	conclusion conclusionData
	charts     map[string]Chart
}

// New prepares every page from the loaded dataset and model.
func New(d *dataset.Dataset, enc *features.Encoder, model *predictor.Model, adapter *predictor.Adapter) (*Views, error) {
	if d == nil || enc == nil || model == nil || adapter == nil {
		return nil, kcalErrors.NewValueError("views.New", "dataset, encoder, model and adapter are required")
	}
	logger := log.GetLoggerWithName("views")

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
		"num":   func(v float64) string { return humanize.FormatFloat("#,###.##", v) },
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, kcalErrors.Wrap(err, "parse templates")
	}

	charts, err := RenderCharts(d)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]Chart, len(charts))
	for _, c := range charts {
		byName[c.Name] = c
	}

	report, err := adapter.Evaluate(d, enc)
	if err != nil {
		return nil, kcalErrors.Wrap(err, "evaluate model on dataset")
	}

	v := &Views{
		title:   DefaultTitle,
		tmpl:    tmpl,
		encoder: enc,
		adapter: adapter,
		logger:  logger,
		intro: introductionData{
			Rows:    humanize.Comma(int64(d.Len())),
			Columns: len(d.Columns()),
			Head:    d.Head(previewRows),
			Target:  dataset.Target,
			Features: []string{
				"Age", "BMI", "Weight", "heart rate", "session duration",
				"workout frequency", "gender", "workout type", "experience level",
			},
		},
		eda:        edaData{Charts: charts, Describe: d.Describe()},
		conclusion: conclusionData{Report: report, Model: model.Info()},
		charts:     byName,
	}

	logger.Info("Views prepared",
		log.OperationKey, log.OperationRender,
		log.PhaseKey, log.PhaseStartup,
		"charts", len(charts),
	)
	return v, nil
}

// Chart returns the rendered chart called name.
func (v *Views) Chart(name string) (Chart, bool) {
	c, ok := v.charts[name]
	return c, ok
}

// Charts returns the EDA charts in display order.
func (v *Views) Charts() []Chart {
	return append([]Chart(nil), v.eda.Charts...)
}

// Predict encodes in and returns the model's estimate, with any advisory
// warnings about the input.
func (v *Views) Predict(in features.Input) (Result, error) {
	vec, err := v.encoder.Encode(in)
	if err != nil {
		return Result{}, kcalErrors.Wrap(err, "encode input")
	}
	kcal, err := v.adapter.Predict(vec)
	if err != nil {
		return Result{}, err
	}
	return Result{Kcal: kcal, Warnings: in.Warnings()}, nil
}

// Render writes page to w. state is only used by the Prediction page; nil
// renders the untouched form. Nothing is written if rendering fails.
func (v *Views) Render(w io.Writer, page nav.Page, state *PredictionState) error {
	var body interface{}
	switch page {
	case nav.Introduction:
		body = v.intro
	case nav.EDA:
		body = v.eda
	case nav.Prediction:
		if state == nil {
			s := NewPredictionState()
			state = &s
		}
		body = predictionData{
			PredictionState:  *state,
			Genders:          features.Genders(),
			WorkoutTypes:     features.WorkoutTypes(),
			ExperienceLevels: features.ExperienceLevels(),
		}
	case nav.Conclusion:
		body = v.conclusion
	default:
		return kcalErrors.NewValueError("Views.Render", "unknown page "+page.String())
	}

	var buf bytes.Buffer
	err := v.tmpl.ExecuteTemplate(&buf, page.Slug()+".tmpl", layoutData{
		Title:   v.title,
		Pages:   nav.Pages(),
		Current: page,
		Body:    body,
	})
	if err != nil {
		return kcalErrors.Wrapf(err, "render %s", page)
	}
	_, err = buf.WriteTo(w)
	return err
}
