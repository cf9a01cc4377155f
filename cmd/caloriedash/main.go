// Command caloriedash serves the calories burned prediction dashboard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"

	"github.com/ezoic/caloriedash/config"
	"github.com/ezoic/caloriedash/dataset"
	"github.com/ezoic/caloriedash/features"
	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/pkg/log"
	"github.com/ezoic/caloriedash/predictor"
	"github.com/ezoic/caloriedash/server"
	"github.com/ezoic/caloriedash/views"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		fail(os.Stderr, err)
	}
	log.SetupLogger(cfg.AppLogLevel)

	srv, err := build(cfg)
	if err != nil {
		fail(os.Stderr, err)
	}
	if err := srv.Run(ctx); err != nil {
		fail(os.Stderr, err)
	}
}

// build loads everything the dashboard needs. Any failure here happens
// before the listener starts.
func build(cfg config.Configs) (*server.Server, error) {
	d, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}

	schema := features.DefaultSchema()
	model, err := predictor.LoadModel(cfg.ModelPath, schema)
	if err != nil {
		return nil, err
	}
	enc, err := features.NewEncoder(schema)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	adapter, err := predictor.NewAdapter(model, reg)
	if err != nil {
		return nil, err
	}

	v, err := views.New(d, enc, model, adapter)
	if err != nil {
		return nil, err
	}
	return server.New(cfg, v, reg), nil
}

// describe explains a startup failure to whoever launched the process.
func describe(err error) string {
	switch {
	case kcalErrors.Is(err, kcalErrors.ErrDataUnavailable):
		return "The gym members dataset could not be loaded. Check DATASET_PATH."
	case kcalErrors.Is(err, kcalErrors.ErrSchemaMismatch):
		return "The model artifact was trained on different features than this dashboard encodes. Re-export it with the current feature schema."
	case kcalErrors.Is(err, kcalErrors.ErrModelUnavailable):
		return "The trained model could not be loaded. Check MODEL_PATH."
	default:
		return "caloriedash could not start."
	}
}

func fail(w io.Writer, err error) {
	log.LogError(err, "Startup failed", log.PhaseKey, log.PhaseStartup)
	_, _ = fmt.Fprintf(w, "%s\n  %v\n", describe(err), err)
	os.Exit(1)
}
