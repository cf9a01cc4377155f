// Package config reads the dashboard's settings from the environment.
package config

import (
	"github.com/spf13/viper"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
)

// Configs are the process settings.
type Configs struct {
	AppName     string `mapstructure:"app_name"`
	AppEnv      string `mapstructure:"app_env"`
	AppLogLevel string `mapstructure:"app_log_level"`
	AppPort     int    `mapstructure:"app_port"`
	DatasetPath string `mapstructure:"dataset_path"`
	ModelPath   string `mapstructure:"model_path"`
}

// Defaults.
const (
	DefaultAppName     = "caloriedash"
	DefaultAppEnv      = "local"
	DefaultLogLevel    = "info"
	DefaultPort        = 8501
	DefaultDatasetPath = "data/gym_members_exercise_tracking.csv"
	DefaultModelPath   = "models/calories_model.json"
)

// IsProduction reports whether AppEnv names a production deployment.
func (c Configs) IsProduction() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production"
}

// Load binds the environment variables on v and decodes them. A nil v uses
// a fresh viper instance.
func Load(v *viper.Viper) (Configs, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	if err := bindEnvVars(v); err != nil {
		return Configs{}, err
	}

	var cfg Configs
	if err := v.Unmarshal(&cfg); err != nil {
		return Configs{}, kcalErrors.Wrap(err, "unmarshal config from environment")
	}
	if cfg.AppPort <= 0 || cfg.AppPort > 65535 {
		return Configs{}, kcalErrors.NewValueError("config.Load", "APP_PORT out of range")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", DefaultAppName)
	v.SetDefault("app_env", DefaultAppEnv)
	v.SetDefault("app_log_level", DefaultLogLevel)
	v.SetDefault("app_port", DefaultPort)
	v.SetDefault("dataset_path", DefaultDatasetPath)
	v.SetDefault("model_path", DefaultModelPath)
}

func bindEnvVars(v *viper.Viper) error {
	for key, env := range map[string]string{
		"app_name":      "APP_NAME",
		"app_env":       "APP_ENV",
		"app_log_level": "APP_LOG_LEVEL",
		"app_port":      "APP_PORT",
		"dataset_path":  "DATASET_PATH",
		"model_path":    "MODEL_PATH",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return kcalErrors.Wrapf(err, "bind %s", env)
		}
	}
	return nil
}
