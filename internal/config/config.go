package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Solver  SolverConfig
	Logging LoggingConfig
}

type SolverConfig struct {
	// Epsilon is the strict positivity floor on agent utilities.
	Epsilon float64
	// TimeLimitSeconds bounds one engine call.
	TimeLimitSeconds float64
	// MaxIterations bounds the NLP engine.
	MaxIterations int
	// Engine selects the LP engine ("simplex" or "golp").
	Engine string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load initializes and loads configuration using Viper
func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Error reading config file: %v", err)
		}
	}

	return &Config{
		Solver: SolverConfig{
			Epsilon:          viper.GetFloat64("SOLVER_EPSILON"),
			TimeLimitSeconds: viper.GetFloat64("SOLVER_TIME_LIMIT_SECONDS"),
			MaxIterations:    viper.GetInt("SOLVER_MAX_ITERATIONS"),
			Engine:           viper.GetString("SOLVER_ENGINE"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("SOLVER_EPSILON", 1e-6)
	viper.SetDefault("SOLVER_TIME_LIMIT_SECONDS", 300.0)
	viper.SetDefault("SOLVER_MAX_ITERATIONS", 1000)
	viper.SetDefault("SOLVER_ENGINE", "simplex")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
}
