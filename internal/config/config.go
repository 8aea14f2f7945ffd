package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Gemini  GeminiConfig
	Quiz    QuizConfig
	Session SessionConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// QuizConfig controls what is asked of the question source.
type QuizConfig struct {
	QuestionCount int
	// Validation is either "drop" or "strict".
	Validation string
}

type SessionConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.temperature", 0.8)
	v.SetDefault("gemini.timeout", 120)
	v.SetDefault("quiz.question_count", 50)
	v.SetDefault("quiz.validation", "drop")
	v.SetDefault("session.idle_ttl", 60)
	v.SetDefault("session.sweep_interval", 5)
}

// LoadConfig reads config.yaml (if present) and overlays environment variables.
// A missing config file is not an error: every key has a default.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Gemini: GeminiConfig{
			APIKey:      v.GetString("gemini.api_key"),
			Model:       v.GetString("gemini.model"),
			Temperature: v.GetFloat64("gemini.temperature"),
			Timeout:     time.Duration(v.GetInt("gemini.timeout")) * time.Second,
		},
		Quiz: QuizConfig{
			QuestionCount: v.GetInt("quiz.question_count"),
			Validation:    strings.ToLower(v.GetString("quiz.validation")),
		},
		Session: SessionConfig{
			IdleTTL:       time.Duration(v.GetInt("session.idle_ttl")) * time.Minute,
			SweepInterval: time.Duration(v.GetInt("session.sweep_interval")) * time.Minute,
		},
	}

	// Override with environment variables if set
	if apiKey := os.Getenv("API_KEY"); apiKey != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that cannot be defaulted away. The API key is
// checked when the Gemini client is built, not here.
func (c *Config) Validate() error {
	if c.Quiz.QuestionCount <= 0 {
		return fmt.Errorf("quiz.question_count must be positive, got %d", c.Quiz.QuestionCount)
	}
	switch c.Quiz.Validation {
	case "drop", "strict":
	default:
		return fmt.Errorf("quiz.validation must be \"drop\" or \"strict\", got %q", c.Quiz.Validation)
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("gemini.temperature out of range: %v", c.Gemini.Temperature)
	}
	return nil
}

// CurrentAPIKey reads the Gemini credential at call time: GEMINI_API_KEY, then
// the configured key, then API_KEY.
func (g GeminiConfig) CurrentAPIKey() string {
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		return apiKey
	}
	if g.APIKey != "" {
		return g.APIKey
	}
	return os.Getenv("API_KEY")
}
