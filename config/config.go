package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	App    AppConfig
	Flow   FlowConfig
	Figure FigureConfig
}

type ServerConfig struct {
	Port           string   `validate:"required,numeric"`
	MaxUploadBytes int64    `validate:"gt=0"`
	RateLimitRPS   float64  `validate:"gte=0"`
	RateLimitBurst int      `validate:"gte=0"`
	AllowOrigins   []string `validate:"dive,required"`
}

type AppConfig struct {
	Environment string `validate:"oneof=development production test"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	Version     string
}

type FlowConfig struct {
	Column        string `validate:"required"`
	Delimiter     string `validate:"required"`
	TrackDropoffs bool
	// MaxChains caps how many rows of one upload are aggregated; 0 means no cap.
	MaxChains int `validate:"gte=0"`
	OutDir    string
	DotBin    string
}

type FigureConfig struct {
	Width    int `validate:"gt=0"`
	Height   int `validate:"gt=0"`
	FontSize int `validate:"gt=0"`
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
			AllowOrigins:   getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Flow: FlowConfig{
			Column:        getEnv("FLOW_COLUMN", "RecipeFlow"),
			Delimiter:     getEnvRaw("FLOW_DELIMITER", " -> "),
			TrackDropoffs: getEnvAsBool("FLOW_TRACK_DROPOFFS", true),
			MaxChains:     getEnvAsInt("FLOW_MAX_CHAINS", 200),
			OutDir:        getEnv("OUT_DIR", "out"),
			DotBin:        getEnv("DOT_BIN", "dot"),
		},
		Figure: FigureConfig{
			Width:    getEnvAsInt("FIGURE_WIDTH", 2000),
			Height:   getEnvAsInt("FIGURE_HEIGHT", 1200),
			FontSize: getEnvAsInt("FIGURE_FONT_SIZE", 14),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRaw keeps surrounding whitespace, which is significant for delimiters.
func getEnvRaw(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
