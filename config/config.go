package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceS3   = "s3"
)

const defaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// Config holds everything the server and the export command read from the environment.
type Config struct {
	Port    string
	GinMode string
	Env     string

	ArtifactSource  string
	ArtifactDir     string
	ArtifactBaseURL string
	S3Bucket        string
	S3Prefix        string

	PopulationOutputDir string
	FetchTimeout        time.Duration
	RenderConcurrency   int
	ExtraVisualizations bool
	FrontendOrigin      string
	EChartsAssetsHost   string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:                get("PORT", "8080"),
		GinMode:             getenv("GIN_MODE"),
		Env:                 get("APP_ENV", "development"),
		ArtifactSource:      get("ARTIFACT_SOURCE", SourceFile),
		ArtifactDir:         get("ARTIFACT_DIR", "."),
		ArtifactBaseURL:     getenv("ARTIFACT_BASE_URL"),
		S3Bucket:            getenv("ARTIFACT_S3_BUCKET"),
		S3Prefix:            getenv("ARTIFACT_S3_PREFIX"),
		PopulationOutputDir: get("POPULATION_OUTPUT_DIR", "output"),
		FrontendOrigin:      get("FE_ORIGIN", "http://localhost:3000"),
		EChartsAssetsHost:   get("ECHARTS_ASSETS_HOST", defaultAssetsHost),
	}

	timeout, err := time.ParseDuration(get("FETCH_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %s is negative", timeout)
	}
	cfg.FetchTimeout = timeout

	concurrency, err := strconv.Atoi(get("RENDER_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RENDER_CONCURRENCY: %w", err)
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("invalid RENDER_CONCURRENCY: must be at least 1, got %d", concurrency)
	}
	cfg.RenderConcurrency = concurrency

	extras, err := strconv.ParseBool(get("EXTRA_VISUALIZATIONS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXTRA_VISUALIZATIONS: %w", err)
	}
	cfg.ExtraVisualizations = extras

	switch cfg.ArtifactSource {
	case SourceFile:
	case SourceHTTP:
		if cfg.ArtifactBaseURL == "" {
			return nil, fmt.Errorf("ARTIFACT_BASE_URL must be set when ARTIFACT_SOURCE is %q", SourceHTTP)
		}
	case SourceS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("ARTIFACT_S3_BUCKET must be set when ARTIFACT_SOURCE is %q", SourceS3)
		}
	default:
		return nil, fmt.Errorf("invalid ARTIFACT_SOURCE: %q", cfg.ArtifactSource)
	}

	return cfg, nil
}
