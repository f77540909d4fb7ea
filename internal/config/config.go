package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/face-bench/internal/bench"
)

//go:embed strategies.yaml
var strategiesYAML []byte

type Config struct {
	Recognizer RecognizerConfig
	Reference  ReferenceConfig
	Bench      BenchConfig
	Strategies []bench.Tier
}

type RecognizerConfig struct {
	URL          string // face embedding service, defaults to http://localhost:8000
	MaxImageSize int    // longer-edge bound for uploads, 0 keeps originals
}

type ReferenceConfig struct {
	Dir string // directory of known-face images
}

type BenchConfig struct {
	Tolerance         float64 // match distance threshold, defaults to 0.6
	MinItemsPerWorker int     // floor on work per worker, 0 disables
	StealFraction     float64 // share of a donor queue moved per steal, defaults to 0.5
}

// strategiesFile matches the layout of the embedded strategies.yaml.
type strategiesFile struct {
	Tiers []bench.Tier `yaml:"tiers"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var strategies strategiesFile
	if err := yaml.Unmarshal(strategiesYAML, &strategies); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded strategies.yaml: " + err.Error())
	}

	return &Config{
		Recognizer: RecognizerConfig{
			URL:          os.Getenv("FACEBENCH_RECOGNIZER_URL"),
			MaxImageSize: envInt("FACEBENCH_MAX_IMAGE_SIZE", 0),
		},
		Reference: ReferenceConfig{
			Dir: os.Getenv("FACEBENCH_REFERENCE_DIR"),
		},
		Bench: BenchConfig{
			Tolerance:         envFloat("FACEBENCH_TOLERANCE", 0.6),
			MinItemsPerWorker: envInt("FACEBENCH_MIN_ITEMS_PER_WORKER", 0),
			StealFraction:     envFloat("FACEBENCH_STEAL_FRACTION", 0.5),
		},
		Strategies: strategies.Tiers,
	}
}
