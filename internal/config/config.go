package config

import (
	"github.com/spf13/viper"

	"github.com/pders01/factorlab/internal/workspace"
)

// Defaults holds every configuration key with its default value
var Defaults = map[string]any{
	"paths.raw_dir":            "Raw_Data",
	"paths.output_dir":         "Results",
	"paths.data_dir":           "Data",
	"paths.results_dir":        "Results",
	"ingest.encoding":          "auto",
	"analysis.horn_iterations": 100,
	"analysis.seed":            42,
	"analysis.oblimin_gamma":   0.0,
	"keywords.model":           "nomic-embed-text",
	"keywords.ollama_url":      "http://localhost:11434",
	"keywords.top_n":           5,
}

// SetDefaults registers Defaults with viper
func SetDefaults() {
	for key, value := range Defaults {
		viper.SetDefault(key, value)
	}
}

// GetWorkspace returns the configured folders on the OS filesystem
func GetWorkspace() *workspace.Workspace {
	return workspace.New(
		viper.GetString("paths.raw_dir"),
		viper.GetString("paths.output_dir"),
		viper.GetString("paths.data_dir"),
		viper.GetString("paths.results_dir"),
	)
}

// GetEncoding returns the transcript encoding name
func GetEncoding() string {
	return viper.GetString("ingest.encoding")
}

// GetHornIterations returns how many random tables parallel analysis averages
func GetHornIterations() int {
	return viper.GetInt("analysis.horn_iterations")
}

// GetSeed returns the random seed for parallel analysis
func GetSeed() uint64 {
	return viper.GetUint64("analysis.seed")
}

// GetObliminGamma returns the oblimin gamma parameter
func GetObliminGamma() float64 {
	return viper.GetFloat64("analysis.oblimin_gamma")
}

// GetKeywordModel returns the Ollama embedding model
func GetKeywordModel() string {
	return viper.GetString("keywords.model")
}

// GetOllamaURL returns the Ollama API endpoint
func GetOllamaURL() string {
	return viper.GetString("keywords.ollama_url")
}

// GetKeywordCount returns how many keywords to keep per topic
func GetKeywordCount() int {
	return viper.GetInt("keywords.top_n")
}
