package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ads-parser/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ADSConfig holds settings for the ADS API client.
type ADSConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the ADS API root (default https://api.adsabs.harvard.edu/v1).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Token is the ADS API bearer token. Never serialized.
	Token string `json:"-" yaml:"-" mapstructure:"token"`

	// MaxBatchSize caps the number of bibcodes accepted by one bulk lookup
	// (default 100).
	MaxBatchSize int `json:"max_batch_size" yaml:"max_batch_size" mapstructure:"max_batch_size"`

	// MaxRetries enables retrying HTTP 429 responses with backoff. Zero
	// means a single attempt per request.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// BulkConfig holds settings for the bulk retrieval stage.
type BulkConfig struct {
	// BatchSize is the number of bibcodes per bulk request (default 50).
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`

	// IncludeAbstracts requests the abstract field for every record.
	IncludeAbstracts bool `json:"include_abstracts" yaml:"include_abstracts" mapstructure:"include_abstracts"`

	// BatchDelay is the minimum spacing between consecutive bulk requests
	// (default 1s). Zero disables pacing.
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay" mapstructure:"batch_delay"`
}

// CatalogueConfig holds settings for the catalogue download stage.
type CatalogueConfig struct {
	BulkConfig `yaml:",inline" mapstructure:",squash"`

	// InputPath is the CSV file listing bibcodes.
	InputPath string `json:"input_path" yaml:"input_path" mapstructure:"input_path"`

	// Column is the CSV header holding bibcodes (default "bibcode",
	// matched case-insensitively).
	Column string `json:"column" yaml:"column" mapstructure:"column"`

	// OutputPath is where the JSON artifact is written.
	OutputPath string `json:"output_path" yaml:"output_path" mapstructure:"output_path"`
}

// TextField selects which record text feeds the frequency analysis.
type TextField string

const (
	FieldTitles    TextField = "titles"
	FieldAbstracts TextField = "abstracts"
	FieldAll       TextField = "all"
)

// WordCloudConfig holds settings for the text-analysis stage.
type WordCloudConfig struct {
	// Field selects titles, abstracts, or both.
	Field TextField `json:"field" yaml:"field" mapstructure:"field"`

	// TopN is the number of ranked words written to the frequency file
	// (default 100).
	TopN int `json:"top_n" yaml:"top_n" mapstructure:"top_n"`

	// MinWordLength drops shorter tokens (default 3).
	MinWordLength int `json:"min_word_length" yaml:"min_word_length" mapstructure:"min_word_length"`

	// StopwordsFile optionally points to extra stopwords (YAML list or one
	// word per line).
	StopwordsFile string `json:"stopwords_file,omitempty" yaml:"stopwords_file,omitempty" mapstructure:"stopwords_file"`

	// Width and Height are the PNG dimensions in pixels (default 1200x600).
	Width  int `json:"width" yaml:"width" mapstructure:"width"`
	Height int `json:"height" yaml:"height" mapstructure:"height"`

	// MaxWords is the number of words drawn in the cloud (default 100).
	MaxWords int `json:"max_words" yaml:"max_words" mapstructure:"max_words"`
}

// Config groups all stage configurations. It is the shape of the
// ads-parser.yaml config file.
type Config struct {
	ADS       ADSConfig       `json:"ads" yaml:"ads" mapstructure:"ads"`
	Catalogue CatalogueConfig `json:"catalogue" yaml:"catalogue" mapstructure:"catalogue"`
	WordCloud WordCloudConfig `json:"wordcloud" yaml:"wordcloud" mapstructure:"wordcloud"`
}
