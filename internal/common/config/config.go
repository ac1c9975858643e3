package config

type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Server        ServerConfig            `mapstructure:"server"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	APIs          APIsConfig              `mapstructure:"apis"`
	Registry      RegistryConfig          `mapstructure:"registry"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	MaxUploadBytes  int64  `mapstructure:"max_upload_bytes"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	HealthAddress  string `mapstructure:"health_address"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

type APIsConfig struct {
	GenAI     GenAIConfig     `mapstructure:"genai"`
	WebSearch WebSearchConfig `mapstructure:"web_search"`
	PageFetch PageFetchConfig `mapstructure:"page_fetch"`
}

type GenAIConfig struct {
	BaseURL         string  `mapstructure:"base_url"`
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	Timeout         int     `mapstructure:"timeout"` // milliseconds
	Temperature     float32 `mapstructure:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
}

type WebSearchConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Engine     string `mapstructure:"engine"`
	NumResults int    `mapstructure:"num_results"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

type PageFetchConfig struct {
	Timeout   int    `mapstructure:"timeout"` // milliseconds
	UserAgent string `mapstructure:"user_agent"`
	MaxBytes  int64  `mapstructure:"max_bytes"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"` // optional JSON override of the activity catalogue
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type ObservabilityConfig struct {
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}
