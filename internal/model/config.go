package model

import "time"

// Config holds the complete configuration for the content engine
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Transcript TranscriptConfig `yaml:"transcript"`
	LLM        LLMConfig        `yaml:"llm"`
	Cache      CacheConfig      `yaml:"cache"`
	Publish    PublishConfig    `yaml:"publish"`
	Site       SiteConfig       `yaml:"site"`
	Leads      LeadsConfig      `yaml:"leads"`
	Output     OutputConfig     `yaml:"output"`
}

// TranscriptConfig configures the external transcript API. The API is
// expected to return the plain-text transcript for a YouTube video id,
// either as text/plain or as a JSON object with a "content" field.
type TranscriptConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"`
}

// HTTPConfig controls outbound HTTP behavior (feed, transcript, webhook)
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// LLMConfig holds generative provider configuration
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled)
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout for API requests, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens"`
}

// CacheConfig controls feed/transcript caching
type CacheConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Dir           string        `yaml:"dir"`
	FeedTTL       time.Duration `yaml:"feed_ttl"`
	TranscriptTTL time.Duration `yaml:"transcript_ttl"`
}

// PublishConfig holds the publish pipeline policy knobs
type PublishConfig struct {
	// MinWords is the minimum rendered word count before an expansion
	// request is attempted
	MinWords int `yaml:"min_words"`

	// Threshold is the minimum SEO score for automatic publication
	Threshold int `yaml:"threshold"`

	// MaxAttempts bounds provider regeneration when the score is low
	MaxAttempts int `yaml:"max_attempts"`

	// MaxPerRun limits new posts per invocation (prevents burst publishing)
	MaxPerRun int `yaml:"max_per_run"`

	// PostsPath is the JSON post index document
	PostsPath string `yaml:"posts_path"`

	// TemplatesDir receives one page file per published article
	TemplatesDir string `yaml:"templates_dir"`
}

// SiteConfig describes the site the articles are published for
type SiteConfig struct {
	BaseURL         string `yaml:"base_url"`
	OwnDomain       string `yaml:"own_domain"`
	CTAPath         string `yaml:"cta_path"`
	DefaultCategory string `yaml:"default_category"`
	WebhookURL      string `yaml:"-"`
}

// LeadsConfig configures the lead-capture HTTP server
type LeadsConfig struct {
	Addr            string `yaml:"addr"`
	DBPath          string `yaml:"db_path"`
	BrevoAPIKey     string `yaml:"-"`
	AuditListID     int    `yaml:"audit_list_id"`
	ResourceListID  int    `yaml:"resource_list_id"`
	ResourceBaseURL string `yaml:"resource_base_url"`
}

// OutputConfig controls terminal output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "SparksmetricsBlogBot/1.0 (+https://sparksmetrics.com)",
			MaxBodyBytes: 2_000_000,
		},
		Transcript: TranscriptConfig{
			BaseURL: "https://api.supadata.ai/v1/youtube/transcript",
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   120,
			MaxTokens: 8000,
		},
		Cache: CacheConfig{
			Enabled:       true,
			Dir:           ".sparksmetrics-cache",
			FeedTTL:       15 * time.Minute,
			TranscriptTTL: 24 * time.Hour,
		},
		Publish: PublishConfig{
			MinWords:     1000,
			Threshold:    70,
			MaxAttempts:  2,
			MaxPerRun:    1,
			PostsPath:    "app/blog_posts.json",
			TemplatesDir: "app/templates",
		},
		Site: SiteConfig{
			BaseURL:         "https://sparksmetrics.com",
			OwnDomain:       "sparksmetrics",
			CTAPath:         "/schedule-a-call/",
			DefaultCategory: "CRO",
		},
		Leads: LeadsConfig{
			Addr:            ":8080",
			DBPath:          "data/leads.db",
			ResourceBaseURL: "/static/resources",
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}
