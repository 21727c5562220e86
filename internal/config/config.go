package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Sync struct {
		LookbackDays int           `yaml:"lookback_days" default:"90"`
		MaxResults   int64         `yaml:"max_results" default:"100"`
		AutoSync     bool          `yaml:"auto_sync" default:"false"`
		Interval     time.Duration `yaml:"interval" default:"30m"`
		FetchTimeout time.Duration `yaml:"fetch_timeout" default:"30s"`
	} `yaml:"sync"`

	Gmail struct {
		UserID      string `yaml:"user_id" default:"me"`
		AccessToken string `yaml:"access_token"`
	} `yaml:"gmail"`

	LLM struct {
		Provider    string        `yaml:"provider" default:"claude"`
		APIKey      string        `yaml:"api_key"`
		Model       string        `yaml:"model"`
		BaseURL     string        `yaml:"base_url"`
		MaxTokens   int           `yaml:"max_tokens" default:"1024"`
		Temperature float32       `yaml:"temperature" default:"0.1"`
		Timeout     time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"llm"`

	Scorer struct {
		PoolSize  int           `yaml:"pool_size" default:"4"`
		RateLimit int           `yaml:"rate_limit" default:"60"` // oracle requests per minute
		Timeout   time.Duration `yaml:"timeout" default:"30s"`
		Resume    string        `yaml:"resume"`
		Skills    []string      `yaml:"skills"`
	} `yaml:"scorer"`

	Cache struct {
		Backend string        `yaml:"backend" default:"memory"` // memory or redis
		TTL     time.Duration `yaml:"ttl" default:"24h"`
	} `yaml:"cache"`

	Store struct {
		Enabled bool          `yaml:"enabled" default:"false"`
		TTL     time.Duration `yaml:"ttl" default:"720h"`
	} `yaml:"store"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Sync.LookbackDays = 90
	config.Sync.MaxResults = 100
	config.Sync.Interval = 30 * time.Minute
	config.Sync.FetchTimeout = 30 * time.Second

	config.Gmail.UserID = "me"

	config.LLM.Provider = "claude"
	config.LLM.MaxTokens = 1024
	config.LLM.Temperature = 0.1
	config.LLM.Timeout = 30 * time.Second

	config.Scorer.PoolSize = 4
	config.Scorer.RateLimit = 60
	config.Scorer.Timeout = 30 * time.Second

	config.Cache.Backend = "memory"
	config.Cache.TTL = 24 * time.Hour

	config.Store.TTL = 720 * time.Hour

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.Timeout = 5 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if apiKey := os.Getenv("LLM_API_KEY"); apiKey != "" {
		c.LLM.APIKey = apiKey
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		c.LLM.BaseURL = baseURL
	}

	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.LLM.Timeout = d
		}
	}

	if token := os.Getenv("GMAIL_ACCESS_TOKEN"); token != "" {
		c.Gmail.AccessToken = token
	}

	if userID := os.Getenv("GMAIL_USER_ID"); userID != "" {
		c.Gmail.UserID = userID
	}

	if lookback := os.Getenv("SYNC_LOOKBACK_DAYS"); lookback != "" {
		if days, err := strconv.Atoi(lookback); err == nil {
			c.Sync.LookbackDays = days
		}
	}

	if autoSync := os.Getenv("SYNC_AUTO"); autoSync != "" {
		c.Sync.AutoSync = autoSync == "true" || autoSync == "1"
	}

	if interval := os.Getenv("SYNC_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Sync.Interval = d
		}
	}

	if resume := os.Getenv("SCORER_RESUME"); resume != "" {
		c.Scorer.Resume = resume
	}

	if poolSize := os.Getenv("SCORER_POOL_SIZE"); poolSize != "" {
		if size, err := strconv.Atoi(poolSize); err == nil {
			c.Scorer.PoolSize = size
		}
	}

	if rateLimit := os.Getenv("SCORER_RATE_LIMIT"); rateLimit != "" {
		if limit, err := strconv.Atoi(rateLimit); err == nil {
			c.Scorer.RateLimit = limit
		}
	}

	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		c.Cache.Backend = backend
	}

	if storeEnabled := os.Getenv("STORE_ENABLED"); storeEnabled != "" {
		c.Store.Enabled = storeEnabled == "true" || storeEnabled == "1"
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
