package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultLabels is the language set compared when no override is configured
var DefaultLabels = []string{"JavaScript", "Java", "Python", "Ruby", "PHP", "C++", "CSS", "C#", "C", "Go"}

// Config contains runtime settings for the CLI and the MCP server
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // json or console
	Host      string `mapstructure:"host"`
	Port      string `mapstructure:"port"`

	Currency       string        `mapstructure:"currency"`
	Labels         []string      `mapstructure:"labels"`
	Concurrency    int           `mapstructure:"concurrency"`
	RunTimeout     time.Duration `mapstructure:"run_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	HeadHunter HeadHunter `mapstructure:"headhunter"`
	SuperJob   SuperJob   `mapstructure:"superjob"`
	Sheets     Sheets     `mapstructure:"sheets"`
}

// HeadHunter holds api.hh.ru query settings
type HeadHunter struct {
	Title         string  `mapstructure:"title"`
	BaseURL       string  `mapstructure:"base_url"`
	UserAgent     string  `mapstructure:"user_agent"`
	QueryTemplate string  `mapstructure:"query_template"`
	CategoryParam string  `mapstructure:"category_param"`
	Category      string  `mapstructure:"category"`
	Area          string  `mapstructure:"area"`
	PeriodDays    int     `mapstructure:"period"`
	PerPage       int     `mapstructure:"per_page"`
	MaxPages      int     `mapstructure:"max_pages"`
	RatePerSecond float64 `mapstructure:"rps"`
}

// SuperJob holds api.superjob.ru query settings
type SuperJob struct {
	Title         string  `mapstructure:"title"`
	BaseURL       string  `mapstructure:"base_url"`
	Key           string  `mapstructure:"key"`
	QueryTemplate string  `mapstructure:"query_template"`
	Catalogues    string  `mapstructure:"catalogues"`
	Town          string  `mapstructure:"town"`
	PeriodDays    int     `mapstructure:"period"` // 0 means all time
	Count         int     `mapstructure:"count"`
	MaxPages      int     `mapstructure:"max_pages"`
	RatePerSecond float64 `mapstructure:"rps"`
}

// Sheets enables the optional Google Sheets export
type Sheets struct {
	CredentialsPath string `mapstructure:"credentials_path"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
}

// Enabled reports whether both the credentials and the target sheet are set
func (s Sheets) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

const envPrefix = "DEVSALARIES"

// bare names kept for compatibility with existing .env files
var envAliases = map[string]string{
	"log_level":               "LOG_LEVEL",
	"log_format":              "LOG_FORMAT",
	"host":                    "MCP_HOST",
	"port":                    "PORT",
	"superjob.key":            "SJ_KEY",
	"headhunter.user_agent":   "HH_USER_AGENT",
	"sheets.credentials_path": "GOOGLE_SHEETS_CREDENTIALS_PATH",
	"sheets.spreadsheet_id":   "GOOGLE_SHEETS_SPREADSHEET_ID",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")

	v.SetDefault("currency", "RUB")
	v.SetDefault("labels", DefaultLabels)
	v.SetDefault("concurrency", 4)
	v.SetDefault("run_timeout", 5*time.Minute)
	v.SetDefault("request_timeout", 30*time.Second)

	v.SetDefault("headhunter.title", "HeadHunter Moscow")
	v.SetDefault("headhunter.base_url", "https://api.hh.ru")
	v.SetDefault("headhunter.user_agent", "devsalaries/0.1")
	v.SetDefault("headhunter.query_template", "Программист %s")
	v.SetDefault("headhunter.category_param", "professional_role")
	v.SetDefault("headhunter.category", "96")
	v.SetDefault("headhunter.area", "1")
	v.SetDefault("headhunter.period", 30)
	v.SetDefault("headhunter.per_page", 100)
	v.SetDefault("headhunter.max_pages", 20)
	v.SetDefault("headhunter.rps", 5.0)

	v.SetDefault("superjob.title", "SuperJob Moscow")
	v.SetDefault("superjob.base_url", "https://api.superjob.ru")
	v.SetDefault("superjob.key", "")
	v.SetDefault("superjob.query_template", "Программист %s")
	v.SetDefault("superjob.catalogues", "48")
	v.SetDefault("superjob.town", "4")
	v.SetDefault("superjob.period", 0)
	v.SetDefault("superjob.count", 100)
	v.SetDefault("superjob.max_pages", 20)
	v.SetDefault("superjob.rps", 5.0)

	v.SetDefault("sheets.credentials_path", "")
	v.SetDefault("sheets.spreadsheet_id", "")
}

// Load populates config from an optional YAML file, .env and environment variables.
// Environment wins over the file; an empty path skips the file.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return Config{}, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) normalize() {
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))

	labels := make([]string, 0, len(c.Labels))
	for _, l := range c.Labels {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	c.Labels = labels
}

// Validate reports every configuration problem at once
func (c Config) Validate() error {
	var problems []string

	if c.SuperJob.Key == "" {
		problems = append(problems, "missing required environment variable SJ_KEY (superjob.key)")
	}
	if c.Currency == "" {
		problems = append(problems, "currency must not be empty")
	}
	if len(c.Labels) == 0 {
		problems = append(problems, "at least one label is required")
	}
	if c.Concurrency <= 0 {
		problems = append(problems, "concurrency must be positive")
	}
	if c.HeadHunter.PerPage <= 0 || c.SuperJob.Count <= 0 {
		problems = append(problems, "page size must be positive")
	}
	if c.HeadHunter.MaxPages <= 0 || c.SuperJob.MaxPages <= 0 {
		problems = append(problems, "max_pages must be positive")
	}
	if !strings.Contains(c.HeadHunter.QueryTemplate, "%s") || !strings.Contains(c.SuperJob.QueryTemplate, "%s") {
		problems = append(problems, "query_template must contain a %s placeholder")
	}

	if len(problems) > 0 {
		return errors.New("config: " + strings.Join(problems, "; "))
	}

	return nil
}
