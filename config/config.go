package config

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DefaultFrontendURL is the development frontend allowed when nothing else is configured.
const DefaultFrontendURL = "http://localhost:5173"

// Config application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Port           string `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	Env            string `mapstructure:"env"`
	BaseURL        string `mapstructure:"base_url"`
	EnablePprof    bool   `mapstructure:"enable_pprof"`
	WriteRateLimit int    `mapstructure:"write_rate_limit"`
}

// DatabaseConfig store connection configuration
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// CORSConfig cross-origin configuration
type CORSConfig struct {
	FrontendURL string `mapstructure:"frontend_url"`
	VercelURL   string `mapstructure:"vercel_url"`
	Whitelist   string `mapstructure:"whitelist"`
}

// LogConfig logging configuration
type LogConfig struct {
	Format string `mapstructure:"format"`
}

var (
	// GlobalConfig is the loaded configuration, nil until LoadConfig succeeds.
	GlobalConfig *Config
)

// envBindings maps config keys to the environment variables the deployment already uses.
var envBindings = map[string][]string{
	"server.port":             {"PORT"},
	"server.mode":             {"GIN_MODE"},
	"server.env":              {"NODE_ENV"},
	"server.base_url":         {"BASE_URL"},
	"server.enable_pprof":     {"ENABLE_PPROF"},
	"server.write_rate_limit": {"WRITE_RATE_LIMIT"},
	"database.uri":            {"MONGO_URI", "DATABASE_URL"},
	"database.name":           {"MONGO_DB"},
	"cors.frontend_url":       {"FRONTEND_URL"},
	"cors.vercel_url":         {"VERCEL_URL"},
	"cors.whitelist":          {"CORS_WHITELIST"},
	"log.format":              {"LOG_FORMAT"},
}

// LoadConfig loads configuration.
// Precedence: environment > external config file > embedded defaults.
// configPath is optional.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional, real environment variables win over it
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Warn().Err(err).Str("path", configPath).Msg("could not read config file")
		} else {
			log.Info().Str("path", configPath).Msg("merged config file")
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("$HOME/.spendbook")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Warn().Err(err).Msg("could not merge external config")
			} else {
				log.Info().Str("path", externalViper.ConfigFileUsed()).Msg("merged config file")
			}
		}
	}

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}
	v.SetEnvPrefix("SPENDBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg
	return &cfg, nil
}

func (c *Config) normalize() {
	if strings.EqualFold(c.Server.Env, "production") {
		c.Server.Mode = gin.ReleaseMode
	}
	switch c.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		c.Server.Mode = gin.DebugMode
	}
	c.Server.Port = strings.TrimPrefix(strings.TrimSpace(c.Server.Port), ":")
	c.Database.URI = strings.TrimSpace(c.Database.URI)
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		errs = append(errs, fmt.Errorf("invalid port %q: must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Database.URI == "" {
		errs = append(errs, errors.New("database uri not set, use MONGO_URI or DATABASE_URL"))
	}

	if c.Server.WriteRateLimit < 0 {
		errs = append(errs, fmt.Errorf("invalid write rate limit %d", c.Server.WriteRateLimit))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// IsProduction reports whether request logging and error details must be suppressed.
func (c *Config) IsProduction() bool {
	return c.Server.Mode == gin.ReleaseMode
}

// PrimaryOrigin resolves the frontend origin: FRONTEND_URL, then the Vercel deployment, then the dev server.
func (c CORSConfig) PrimaryOrigin() string {
	if c.FrontendURL != "" {
		return c.FrontendURL
	}
	if c.VercelURL != "" {
		return "https://" + c.VercelURL
	}
	return DefaultFrontendURL
}

// AllowedOrigins is the resolved allow-list. Whitelist entries may be glob patterns.
func (c CORSConfig) AllowedOrigins() []string {
	origins := []string{c.PrimaryOrigin()}
	for _, entry := range strings.Split(c.Whitelist, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			origins = append(origins, entry)
		}
	}
	return origins
}

// HumanLogs reports whether logs should use the console writer instead of JSON.
func (c *Config) HumanLogs() bool {
	switch c.Log.Format {
	case "human":
		return true
	case "json":
		return false
	}
	return !c.IsProduction()
}

// PrintConfig logs the active configuration without secrets
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Info().
		Str("port", GlobalConfig.Server.Port).
		Str("mode", GlobalConfig.Server.Mode).
		Str("database", RedactURI(GlobalConfig.Database.URI)).
		Strs("origins", GlobalConfig.CORS.AllowedOrigins()).
		Msg("configuration")
}

// RedactURI strips credentials from a connection string.
func RedactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***" + rest[at:]
	}
	return scheme + "://" + rest
}

// SafeErrorMessage hides internal error details from clients in release mode
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.IsProduction() {
		return fallback
	}
	return err.Error()
}
