package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultPort   = 3530
	DefaultDBHost = "cluster0.gffyd.mongodb.net"
	DefaultDBName = "crowdcubedb"
)

// Config is shared by every handler. MongoClient is set once at startup
// and reused by all requests.
type Config struct {
	Port           int           `mapstructure:"port" validate:"gt=0,lt=65536"`
	LogLevel       string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`

	DBUser   string `mapstructure:"db_user" validate:"required_without=MongoURI"`
	DBPass   string `mapstructure:"db_pass" validate:"required_without=MongoURI"`
	DBHost   string `mapstructure:"db_host"`
	MongoURI string `mapstructure:"mongo_uri"`
	DBName   string `mapstructure:"db_name" validate:"required"`

	CloudinaryCloudName string `mapstructure:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `mapstructure:"cloudinary_api_key"`
	CloudinaryAPISecret string `mapstructure:"cloudinary_api_secret"`

	ZeptoAPIURL string `mapstructure:"zepto_api_url"`
	ZeptoAPIKey string `mapstructure:"zepto_api_key"`
	EmailFrom   string `mapstructure:"email_from"`

	MongoClient *mongo.Client `mapstructure:"-" validate:"-"`
}

var envKeys = []string{
	"port",
	"log_level",
	"request_timeout",
	"db_user",
	"db_pass",
	"db_host",
	"mongo_uri",
	"db_name",
	"cloudinary_cloud_name",
	"cloudinary_api_key",
	"cloudinary_api_secret",
	"zepto_api_url",
	"zepto_api_key",
	"email_from",
}

func toEnv(key string) string {
	return strings.ToUpper(key)
}

// Load reads configuration from the environment, after pulling in a .env
// file when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	v := viper.New()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout", 5*time.Second)
	v.SetDefault("db_host", DefaultDBHost)
	v.SetDefault("db_name", DefaultDBName)

	for _, key := range envKeys {
		if err := v.BindEnv(key, toEnv(key)); err != nil {
			return nil, errors.Wrapf(err, "binding env var %s", toEnv(key))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling configuration")
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// ConnectionURI returns MongoURI when set, otherwise the Atlas URI built
// from the credentials.
func (c *Config) ConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBPass), c.DBHost)
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) EmailEnabled() bool {
	return c.ZeptoAPIURL != "" && c.ZeptoAPIKey != "" && c.EmailFrom != ""
}

// Collection returns a handle on the named collection of the configured database.
func (c *Config) Collection(name string) *mongo.Collection {
	return c.MongoClient.Database(c.DBName).Collection(name)
}

// OperationTimeout bounds a single driver call.
func (c *Config) OperationTimeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 5 * time.Second
	}
	return c.RequestTimeout
}
