package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Namespace prefixes every environment variable, e.g. API_PORT.
const Namespace = "API"

// ErrHelp is returned when usage was printed instead of loading.
var ErrHelp = errors.New("provided help")

type Config struct {
	Port           string        `yaml:"port"`
	DatabaseURL    string        `yaml:"database_url" conf:"noprint"`
	DBDebug        bool          `yaml:"db_debug"`
	JWTKey         string        `yaml:"jwt_key" conf:"noprint"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	LogLevel       string        `yaml:"log_level"`
	ConfigFile     string        `yaml:"-"`
}

func defaults() Config {
	return Config{
		Port:           ":8080",
		TokenTTL:       time.Hour,
		AllowedOrigins: []string{"http://localhost:3000"},
		LogLevel:       "info",
		ConfigFile:     "config.yaml",
	}
}

// NewConfig layers, lowest first: defaults, a .env file, the YAML file and
// finally API_* environment variables and command line flags.
func NewConfig(args []string) (*Config, error) {
	_ = godotenv.Load()

	c := defaults()

	if path := os.Getenv(Namespace + "_CONFIG_FILE"); path != "" {
		c.ConfigFile = path
	}

	if err := c.loadFile(c.ConfigFile); err != nil {
		return nil, err
	}

	if err := conf.Parse(args, Namespace, &c); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, uerr := conf.Usage(Namespace, &c)
			if uerr != nil {
				return nil, errors.Wrap(uerr, "generating config usage")
			}
			fmt.Println(usage)
			return nil, ErrHelp
		}
		return nil, errors.Wrap(err, "parsing config")
	}

	if c.DatabaseURL == "" || c.JWTKey == "" {
		return nil, errors.New("missing required configuration: database_url and jwt_key")
	}

	// A bare port number is accepted and listens on all interfaces.
	if c.Port != "" && !strings.Contains(c.Port, ":") {
		c.Port = ":" + c.Port
	}

	return &c, nil
}

func (c *Config) loadFile(path string) error {
	yamlFile, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	if err = yaml.Unmarshal(yamlFile, c); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}

	return nil
}

// String renders the config with secrets masked.
func (c *Config) String() string {
	out, err := conf.String(c)
	if err != nil {
		return err.Error()
	}
	return out
}
