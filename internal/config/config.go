package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

const FileName = "knights.config.json"

type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	SeedFile string   `json:"seed_file,omitempty" mapstructure:"seed_file"`
	Database Database `json:"database" mapstructure:"database"`
}

// Database is the connection descriptor. A URL found in the URLEnv
// environment variable wins over the individual fields.
type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
	Host     string `json:"host,omitempty" mapstructure:"host"`
	Port     int    `json:"port,omitempty" mapstructure:"port"`
	Name     string `json:"name,omitempty" mapstructure:"name"`
	User     string `json:"user,omitempty" mapstructure:"user"`
	Password string `json:"-" mapstructure:"password"`
	SSLMode  string `json:"sslmode,omitempty" mapstructure:"sslmode"`
}

var supportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

// BindEnv maps the descriptor fields onto the environment variables the
// console has always read.
func BindEnv(v *viper.Viper) {
	_ = v.BindEnv("database.host", "POSTGRES_IP")
	_ = v.BindEnv("database.port", "POSTGRES_PORT")
	_ = v.BindEnv("database.name", "POSTGRES_DB")
	_ = v.BindEnv("database.user", "POSTGRES_USER")
	_ = v.BindEnv("database.password", "POSTGRES_PASS")
	_ = v.BindEnv("database.provider", "KNIGHTS_PROVIDER")
}

func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = "1"
	}
	if cfg.Database.Provider == "" {
		cfg.Database.Provider = "postgresql"
	}
	if cfg.Database.URLEnv == "" {
		cfg.Database.URLEnv = "DATABASE_URL"
	}
	if cfg.Database.Port == 0 {
		switch cfg.Database.Provider {
		case "mysql":
			cfg.Database.Port = 3306
		default:
			cfg.Database.Port = 5432
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, supportedProviders)
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}
	return nil
}

func (c *Config) IsSQLite() bool {
	return c.Database.Provider == "sqlite" || c.Database.Provider == "sqlite3"
}

// GetDatabaseURL resolves the connection string once at startup. Without a
// URL in the environment the descriptor must name at least a host and a
// user (sqlite only needs a file name).
func (c *Config) GetDatabaseURL() (string, error) {
	if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
		return dbURL, nil
	}

	db := c.Database
	if c.IsSQLite() {
		if db.Name == "" {
			return "", fmt.Errorf("database URL not found in environment variable %s and no sqlite file configured", db.URLEnv)
		}
		return db.Name, nil
	}

	var missing []string
	if db.Host == "" {
		missing = append(missing, "host (POSTGRES_IP)")
	}
	if db.User == "" {
		missing = append(missing, "user (POSTGRES_USER)")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("database URL not found in environment variable %s and descriptor is missing %s",
			db.URLEnv, strings.Join(missing, ", "))
	}

	addr := net.JoinHostPort(db.Host, strconv.Itoa(db.Port))

	if db.Provider == "mysql" {
		mc := mysql.NewConfig()
		mc.User = db.User
		mc.Passwd = db.Password
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = db.Name
		return mc.FormatDSN(), nil
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   addr,
		Path:   "/" + db.Name,
	}
	if db.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {db.SSLMode}}.Encode()
	}
	return u.String(), nil
}

// WriteDefault writes a starter config file. An existing file is left alone.
func WriteDefault(path, provider string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := Config{
		Version:  "1",
		Database: Database{Provider: provider, URLEnv: "DATABASE_URL"},
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
