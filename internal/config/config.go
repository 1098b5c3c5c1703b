package config

import (
	"fmt"
	"path/filepath"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Editor   EditorConfig   `mapstructure:"editor"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Outputs  OutputsConfig  `mapstructure:"outputs"`
	Share    ShareConfig    `mapstructure:"share"`
}

// StorageConfig selects the key-value backend the repositories persist into.
type StorageConfig struct {
	Driver    string `mapstructure:"driver" validate:"oneof=memory file sql"`
	Directory string `mapstructure:"directory" validate:"required_if=Driver file"`
	Prefix    string `mapstructure:"prefix"`
}

// DatabaseConfig is only used when the storage driver is "sql".
type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql sqlite3 postgres"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port" validate:"gte=0,lte=65535"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Path            string            `mapstructure:"path"`
	SSLMode         string            `mapstructure:"sslmode"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts" validate:"gte=1"`
}

type EditorConfig struct {
	OwnerID         string `mapstructure:"owner_id" validate:"required"`
	Author          string `mapstructure:"author" validate:"required"`
	AutosaveSeconds int    `mapstructure:"autosave_seconds" validate:"gte=1"`
	Snap            bool   `mapstructure:"snap"`
	Guides          bool   `mapstructure:"guides"`
}

type CatalogConfig struct {
	SeedFile string `mapstructure:"seed_file" validate:"omitempty,file"`
}

type OutputsConfig struct {
	Directory        string `mapstructure:"directory"`
	MarkdownTemplate string `mapstructure:"markdown_template" validate:"omitempty,file"`
}

type ShareConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/stickerdiary")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.directory", filepath.Join("data", "store"))
	v.SetDefault("storage.prefix", "stickerdiary_")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", filepath.Join("data", "stickerdiary.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "stickerdiary")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.connect_attempts", 3)
	v.SetDefault("editor.owner_id", "user_1")
	v.SetDefault("editor.author", "me")
	v.SetDefault("editor.autosave_seconds", 30)
	v.SetDefault("editor.snap", true)
	v.SetDefault("editor.guides", false)
	v.SetDefault("catalog.seed_file", "")
	v.SetDefault("outputs.directory", "outputs")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("outputs.markdown_template", "")
	v.SetDefault("share.base_url", "http://localhost:3000")

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "STICKERDIARY_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind STICKERDIARY_DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("editor.owner_id", "STICKERDIARY_OWNER_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind STICKERDIARY_OWNER_ID environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", TranslateError(err, loader.translator))
	}

	return &cfg, nil
}

// Load is a shorthand for NewConfigLoader(configFile) followed by Load.
func Load(configFile string) (*Config, error) {
	loader, err := NewConfigLoader(configFile)
	if err != nil {
		return nil, err
	}
	return loader.Load()
}
