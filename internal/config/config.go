package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

const SupportedVersion = "1"

// Config represents the complete configuration structure
type Config struct {
	Version string        `yaml:"version" default:"1"`
	Site    SiteConfig    `yaml:"site"`
	Server  ServerConfig  `yaml:"server"`
	Theme   ThemeConfig   `yaml:"theme"`
	Store   StoreConfig   `yaml:"store"`
	Storage StorageConfig `yaml:"storage"`
	CMS     CMSConfig     `yaml:"cms"`
	Content ContentConfig `yaml:"content"`
	Logging LoggingConfig `yaml:"logging"`

	// Secrets only ever come from the environment.
	Secrets SecretsConfig `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
	// File enables a rotating log file next to the console output.
	File       string `yaml:"file" default:""`
	MaxSizeMB  int    `yaml:"max_size_mb" default:"10"`
	MaxBackups int    `yaml:"max_backups" default:"3"`
	MaxAgeDays int    `yaml:"max_age_days" default:"28"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Oremos Juntos"`
	Description string `yaml:"description" default:"Um refúgio digital para a fé cristã"`
	Language    string `yaml:"language" default:"pt-BR"`
	BaseURL     string `yaml:"base_url" default:"http://localhost:12600"`
}

type ServerConfig struct {
	Host         string        `yaml:"host" default:"0.0.0.0"`
	Port         string        `yaml:"port" default:"12600"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
}

type ThemeConfig struct {
	Default            string       `yaml:"default" default:"dark"`
	AllowSwitching     bool         `yaml:"allow_switching" default:"true"`
	SyntaxHighlighting SyntaxConfig `yaml:"syntax_highlighting"`
}

type SyntaxConfig struct {
	DefaultDark  string `yaml:"default_dark" default:"gruvbox"`
	DefaultLight string `yaml:"default_light" default:"catppuccin-latte"`
}

type StoreConfig struct {
	// Driver is sqlite or postgres. DATABASE_URL selects postgres as well.
	Driver      string `yaml:"driver" default:"sqlite"`
	SQLitePath  string `yaml:"sqlite_path" default:"./database.db"`
	Compression string `yaml:"compression" default:"zstd"`
	// ContentFile keeps the content row in a JSON file instead of the database.
	ContentFile string `yaml:"content_file" default:""`
	// AllowDirectWrites is the access policy of the fallback upsert.
	AllowDirectWrites bool          `yaml:"allow_direct_writes" default:"true"`
	WatchInterval     time.Duration `yaml:"watch_interval" default:"10s"`
}

type StorageConfig struct {
	// Driver is fs, s3 or minio.
	Driver        string `yaml:"driver" default:"fs"`
	Bucket        string `yaml:"bucket" default:"images"`
	FSDir         string `yaml:"fs_dir" default:"./uploads"`
	PublicBaseURL string `yaml:"public_base_url" default:"/uploads/"`
	Endpoint      string `yaml:"endpoint" default:""`
	Region        string `yaml:"region" default:"auto"`
	UseSSL        bool   `yaml:"use_ssl" default:"true"`
	MaxUploadMB   int    `yaml:"max_upload_mb" default:"10"`
}

type CMSConfig struct {
	// ProcedureURL is where the save procedure lives. Empty means this server.
	ProcedureURL string        `yaml:"procedure_url" default:""`
	SessionTTL   time.Duration `yaml:"session_ttl" default:"12h"`
	// BufferStore is memory or redis.
	BufferStore string        `yaml:"buffer_store" default:"memory"`
	BufferTTL   time.Duration `yaml:"buffer_ttl" default:"24h"`
	SaveTimeout time.Duration `yaml:"save_timeout" default:"20s"`
}

type ContentConfig struct {
	MarkdownRenderer string `yaml:"markdown_renderer" default:"mmark"`
	AllowIndexing    bool   `yaml:"allow_indexing" default:"true"`
}

type SecretsConfig struct {
	CMSPassword       string
	CMSPasswordHash   string
	DatabaseURL       string
	RedisURL          string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

var AppConfig *Config

func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	// Try to read and parse the config file
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		ApplyEnv(config)
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Version != SupportedVersion {
		return fmt.Errorf("unsupported configuration version %q (want %q)", config.Version, SupportedVersion)
	}

	ApplyEnv(config)
	AppConfig = config
	return nil
}

// ApplyEnv reads secrets from the environment. DATABASE_URL also switches
// the store to postgres.
func ApplyEnv(config *Config) {
	config.Secrets = SecretsConfig{
		CMSPassword:       os.Getenv("CMS_PASSWORD"),
		CMSPasswordHash:   os.Getenv("CMS_PASSWORD_HASH"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
	}
	if config.Secrets.DatabaseURL != "" {
		config.Store.Driver = "postgres"
	}
	if config.Secrets.RedisURL != "" && config.CMS.BufferStore == "memory" {
		configLogger.Debug().Msg("REDIS_URL set but buffer_store is memory")
	}
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

var durationType = reflect.TypeOf(time.Duration(0))

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Int64:
			if field.Type() == durationType {
				if val, err := time.ParseDuration(defaultValue); err == nil {
					field.SetInt(int64(val))
				}
			} else if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
