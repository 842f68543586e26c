// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	ierr "receipt-service/internal/errors"
	"receipt-service/internal/model"
	"receipt-service/internal/numerals"
	"receipt-service/internal/protocol"
	"receipt-service/internal/render/text"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig    `mapstructure:"server"`
	Security   SecurityConfig  `mapstructure:"security"`
	Logging    LoggingConfig   `mapstructure:"logging"`
	Printer    PrinterConfig   `mapstructure:"printer"`
	Connection protocol.Config `mapstructure:"connection"`
	Device     DeviceConfig    `mapstructure:"device"`
	App        AppConfig       `mapstructure:"app"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host" validate:"required"`
	Port         string        `mapstructure:"port" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// SecurityConfig represents security configuration
type SecurityConfig struct {
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"required,oneof=debug info warn error fatal"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=json console"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// PrinterConfig represents rendering and printing configuration
type PrinterConfig struct {
	Width           int             `mapstructure:"width" validate:"gte=0"`
	TempDir         string          `mapstructure:"temp_dir"` // empty means the working directory
	Density         model.Density   `mapstructure:"density" validate:"omitempty,oneof=s8 d8 s24 d24"`
	Fonts           text.FontPaths  `mapstructure:"fonts"`
	Numerals        numerals.System `mapstructure:"numerals" validate:"omitempty,oneof=latin arabic-indic"`
	PreviewCacheTTL time.Duration   `mapstructure:"preview_cache_ttl"`
	DrawerKick      string          `mapstructure:"drawer_kick"`
}

// DeviceConfig represents device operation configuration
type DeviceConfig struct {
	// OperationTimeout bounds one print or drawer call. Zero means no limit.
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development staging production test"`
	Debug       bool   `mapstructure:"debug"`
}

// Load loads configuration from .env, config.yaml and environment variables.
// A missing config file is not an error; defaults and the environment apply.
func Load(paths ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./internal/config", "../../internal/config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable support
	v.SetEnvPrefix("RECEIPT_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8085")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")

	// Security defaults
	v.SetDefault("security.allowed_origins", []string{"*"})
	v.SetDefault("security.rate_limit_enabled", true)
	v.SetDefault("security.rate_limit_requests", 120)
	v.SetDefault("security.rate_limit_window", "1m")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	// Printer defaults
	v.SetDefault("printer.width", 512)
	v.SetDefault("printer.temp_dir", "")
	v.SetDefault("printer.density", string(model.DefaultDensity))
	v.SetDefault("printer.numerals", string(numerals.Latin))
	v.SetDefault("printer.preview_cache_ttl", "5m")
	v.SetDefault("printer.drawer_kick", "")
	v.SetDefault("printer.fonts.latin_regular", "")
	v.SetDefault("printer.fonts.latin_bold", "")
	v.SetDefault("printer.fonts.arabic_regular", "")
	v.SetDefault("printer.fonts.arabic_bold", "")

	// Connection defaults: first USB printer class device
	v.SetDefault("connection.type", string(model.ConnectionTypeUSB))
	v.SetDefault("connection.usb.vendor_id", "")
	v.SetDefault("connection.usb.product_id", "")
	v.SetDefault("connection.usb.timeout", "5s")
	v.SetDefault("connection.tcp.host", "")
	v.SetDefault("connection.tcp.port", 9100)
	v.SetDefault("connection.tcp.keep_alive", false)
	v.SetDefault("connection.tcp.timeout", "10s")
	v.SetDefault("connection.tcp.write_timeout", "30s")
	v.SetDefault("connection.serial.port", "")
	v.SetDefault("connection.serial.baud_rate", 9600)
	v.SetDefault("connection.serial.data_bits", 8)
	v.SetDefault("connection.serial.stop_bits", 1)
	v.SetDefault("connection.serial.parity", "none")
	v.SetDefault("connection.serial.timeout", "5s")

	// Device defaults
	v.SetDefault("device.operation_timeout", "0s")

	// App defaults
	v.SetDefault("app.name", "receipt-service")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
}

var validate = func() func(*Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	return func(config *Config) error {
		if err := v.Struct(config); err != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(err, &fieldErrs) {
				return fmt.Errorf("invalid fields: %s", strings.Join(lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
					return fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag())
				}), ", "))
			}
			return err
		}
		return protocol.ValidateConfig(config.Connection)
	}
}()

// GetServerAddr returns the server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment checks if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// ResolveTempDir returns the directory print jobs are staged in: TempDir, or
// the working directory when it is empty.
func (p PrinterConfig) ResolveTempDir() (string, error) {
	if p.TempDir != "" {
		return p.TempDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", ierr.WithError(err).
			WithMessage("failed to resolve working directory").
			WithHint("Set printer.temp_dir").
			Mark(ierr.ErrFilesystem)
	}
	return wd, nil
}

// IsDebugEnabled checks if debug mode is enabled
func (c *Config) IsDebugEnabled() bool {
	return c.App.Debug || c.IsDevelopment()
}
