package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Distance  DistanceConfig  `mapstructure:"distance"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Location  LocationConfig  `mapstructure:"location"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// DistanceConfig configures the network distance-matrix provider. An empty
// APIKey means the provider is not configured, which is a first-class state:
// every resolution then uses the Haversine path.
type DistanceConfig struct {
	BaseURL        string  `mapstructure:"base_url"`
	APIKey         string  `mapstructure:"api_key"`
	TravelMode     string  `mapstructure:"travel_mode"`
	RequestsPerSec float64 `mapstructure:"requests_per_sec"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

type MatchingConfig struct {
	DefaultRadiusKm   float64 `mapstructure:"default_radius_km"`
	FallbackMinsPerKm float64 `mapstructure:"fallback_mins_per_km"`
}

type LocationConfig struct {
	AccuracyGateMeters   float64 `mapstructure:"accuracy_gate_meters"`
	SensorTimeoutSeconds int     `mapstructure:"sensor_timeout_seconds"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "geomatch")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "geomatch")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("distance.base_url", "https://maps.googleapis.com/maps/api/distancematrix/json")
	v.SetDefault("distance.api_key", "")
	v.SetDefault("distance.travel_mode", "driving")
	v.SetDefault("distance.requests_per_sec", 5)
	v.SetDefault("distance.timeout_seconds", 10)
	v.SetDefault("matching.default_radius_km", 25)
	v.SetDefault("matching.fallback_mins_per_km", 3)
	v.SetDefault("location.accuracy_gate_meters", 500)
	v.SetDefault("location.sensor_timeout_seconds", 15)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: GEOMATCH_DATABASE_HOST → database.host
	v.SetEnvPrefix("GEOMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.User == "" {
		errs = append(errs, "database.user is required")
	}
	if c.Database.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	if c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required")
	}
	if c.NATS.URL == "" {
		errs = append(errs, "nats.url is required")
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Distance.APIKey != "" && c.Distance.BaseURL == "" {
		errs = append(errs, "distance.base_url is required when an api key is set")
	}
	switch c.Distance.TravelMode {
	case "driving", "walking":
	default:
		errs = append(errs, fmt.Sprintf("distance.travel_mode must be driving or walking, got %q", c.Distance.TravelMode))
	}
	if c.Matching.DefaultRadiusKm <= 0 {
		errs = append(errs, "matching.default_radius_km must be positive")
	}
	if c.Location.AccuracyGateMeters <= 0 {
		errs = append(errs, "location.accuracy_gate_meters must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
