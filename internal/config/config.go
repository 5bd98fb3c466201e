package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Supplier SupplierConfig
	Places   PlacesConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Media    MediaConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// SupplierConfig - connection settings for the remote draft service that owns
// activities and booking options.
type SupplierConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout time.Duration
}

type PlacesConfig struct {
	BaseURL        string
	APIKey         string
	CenterLat      float64
	CenterLng      float64
	RadiusMeters   int
	RequestTimeout time.Duration
}

type StorageConfig struct {
	Bucket    string
	Region    string
	KeyPrefix string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SnapshotTTL time.Duration
	MirrorTTL   time.Duration
}

type MediaConfig struct {
	MaxFileSize     int64
	MinWidth        int
	ValidateTimeout time.Duration
	AllowedTypes    []string
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Supplier: SupplierConfig{
			BaseURL:        viper.GetString("SUPPLIER_BASE_URL"),
			APIKey:         viper.GetString("SUPPLIER_API_KEY"),
			RequestTimeout: time.Duration(viper.GetInt("SUPPLIER_REQUEST_TIMEOUT")) * time.Second,
		},
		Places: PlacesConfig{
			BaseURL:        viper.GetString("PLACES_BASE_URL"),
			APIKey:         viper.GetString("PLACES_API_KEY"),
			CenterLat:      viper.GetFloat64("PLACES_CENTER_LAT"),
			CenterLng:      viper.GetFloat64("PLACES_CENTER_LNG"),
			RadiusMeters:   viper.GetInt("PLACES_RADIUS_METERS"),
			RequestTimeout: time.Duration(viper.GetInt("PLACES_REQUEST_TIMEOUT")) * time.Second,
		},
		Storage: StorageConfig{
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			Region:    viper.GetString("STORAGE_REGION"),
			KeyPrefix: viper.GetString("STORAGE_KEY_PREFIX"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SnapshotTTL: time.Duration(viper.GetInt("SNAPSHOT_CACHE_TTL")) * time.Second,
			MirrorTTL:   time.Duration(viper.GetInt("MIRROR_CACHE_TTL")) * time.Second,
		},
		Media: MediaConfig{
			MaxFileSize:     viper.GetInt64("MEDIA_MAX_FILE_SIZE"),
			MinWidth:        viper.GetInt("MEDIA_MIN_WIDTH"),
			ValidateTimeout: time.Duration(viper.GetInt("MEDIA_VALIDATE_TIMEOUT")) * time.Millisecond,
			AllowedTypes:    parseList(viper.GetString("MEDIA_ALLOWED_TYPES")),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Supplier.RequestTimeout == 0 {
		cfg.Supplier.RequestTimeout = 15 * time.Second
	}
	if cfg.Places.RequestTimeout == 0 {
		cfg.Places.RequestTimeout = 10 * time.Second
	}
	if cfg.Places.RadiusMeters == 0 {
		cfg.Places.RadiusMeters = 5000
	}
	if cfg.Cache.SnapshotTTL == 0 {
		cfg.Cache.SnapshotTTL = 5 * time.Minute
	}
	if cfg.Cache.MirrorTTL == 0 {
		cfg.Cache.MirrorTTL = 24 * time.Hour
	}
	if cfg.Media.MaxFileSize == 0 {
		cfg.Media.MaxFileSize = 7 * 1024 * 1024
	}
	if cfg.Media.MinWidth == 0 {
		cfg.Media.MinWidth = 1280
	}
	if cfg.Media.ValidateTimeout == 0 {
		cfg.Media.ValidateTimeout = 5000 * time.Millisecond
	}
	if len(cfg.Media.AllowedTypes) == 0 {
		cfg.Media.AllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "media-cleanup-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
