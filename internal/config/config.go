package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Photon   PhotonConfig
	Pipeline PipelineConfig
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	SearchCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type PhotonConfig struct {
	BaseURL           string
	RequestTimeout    int
	ResultLimit       int
	LocationBiasScale float64
}

type PipelineConfig struct {
	InputFile       string
	Mode            string
	ClusterMode     string
	ClusterRadiusKm float64
	ChunkSize       int
	MaxConcurrent   int
	RequestDelay    time.Duration
	BatchSize       int
	PublishEvents   bool
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			SearchCacheTTL: time.Duration(viper.GetInt("SEARCH_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Photon: PhotonConfig{
			BaseURL:           viper.GetString("PHOTON_BASE_URL"),
			RequestTimeout:    viper.GetInt("PHOTON_REQUEST_TIMEOUT"),
			ResultLimit:       viper.GetInt("PHOTON_RESULT_LIMIT"),
			LocationBiasScale: viper.GetFloat64("PHOTON_LOCATION_BIAS_SCALE"),
		},
		Pipeline: PipelineConfig{
			InputFile:       viper.GetString("PIPELINE_INPUT_FILE"),
			Mode:            viper.GetString("PIPELINE_MODE"),
			ClusterMode:     viper.GetString("CLUSTER_MODE"),
			ClusterRadiusKm: viper.GetFloat64("CLUSTER_RADIUS_KM"),
			ChunkSize:       viper.GetInt("PIPELINE_CHUNK_SIZE"),
			MaxConcurrent:   viper.GetInt("PIPELINE_MAX_CONCURRENT"),
			RequestDelay:    time.Duration(viper.GetInt("PIPELINE_REQUEST_DELAY_MS")) * time.Millisecond,
			BatchSize:       viper.GetInt("PIPELINE_BATCH_SIZE"),
			PublishEvents:   viper.GetBool("PIPELINE_PUBLISH_EVENTS"),
		},
	}

	// Set default values if not provided
	if cfg.Photon.BaseURL == "" {
		cfg.Photon.BaseURL = "https://photon.komoot.io"
	}
	if cfg.Photon.RequestTimeout == 0 {
		cfg.Photon.RequestTimeout = 10
	}
	if cfg.Photon.ResultLimit == 0 {
		cfg.Photon.ResultLimit = 2
	}
	if cfg.Photon.LocationBiasScale == 0 {
		cfg.Photon.LocationBiasScale = 0.2
	}
	if cfg.Pipeline.Mode == "" {
		cfg.Pipeline.Mode = "sequential"
	}
	if cfg.Pipeline.ClusterMode == "" {
		cfg.Pipeline.ClusterMode = "distance_sport"
	}
	if cfg.Pipeline.ClusterRadiusKm == 0 {
		cfg.Pipeline.ClusterRadiusKm = 0.05
	}
	if cfg.Pipeline.ChunkSize == 0 {
		cfg.Pipeline.ChunkSize = 20
	}
	if cfg.Pipeline.MaxConcurrent == 0 {
		cfg.Pipeline.MaxConcurrent = 10
	}
	if cfg.Pipeline.RequestDelay == 0 {
		cfg.Pipeline.RequestDelay = 1000 * time.Millisecond
	}
	if cfg.Pipeline.BatchSize == 0 {
		cfg.Pipeline.BatchSize = 100
	}
	if cfg.Cache.SearchCacheTTL == 0 {
		cfg.Cache.SearchCacheTTL = 24 * time.Hour
	}

	return cfg, nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
