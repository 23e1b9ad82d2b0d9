package config

import (
	"errors"
	"time"
)

// Config 应用配置
type Config struct {
	Addr      string `koanf:"addr"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"` // json | console

	// 参考数据
	DatasetPath         string `koanf:"dataset_path"`
	ClusterProfilesPath string `koanf:"cluster_profiles_path"`
	RiskCellsPath       string `koanf:"risk_cells_path"`
	ApprehensionsPath   string `koanf:"apprehensions_path"`

	// 模型
	ModelPath          string `koanf:"model_path"`
	ClassifierPath     string `koanf:"classifier_path"`
	ModelServerURL     string `koanf:"model_server_url"`
	ModelServerTimeout int    `koanf:"model_server_timeout_seconds"`
	DBSCANModelPath    string `koanf:"dbscan_model_path"`
	DBSCANProfilesPath string `koanf:"dbscan_profiles_path"`

	// 审计日志（空则关闭）
	DBPath string `koanf:"db_path"`

	// 管理接口 JWT 密钥（空则不鉴权）
	JWTSecret string `koanf:"jwt_secret"`

	// Redis 缓存（空则关闭）
	RedisAddr       string `koanf:"redis_addr"`
	CacheTTLSeconds int    `koanf:"cache_ttl_seconds"`

	RateLimitRequests      int `koanf:"rate_limit_requests"`
	RateLimitWindowSeconds int `koanf:"rate_limit_window_seconds"`

	// 热点统计的违法类别
	Watchlist []string `koanf:"watchlist"`
}

// New 默认配置
func New() *Config {
	return &Config{
		Addr:                   ":5000",
		LogLevel:               "info",
		LogFormat:              "json",
		DatasetPath:            "data/dataset_entrenamiento.csv",
		ClusterProfilesPath:    "data/perfiles_clusters.csv",
		RiskCellsPath:          "data/celdas_riesgo.csv",
		ApprehensionsPath:      "data/aprehensiones.csv",
		ModelPath:              "model/modelo_riesgo.json",
		ClassifierPath:         "model/modelo_clasificador.json",
		ModelServerTimeout:     30,
		DBSCANModelPath:        "model/modelo_dbscan.json",
		DBSCANProfilesPath:     "model/perfiles_dbscan.json",
		DBPath:                 "data/riesgo.db",
		CacheTTLSeconds:        3600,
		RateLimitRequests:      120,
		RateLimitWindowSeconds: 60,
	}
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.DatasetPath == "" {
		return errors.New("dataset_path must not be empty")
	}
	if c.ModelPath == "" && c.ModelServerURL == "" {
		return errors.New("one of model_path or model_server_url must be set")
	}
	if c.RateLimitRequests < 0 || c.RateLimitWindowSeconds < 0 {
		return errors.New("rate limit settings must not be negative")
	}
	return nil
}

// CacheTTL returns the cache entry lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RateLimitWindow returns the rate limiter window
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// ModelServerTimeoutDuration returns the model server request timeout
func (c *Config) ModelServerTimeoutDuration() time.Duration {
	return time.Duration(c.ModelServerTimeout) * time.Second
}
