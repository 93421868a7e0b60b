package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"lotto_service/internal/lotto_service/analysis"
	"lotto_service/pkg/databaseManager"
	"lotto_service/pkg/logger"
	"lotto_service/pkg/nacosManager"
	"lotto_service/pkg/redisManager"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gopkg.in/yaml.v3"
)

// ===== 配置結構定義 =====

// AppConfig 應用程式配置結構
type AppConfig struct {
	AppName   string          `json:"appName" yaml:"appName"`
	Debug     bool            `json:"debug" yaml:"debug"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Redis     RedisConfig     `json:"redis" yaml:"redis"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	History   HistoryConfig   `json:"history" yaml:"history"`
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Generator GeneratorConfig `json:"generator" yaml:"generator"`
	Nacos     NacosConfig     `json:"nacos" yaml:"nacos"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Host         string        `json:"host" yaml:"host"`
	Port         int           `json:"port" yaml:"port"`
	Version      string        `json:"version" yaml:"version"`
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
}

// LogConfig 日誌配置
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// RedisConfig Redis 配置，用於快取抓取到的開獎資料
type RedisConfig struct {
	Enabled  bool          `json:"enabled" yaml:"enabled"`
	Host     string        `json:"host" yaml:"host"`
	Port     int           `json:"port" yaml:"port"`
	Username string        `json:"username" yaml:"username"`
	Password string        `json:"password" yaml:"password"`
	DB       int           `json:"db" yaml:"db"`
	RoundTTL time.Duration `json:"roundTtl" yaml:"roundTtl"`
}

// DatabaseConfig 數據庫配置，用於開獎資料歸檔
type DatabaseConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Driver   string `json:"driver" yaml:"driver"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	DBName   string `json:"dbname" yaml:"dbname"`
}

// HistoryConfig 歷史資料檔案配置
type HistoryConfig struct {
	File            string        `json:"file" yaml:"file"`
	Sheet           string        `json:"sheet" yaml:"sheet"`
	HeaderRows      int           `json:"headerRows" yaml:"headerRows"`
	RoundColumn     int           `json:"roundColumn" yaml:"roundColumn"` // -1 表示檔案無期數欄
	RefreshInterval time.Duration `json:"refreshInterval" yaml:"refreshInterval"`
}

// FetchConfig 線上開獎資料抓取配置
type FetchConfig struct {
	Enabled    bool          `json:"enabled" yaml:"enabled"`
	BaseURL    string        `json:"baseUrl" yaml:"baseUrl"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	MaxRounds  int           `json:"maxRounds" yaml:"maxRounds"`
	StartRound int           `json:"startRound" yaml:"startRound"`
	Interval   time.Duration `json:"interval" yaml:"interval"`
}

// GeneratorConfig 號碼產生器配置
type GeneratorConfig struct {
	MaxAttempts int     `json:"maxAttempts" yaml:"maxAttempts"`
	Cutoff      int     `json:"cutoff" yaml:"cutoff"`
	BoostLimit  int     `json:"boostLimit" yaml:"boostLimit"`
	BoostFactor float64 `json:"boostFactor" yaml:"boostFactor"`
	Seed        int64   `json:"seed" yaml:"seed"` // 0 表示使用時間作為種子
}

// NacosConfig Nacos 配置
type NacosConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Host      string `json:"host" yaml:"host"`
	Port      uint64 `json:"port" yaml:"port"`
	Namespace string `json:"namespace" yaml:"namespace"`
	Group     string `json:"group" yaml:"group"`
	DataId    string `json:"dataId" yaml:"dataId"`
	Username  string `json:"username" yaml:"username"`
	Password  string `json:"password" yaml:"password"`
}

// ===== 環境變量工具函數 =====

// getEnv 從環境變量獲取字符串值，如果不存在則返回默認值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt 從環境變量獲取整數值，如果不存在或無法解析則返回默認值
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 從環境變量獲取 int64 值
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat 從環境變量獲取浮點數值
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsBool 從環境變量獲取布爾值，如果不存在或無法解析則返回默認值
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration 從環境變量獲取時間間隔，格式如 "24h"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ===== 配置加載主要函數 =====

// createDefaultConfig 從環境變量創建默認配置
func createDefaultConfig() *AppConfig {
	return &AppConfig{
		AppName: getEnv("APP_NAME", "lotto_service"),
		Debug:   getEnvAsBool("DEBUG", false),
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			Version:      getEnv("SERVER_VERSION", "v1"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "127.0.0.1"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Username: getEnv("REDIS_USERNAME", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			RoundTTL: getEnvAsDuration("REDIS_ROUND_TTL", 7*24*time.Hour),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Driver:   getEnv("DB_DRIVER", databaseManager.DriverMySQL),
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnvAsInt("DB_PORT", 3306),
			Username: getEnv("DB_USERNAME", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "lotto"),
		},
		History: HistoryConfig{
			File:            getEnv("HISTORY_FILE", "1st_lotto_bonus.xlsx"),
			Sheet:           getEnv("HISTORY_SHEET", ""),
			HeaderRows:      getEnvAsInt("HISTORY_HEADER_ROWS", 2),
			RoundColumn:     getEnvAsInt("HISTORY_ROUND_COLUMN", -1),
			RefreshInterval: getEnvAsDuration("HISTORY_REFRESH_INTERVAL", time.Hour),
		},
		Fetch: FetchConfig{
			Enabled:    getEnvAsBool("FETCH_ENABLED", false),
			BaseURL:    getEnv("FETCH_BASE_URL", "https://www.dhlottery.co.kr"),
			Timeout:    getEnvAsDuration("FETCH_TIMEOUT", 5*time.Second),
			MaxRounds:  getEnvAsInt("FETCH_MAX_ROUNDS", 10),
			StartRound: getEnvAsInt("FETCH_START_ROUND", 1),
			Interval:   getEnvAsDuration("REFRESH_INTERVAL", 6*time.Hour),
		},
		Generator: GeneratorConfig{
			MaxAttempts: getEnvAsInt("GENERATOR_MAX_ATTEMPTS", analysis.MaxAttempts),
			Cutoff:      getEnvAsInt("GENERATOR_CUTOFF", analysis.Cutoff),
			BoostLimit:  getEnvAsInt("GENERATOR_BOOST_LIMIT", analysis.BoostLimit),
			BoostFactor: getEnvAsFloat("GENERATOR_BOOST_FACTOR", analysis.BoostFactor),
			Seed:        getEnvAsInt64("GENERATOR_SEED", 0),
		},
		Nacos: NacosConfig{
			Enabled:   getEnvAsBool("ENABLE_NACOS", false),
			Host:      getEnv("NACOS_HOST", "127.0.0.1"),
			Port:      uint64(getEnvAsInt("NACOS_PORT", 8848)),
			Namespace: getEnv("NACOS_NAMESPACE", "public"),
			Group:     getEnv("NACOS_GROUP", "DEFAULT_GROUP"),
			DataId:    getEnv("NACOS_DATAID", "lotto_service"),
			Username:  getEnv("NACOS_USERNAME", "nacos"),
			Password:  getEnv("NACOS_PASSWORD", "nacos"),
		},
	}
}

// LoadConfig 加載配置，順序為 .env → 環境變量 → CONFIG_FILE (YAML) → Nacos
func LoadConfig() (*AppConfig, error) {
	// 嘗試加載 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("警告: 找不到 .env 文件: %v", err)
	}

	config := createDefaultConfig()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := loadConfigFile(path, config); err != nil {
			return nil, err
		}
	}

	if config.Nacos.Enabled {
		client, err := nacosManager.NewNacosClient(config.NacosClientConfig())
		if err != nil {
			return nil, fmt.Errorf("創建 Nacos 客戶端失敗: %w", err)
		}
		if err := applyNacosConfig(client, config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// loadConfigFile 讀取 YAML 配置檔並覆蓋到現有配置
func loadConfigFile(path string, config *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("讀取配置檔 %s 失敗: %w", path, err)
	}
	if err := parseOverlay(data, config); err != nil {
		return fmt.Errorf("解析配置檔 %s 失敗: %w", path, err)
	}
	return nil
}

// parseOverlay 將 YAML 或 JSON 內容覆蓋到配置上，未出現的欄位保持原值
func parseOverlay(content []byte, config *AppConfig) error {
	if len(content) == 0 {
		return nil
	}
	return yaml.Unmarshal(content, config)
}

// applyNacosConfig 從 Nacos 取得配置並合併，保留 Nacos 自身的連接信息
func applyNacosConfig(client nacosManager.NacosClient, config *AppConfig) error {
	content, err := client.GetConfig(config.Nacos.DataId, config.Nacos.Group)
	if err != nil {
		return fmt.Errorf("無法從 Nacos 獲取配置: %w", err)
	}

	nacos := config.Nacos
	if err := parseOverlay([]byte(content), config); err != nil {
		return fmt.Errorf("解析 Nacos 配置失敗: %w", err)
	}
	config.Nacos = nacos

	log.Printf("成功從 Nacos 獲取配置並合併 (dataId=%s, group=%s)", nacos.DataId, nacos.Group)
	return nil
}

// Validate 檢查配置是否合理
func (c *AppConfig) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port 超出範圍: %d", c.Server.Port))
	}
	if c.History.HeaderRows < 0 {
		errs = append(errs, fmt.Errorf("history.headerRows 不可為負數: %d", c.History.HeaderRows))
	}
	if c.History.RefreshInterval <= 0 {
		errs = append(errs, fmt.Errorf("history.refreshInterval 必須大於 0"))
	}
	if c.History.File == "" && !c.Database.Enabled && !c.Fetch.Enabled {
		errs = append(errs, errors.New("至少需要一個歷史資料來源 (history.file / database / fetch)"))
	}
	if c.Fetch.Enabled {
		if c.Fetch.BaseURL == "" {
			errs = append(errs, errors.New("fetch.baseUrl 不可為空"))
		}
		if c.Fetch.Timeout <= 0 {
			errs = append(errs, errors.New("fetch.timeout 必須大於 0"))
		}
		if c.Fetch.MaxRounds <= 0 || c.Fetch.MaxRounds > 100 {
			errs = append(errs, fmt.Errorf("fetch.maxRounds 必須介於 1 與 100: %d", c.Fetch.MaxRounds))
		}
		if c.Fetch.StartRound <= 0 {
			errs = append(errs, fmt.Errorf("fetch.startRound 必須大於 0: %d", c.Fetch.StartRound))
		}
	}
	if c.Database.Enabled {
		switch c.Database.Driver {
		case databaseManager.DriverMySQL, databaseManager.DriverPostgres, "tidb":
		default:
			errs = append(errs, fmt.Errorf("不支援的 database.driver: %q", c.Database.Driver))
		}
	}
	if c.Generator.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("generator.maxAttempts 必須大於 0: %d", c.Generator.MaxAttempts))
	}
	if c.Generator.Cutoff < analysis.GameSize || c.Generator.Cutoff > analysis.MaxNumber {
		errs = append(errs, fmt.Errorf("generator.cutoff 必須介於 %d 與 %d: %d", analysis.GameSize, analysis.MaxNumber, c.Generator.Cutoff))
	}
	if c.Generator.BoostLimit < 0 {
		errs = append(errs, fmt.Errorf("generator.boostLimit 不可為負數: %d", c.Generator.BoostLimit))
	}
	if c.Generator.BoostFactor <= 0 {
		errs = append(errs, fmt.Errorf("generator.boostFactor 必須大於 0: %v", c.Generator.BoostFactor))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", analysis.ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}

// ===== 轉換為各元件的配置 =====

// LoggerConfig 返回日誌配置
func (c *AppConfig) LoggerConfig() logger.Config {
	return logger.Config{Level: c.Log.Level, Format: c.Log.Format}
}

// RedisManagerConfig 返回 Redis 連接配置
func (c *AppConfig) RedisManagerConfig() *redisManager.RedisConfig {
	return &redisManager.RedisConfig{
		Addr:     fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port),
		Username: c.Redis.Username,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	}
}

// DatabaseManagerConfig 返回數據庫連接配置
func (c *AppConfig) DatabaseManagerConfig() *databaseManager.Config {
	return &databaseManager.Config{
		Driver:   c.Database.Driver,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.Username,
		Password: c.Database.Password,
		Name:     c.Database.DBName,
	}
}

// NacosClientConfig 返回 Nacos 客戶端配置
func (c *AppConfig) NacosClientConfig() *nacosManager.NacosConfig {
	return &nacosManager.NacosConfig{
		IpAddr:      c.Nacos.Host,
		Port:        c.Nacos.Port,
		NamespaceId: c.Nacos.Namespace,
		Group:       c.Nacos.Group,
		DataId:      c.Nacos.DataId,
		Username:    c.Nacos.Username,
		Password:    c.Nacos.Password,
	}
}

// PoolOptions 返回候選池參數
func (c *AppConfig) PoolOptions() analysis.PoolOptions {
	return analysis.PoolOptions{
		Cutoff:      c.Generator.Cutoff,
		BoostLimit:  c.Generator.BoostLimit,
		BoostFactor: c.Generator.BoostFactor,
	}
}

// ProvideAppConfig 提供應用配置，用於 fx
func ProvideAppConfig() (*AppConfig, error) {
	return LoadConfig()
}

// derived 由 AppConfig 派生各基礎組件的配置
var derived = fx.Provide(
	func(c *AppConfig) logger.Config { return c.LoggerConfig() },
	func(c *AppConfig) *redisManager.RedisConfig { return c.RedisManagerConfig() },
	func(c *AppConfig) *databaseManager.Config { return c.DatabaseManagerConfig() },
)

// Module 創建 fx 模組，包含所有配置相關組件
var Module = fx.Module("config",
	fx.Provide(ProvideAppConfig),
	derived,
)

// Supply 使用已載入的配置建立 fx 模組
func Supply(cfg *AppConfig) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
		derived,
	)
}
