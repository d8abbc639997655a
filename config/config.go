package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Pexels    PexelsConfig    `mapstructure:"pexels"`
	Farcaster FarcasterConfig `mapstructure:"farcaster"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // postgres, memory
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Enabled Redis 为可选依赖，未配置 host 时关闭缓存与事件推送
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type LedgerConfig struct {
	Timezone            string        `mapstructure:"timezone"`              // 每日重置使用的时区
	LeaderboardCacheTTL time.Duration `mapstructure:"leaderboard_cache_ttl"` // 排行榜快照缓存时间
	StreakWorkers       int           `mapstructure:"streak_workers"`        // 计算连续天数的并发数
}

type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type PexelsConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type FarcasterConfig struct {
	NeynarAPIKey    string        `mapstructure:"neynar_api_key"`
	NeynarBaseURL   string        `mapstructure:"neynar_base_url"`
	HubBaseURL      string        `mapstructure:"hub_base_url"`
	WarpcastBaseURL string        `mapstructure:"warpcast_base_url"`
	ComposeURL      string        `mapstructure:"compose_url"`
	LookupCacheSize int           `mapstructure:"lookup_cache_size"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("jwt.expire_hours", 168)
	v.SetDefault("ledger.timezone", "Europe/Istanbul")
	v.SetDefault("ledger.leaderboard_cache_ttl", 30*time.Second)
	v.SetDefault("ledger.streak_workers", 8)
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("gemini.timeout", 30*time.Second)
	v.SetDefault("pexels.base_url", "https://api.pexels.com/v1")
	v.SetDefault("pexels.timeout", 10*time.Second)
	v.SetDefault("farcaster.neynar_base_url", "https://api.neynar.com/v2")
	v.SetDefault("farcaster.hub_base_url", "https://hub.farcaster.xyz")
	v.SetDefault("farcaster.warpcast_base_url", "https://api.warpcast.com")
	v.SetDefault("farcaster.compose_url", "https://warpcast.com/~/compose")
	v.SetDefault("farcaster.lookup_cache_size", 1024)
	v.SetDefault("farcaster.timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
}

func Load(configPath string) (*Config, error) {
	// 优先尝试读取 config.local.yaml（包含真实密钥，不提交到git）
	dir := filepath.Dir(configPath)
	localConfigPath := filepath.Join(dir, "config.local.yaml")

	if _, err := os.Stat(localConfigPath); err == nil {
		configPath = localConfigPath
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// 环境变量覆盖
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
