package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Auth    AuthConfig
	OTP     OTPConfig
	Upload  UploadConfig
	Stories StoriesConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Driver   string // postgres 或 sqlite
	Host     string
	User     string
	Password string
	Name     string
	Port     int
	Path     string // sqlite 的資料庫檔案路徑
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int    `mapstructure:"token_ttl_hours"`
}

type OTPConfig struct {
	Store      string // memory 或 redis
	TTLMinutes int    `mapstructure:"ttl_minutes"`
	Digits     int
	Redis      RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type UploadConfig struct {
	Mode      string // s3 簽發限時上傳憑證；local 直接收檔
	Dir       string // local 模式的存放目錄
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	S3        S3Config
}

type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	URLTTLMinutes int    `mapstructure:"url_ttl_minutes"`
}

type StoriesConfig struct {
	TTLHours int `mapstructure:"ttl_hours"`
}

// Load 讀取應用程式配置
// 先套用預設值，再讀取工作目錄下的 config.yaml（可省略），
// 最後由 GLOWCHAT_ 前綴的環境變量覆蓋
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// 沒有配置文件時使用預設值
	}

	v.SetEnvPrefix("GLOWCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "glowchat.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "glowchat")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "glowchat")

	v.SetDefault("auth.jwt_secret", "glowchat-dev-secret") // 正式環境應以環境變量覆蓋
	v.SetDefault("auth.token_ttl_hours", 240)

	v.SetDefault("otp.store", "memory")
	v.SetDefault("otp.ttl_minutes", 5)
	v.SetDefault("otp.digits", 6)
	v.SetDefault("otp.redis.addr", "localhost:6379")
	v.SetDefault("otp.redis.password", "")
	v.SetDefault("otp.redis.db", 0)

	v.SetDefault("upload.mode", "local")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size_mb", 16)
	v.SetDefault("upload.s3.use_ssl", true)
	v.SetDefault("upload.s3.url_ttl_minutes", 15)

	v.SetDefault("stories.ttl_hours", 24)
}
