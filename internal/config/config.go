package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	API        APIConfig
	Retry      RetryConfig
	Preprocess PreprocessConfig
	Server     ServerConfig
	S3         S3Config
	JWT        JWTConfig
}

// APIConfig holds settings for the authorization/proxy collaborator.
type APIConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Token            string        `mapstructure:"token"`
	AuthorizeTimeout time.Duration `mapstructure:"authorize_timeout"`
	MinTokenValidity time.Duration `mapstructure:"min_token_validity"`
}

// RetryConfig holds the attempt budget and backoff settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
	BackoffCap  time.Duration `mapstructure:"backoff_cap"`
}

// PreprocessConfig holds client-side transform settings.
type PreprocessConfig struct {
	JPEGQuality int    `mapstructure:"jpeg_quality"`
	FFmpegBin   string `mapstructure:"ffmpeg_bin"`
	FFprobeBin  string `mapstructure:"ffprobe_bin"`
}

// ServerConfig holds devserver HTTP settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// S3Config holds the devserver's object storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// JWTConfig holds devserver token settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// Load reads configuration from environment variables with the MEDIAUP_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDIAUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// API defaults
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.token", "")
	v.SetDefault("api.authorize_timeout", "15s")
	v.SetDefault("api.min_token_validity", "60s")

	// Retry defaults
	v.SetDefault("retry.max_attempts", 4)
	v.SetDefault("retry.backoff_base", "1s")
	v.SetDefault("retry.backoff_cap", "5s")

	// Preprocess defaults
	v.SetDefault("preprocess.jpeg_quality", 85)
	v.SetDefault("preprocess.ffmpeg_bin", "ffmpeg")
	v.SetDefault("preprocess.ffprobe_bin", "ffprobe")

	// Devserver defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "mediaup-media")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.presign_expiry", 900)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "15m")
	v.SetDefault("jwt.issuer", "mediaup-dev")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"api.base_url":            "MEDIAUP_API_BASE_URL",
		"api.token":               "MEDIAUP_API_TOKEN",
		"api.authorize_timeout":   "MEDIAUP_API_AUTHORIZE_TIMEOUT",
		"api.min_token_validity":  "MEDIAUP_API_MIN_TOKEN_VALIDITY",
		"retry.max_attempts":      "MEDIAUP_RETRY_MAX_ATTEMPTS",
		"retry.backoff_base":      "MEDIAUP_RETRY_BACKOFF_BASE",
		"retry.backoff_cap":       "MEDIAUP_RETRY_BACKOFF_CAP",
		"preprocess.jpeg_quality": "MEDIAUP_PREPROCESS_JPEG_QUALITY",
		"preprocess.ffmpeg_bin":   "MEDIAUP_PREPROCESS_FFMPEG_BIN",
		"preprocess.ffprobe_bin":  "MEDIAUP_PREPROCESS_FFPROBE_BIN",
		"server.port":             "MEDIAUP_SERVER_PORT",
		"server.read_timeout":     "MEDIAUP_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "MEDIAUP_SERVER_WRITE_TIMEOUT",
		"s3.region":               "MEDIAUP_S3_REGION",
		"s3.bucket":               "MEDIAUP_S3_BUCKET",
		"s3.endpoint":             "MEDIAUP_S3_ENDPOINT",
		"s3.access_key":           "MEDIAUP_S3_ACCESS_KEY",
		"s3.secret_key":           "MEDIAUP_S3_SECRET_KEY",
		"s3.public_base_url":      "MEDIAUP_S3_PUBLIC_BASE_URL",
		"s3.presign_expiry":       "MEDIAUP_S3_PRESIGN_EXPIRY",
		"jwt.secret":              "MEDIAUP_JWT_SECRET",
		"jwt.token_expiry":        "MEDIAUP_JWT_TOKEN_EXPIRY",
		"jwt.issuer":              "MEDIAUP_JWT_ISSUER",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.API = APIConfig{
		BaseURL:          v.GetString("api.base_url"),
		Token:            v.GetString("api.token"),
		AuthorizeTimeout: v.GetDuration("api.authorize_timeout"),
		MinTokenValidity: v.GetDuration("api.min_token_validity"),
	}
	cfg.Retry = RetryConfig{
		MaxAttempts: v.GetInt("retry.max_attempts"),
		BackoffBase: v.GetDuration("retry.backoff_base"),
		BackoffCap:  v.GetDuration("retry.backoff_cap"),
	}
	cfg.Preprocess = PreprocessConfig{
		JPEGQuality: v.GetInt("preprocess.jpeg_quality"),
		FFmpegBin:   v.GetString("preprocess.ffmpeg_bin"),
		FFprobeBin:  v.GetString("preprocess.ffprobe_bin"),
	}
	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PublicBaseURL: v.GetString("s3.public_base_url"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}

	return cfg, nil
}
