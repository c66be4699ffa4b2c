// config реализует конфигурацию stories-service: загрузка из YAML/ENV
// с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	DB       DBConfig      `yaml:"db"`
	S3       S3Config      `yaml:"s3"`
	Media    MediaConfig   `yaml:"media"`
	Limits   LimitsConfig  `yaml:"limits"`
	Sweep    SweepConfig   `yaml:"sweep"`
	Auth     AuthConfig    `yaml:"auth"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50085"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// S3Config — настройки MinIO/S3 для хранения медиа историй.
type S3Config struct {
	Endpoint      string        `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	RootUser      string        `yaml:"root_user" env:"S3_ROOT_USER" env-required:"true"`
	RootPassword  string        `yaml:"root_password" env:"S3_ROOT_PASSWORD" env-required:"true"`
	Bucket        string        `yaml:"bucket" env:"S3_BUCKET" env-required:"true"`
	PublicBaseURL string        `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
	UploadTimeout time.Duration `yaml:"upload_timeout" env:"S3_UPLOAD_TIMEOUT" env-default:"15s"`
}

// MediaConfig — ограничения на загружаемые медиа.
type MediaConfig struct {
	MaxSizeBytes      int64    `yaml:"max_size_bytes" env:"MEDIA_MAX_SIZE_BYTES" env-default:"52428800"`
	AllowedImageTypes []string `yaml:"allowed_image_types" env:"MEDIA_ALLOWED_IMAGE_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/webp"`
	AllowedVideoTypes []string `yaml:"allowed_video_types" env:"MEDIA_ALLOWED_VIDEO_TYPES" env-separator:"," env-default:"video/mp4,video/webm"`
}

// LimitsConfig — лимиты постраничной выдачи.
// Пагинация: limit=0 -> берём Default; верхняя граница — Max.
type LimitsConfig struct {
	Default int64 `yaml:"default" env:"DEFAULT_LIMIT" env-default:"20"`
	Max     int64 `yaml:"max"     env:"MAX_LIMIT"     env-default:"100"`
}

// SweepConfig — расписание фонового прохода по истёкшим историям.
// Интервал — параметр деплоя, а не корректности: выборка активных историй
// не зависит от того, успел ли свипер пометить запись.
type SweepConfig struct {
	Interval time.Duration `yaml:"interval" env:"SWEEP_INTERVAL" env-default:"6h"`
}

// AuthConfig — проверка идентичности запросов.
//   - JWTSecret: секрет HS256 access-токенов auth-service;
//   - DevUserID: режим обхода аутентификации — все запросы выполняются от
//     имени этого фиксированного UUID, проверка токена отключена. Режим
//     фиксируется на старте процесса; с включённым обходом проверки
//     владения фактически не работают, использовать только для local/demo.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	DevUserID string `yaml:"dev_user_id" env:"DEV_USER_ID"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"10s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.S3.Endpoint == "" {
		return fmt.Errorf("s3.endpoint is required")
	}

	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}

	if c.S3.UploadTimeout <= 0 {
		c.S3.UploadTimeout = 15 * time.Second
	}

	if c.Media.MaxSizeBytes <= 0 {
		c.Media.MaxSizeBytes = 50 * 1024 * 1024 // 50 MiB
	}

	if c.Limits.Default <= 0 {
		return fmt.Errorf("limits.default must be > 0")
	}

	if c.Limits.Max <= 0 {
		return fmt.Errorf("limits.max must be > 0")
	}

	if c.Limits.Default > c.Limits.Max {
		return fmt.Errorf("limits.default must be <= limits.max")
	}

	if c.Sweep.Interval < time.Minute {
		return fmt.Errorf("sweep.interval must be at least 1m")
	}

	// Ровно один режим идентичности: либо секрет токенов, либо dev-обход.
	if c.Auth.JWTSecret == "" && c.Auth.DevUserID == "" {
		return fmt.Errorf("either auth.jwt_secret or auth.dev_user_id is required")
	}

	return nil
}
