package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	StorageLocal = "local"
	StorageBunny = "bunny"
	StorageS3    = "s3"
	StorageMinio = "minio"

	RegistryMemory = "memory"
	RegistryRedis  = "redis"
)

type Config struct {
	Server    ServerConfig
	Upload    UploadConfig
	Storage   StorageConfig
	Stream    StreamConfig
	Jobs      JobsConfig
	Transcode TranscodeConfig
	Log       LogConfig
	Locale    string
}

type ServerConfig struct {
	Port string
	Host string
}

type UploadConfig struct {
	TempDir     string
	MaxFileSize int64 // bytes
	TempMaxAge  time.Duration
}

type StorageConfig struct {
	Driver     string
	APITimeout time.Duration
	Bunny      BunnyStorageConfig
	S3         S3Config
	Minio      MinioConfig
	Local      LocalConfig
}

type BunnyStorageConfig struct {
	Endpoint  string
	ZoneName  string
	AccessKey string
	CDNHost   string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // S3 uyumlu servisler için
	Prefix          string
	PublicBaseURL   string
	AccessKeyID     string // boşsa default credential chain
	SecretAccessKey string
}

type MinioConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	UseSSL        bool
	Prefix        string
	PublicBaseURL string
}

type LocalConfig struct {
	BaseDir       string
	PublicBaseURL string
}

type StreamConfig struct {
	Driver        string
	APIHost       string
	LibraryID     string
	APIKey        string
	CDNHost       string
	RetryAttempts int
	RetryInterval time.Duration
	UploadTimeout time.Duration
	Local         LocalConfig
}

type JobsConfig struct {
	Workers       int
	QueueSize     int
	Registry      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Retention     time.Duration
	SweepSchedule string
}

type TranscodeConfig struct {
	FFmpegPath       string
	FFprobePath      string
	Preset           string
	CRF              int
	SampleRate       int
	Channels         int
	ProbeTimeout     time.Duration
	TranscodeTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "3000"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Upload: UploadConfig{
			TempDir:     getEnv("UPLOAD_TEMP_DIR", "tmp"),
			MaxFileSize: getEnvAsInt64("UPLOAD_MAX_FILE_SIZE", 500*1024*1024), // 500MB
			TempMaxAge:  getEnvAsDuration("UPLOAD_TEMP_MAX_AGE", 24*time.Hour),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageLocal)),
			APITimeout: getEnvAsDuration("STORAGE_API_TIMEOUT", 30*time.Second),
			Bunny: BunnyStorageConfig{
				Endpoint:  getEnv("BUNNY_STORAGE_ENDPOINT", "https://sg.storage.bunnycdn.com"),
				ZoneName:  getEnv("BUNNY_STORAGE_ZONE", ""),
				AccessKey: getEnv("BUNNY_STORAGE_ACCESS_KEY", ""),
				CDNHost:   getEnv("BUNNY_CDN_HOST", ""),
			},
			S3: S3Config{
				Bucket:          getEnv("S3_BUCKET", ""),
				Region:          getEnv("S3_REGION", "us-east-1"),
				Endpoint:        getEnv("S3_ENDPOINT", ""),
				Prefix:          getEnv("S3_PREFIX", ""),
				PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
				AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			},
			Minio: MinioConfig{
				Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
				Bucket:        getEnv("MINIO_BUCKET", ""),
				Region:        getEnv("MINIO_REGION", ""),
				UseSSL:        getEnvAsBool("MINIO_USE_SSL", false),
				Prefix:        getEnv("MINIO_PREFIX", ""),
				PublicBaseURL: getEnv("MINIO_PUBLIC_BASE_URL", ""),
			},
			Local: LocalConfig{
				BaseDir:       getEnv("LOCAL_STORAGE_DIR", "uploads/images"),
				PublicBaseURL: getEnv("LOCAL_STORAGE_PUBLIC_URL", "http://localhost:3000/static/images"),
			},
		},
		Stream: StreamConfig{
			Driver:        strings.ToLower(getEnv("STREAM_DRIVER", StorageLocal)),
			APIHost:       getEnv("BUNNY_STREAM_API_HOST", "https://video.bunnycdn.com"),
			LibraryID:     getEnv("BUNNY_STREAM_LIBRARY_ID", ""),
			APIKey:        getEnv("BUNNY_STREAM_API_KEY", ""),
			CDNHost:       getEnv("BUNNY_STREAM_CDN_HOST", ""),
			RetryAttempts: getEnvAsInt("STREAM_RETRY_ATTEMPTS", 3),
			RetryInterval: getEnvAsDuration("STREAM_RETRY_INTERVAL", time.Second),
			UploadTimeout: getEnvAsDuration("STREAM_UPLOAD_TIMEOUT", 2*time.Minute),
			Local: LocalConfig{
				BaseDir:       getEnv("LOCAL_STREAM_DIR", "uploads/videos"),
				PublicBaseURL: getEnv("LOCAL_STREAM_PUBLIC_URL", "http://localhost:3000/static/videos"),
			},
		},
		Jobs: JobsConfig{
			Workers:       getEnvAsInt("JOB_WORKERS", 2),
			QueueSize:     getEnvAsInt("JOB_QUEUE_SIZE", 100),
			Registry:      strings.ToLower(getEnv("JOB_REGISTRY", RegistryMemory)),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			Retention:     getEnvAsDuration("JOB_RETENTION", 24*time.Hour),
			SweepSchedule: getEnv("MAINTENANCE_SCHEDULE", "0 */5 * * * *"),
		},
		Transcode: TranscodeConfig{
			FFmpegPath:       getEnv("FFMPEG_PATH", "ffmpeg"),
			FFprobePath:      getEnv("FFPROBE_PATH", "ffprobe"),
			Preset:           getEnv("FFMPEG_PRESET", "fast"),
			CRF:              getEnvAsInt("FFMPEG_CRF", 30),
			SampleRate:       getEnvAsInt("FFMPEG_SAMPLE_RATE", 44100),
			Channels:         getEnvAsInt("FFMPEG_CHANNELS", 2),
			ProbeTimeout:     getEnvAsDuration("FFPROBE_TIMEOUT", 30*time.Second),
			TranscodeTimeout: getEnvAsDuration("FFMPEG_TIMEOUT", 30*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Locale: getEnv("APP_LOCALE", "en"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := ensureDir(config.Upload.TempDir); err != nil {
		return nil, fmt.Errorf("temp dir oluşturulamadı: %w", err)
	}
	if config.Storage.Driver == StorageLocal {
		if err := ensureDir(config.Storage.Local.BaseDir); err != nil {
			return nil, fmt.Errorf("local storage dir oluşturulamadı: %w", err)
		}
	}
	if config.Stream.Driver == StorageLocal {
		if err := ensureDir(config.Stream.Local.BaseDir); err != nil {
			return nil, fmt.Errorf("local stream dir oluşturulamadı: %w", err)
		}
	}

	return config, nil
}

// Validate checks that the selected drivers have what they need.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case StorageLocal:
	case StorageBunny:
		if c.Storage.Bunny.ZoneName == "" || c.Storage.Bunny.AccessKey == "" || c.Storage.Bunny.CDNHost == "" {
			problems = append(problems, "bunny storage requires BUNNY_STORAGE_ZONE, BUNNY_STORAGE_ACCESS_KEY and BUNNY_CDN_HOST")
		}
	case StorageS3:
		if c.Storage.S3.Bucket == "" {
			problems = append(problems, "s3 storage requires S3_BUCKET")
		}
	case StorageMinio:
		if c.Storage.Minio.Bucket == "" || c.Storage.Minio.AccessKey == "" || c.Storage.Minio.SecretKey == "" {
			problems = append(problems, "minio storage requires MINIO_BUCKET, MINIO_ACCESS_KEY and MINIO_SECRET_KEY")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	switch c.Stream.Driver {
	case StorageLocal:
	case StorageBunny:
		if c.Stream.LibraryID == "" || c.Stream.APIKey == "" || c.Stream.CDNHost == "" {
			problems = append(problems, "bunny stream requires BUNNY_STREAM_LIBRARY_ID, BUNNY_STREAM_API_KEY and BUNNY_STREAM_CDN_HOST")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown STREAM_DRIVER %q", c.Stream.Driver))
	}

	switch c.Jobs.Registry {
	case RegistryMemory, RegistryRedis:
	default:
		problems = append(problems, fmt.Sprintf("unknown JOB_REGISTRY %q", c.Jobs.Registry))
	}

	if c.Stream.RetryAttempts < 1 {
		problems = append(problems, "STREAM_RETRY_ATTEMPTS must be at least 1")
	}
	if c.Stream.RetryInterval < 0 {
		problems = append(problems, "STREAM_RETRY_INTERVAL cannot be negative")
	}
	if c.Jobs.Workers < 1 {
		problems = append(problems, "JOB_WORKERS must be at least 1")
	}
	if c.Jobs.QueueSize < 1 {
		problems = append(problems, "JOB_QUEUE_SIZE must be at least 1")
	}
	if c.Upload.MaxFileSize <= 0 {
		problems = append(problems, "UPLOAD_MAX_FILE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	return int(getEnvAsInt64(key, int64(defaultValue)))
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("1500ms") or bare milliseconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func ensureDir(dir string) error {
	if !filepath.IsAbs(dir) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		dir = abs
	}
	return os.MkdirAll(dir, 0755)
}
