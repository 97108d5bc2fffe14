package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	Minio    MinioConfig
	NATS     NATSConfig
	Upload   UploadConfig
	Raster   RasterConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

type MinioConfig struct {
	Endpoint       string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName     string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey      string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey      string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UseSSL         bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	RetryAttempts  int           `envconfig:"MINIO_RETRY_ATTEMPTS" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"MINIO_RETRY_BASE_DELAY" default:"200ms"`
	RetryMaxDelay  time.Duration `envconfig:"MINIO_RETRY_MAX_DELAY" default:"5s"`
}

type NATSConfig struct {
	URL               string `envconfig:"NATS_URL" required:"true"`
	Name              string `envconfig:"NATS_NAME" default:"drop4crop-api"`
	StreamName        string `envconfig:"NATS_STREAM_NAME" default:"LAYERS"`
	RegisteredSubject string `envconfig:"NATS_REGISTERED_SUBJECT" default:"layers.registered"`
	DeletedSubject    string `envconfig:"NATS_DELETED_SUBJECT" default:"layers.deleted"`
}

type UploadConfig struct {
	MaxUploadSize       int64         `envconfig:"UPLOAD_MAX_SIZE" default:"5368709120"` // 5GB
	MinRasterBytes      int64         `envconfig:"UPLOAD_MIN_RASTER_BYTES" default:"1024"`
	SessionTTL          time.Duration `envconfig:"UPLOAD_SESSION_TTL" default:"30m"`
	ReapEvery           time.Duration `envconfig:"UPLOAD_REAP_EVERY" default:"15m"`
	OverwriteDuplicates bool          `envconfig:"UPLOAD_OVERWRITE_DUPLICATES" default:"false"`
}

type RasterConfig struct {
	GDALTranslatePath string `envconfig:"RASTER_GDAL_TRANSLATE_PATH" default:"gdal_translate"`
	GDALInfoPath      string `envconfig:"RASTER_GDALINFO_PATH" default:"gdalinfo"`
	TempDir           string `envconfig:"RASTER_TEMP_DIR" default:""`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
