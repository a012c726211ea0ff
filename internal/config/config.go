package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	UploadBackendDisk = "disk"
	UploadBackendS3   = "s3"
)

type Config struct {
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"3000"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://127.0.0.1:27017"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"flatmatefinder"`

	// Static pages and uploaded images are both served out of PublicDir.
	PublicDir string `envconfig:"PUBLIC_DIR" default:"public"`
	UploadDir string `envconfig:"UPLOAD_DIR" default:"public/uploads"`

	UploadBackend string `envconfig:"UPLOAD_BACKEND" default:"disk"`
	MaxUploadMB   int64  `envconfig:"MAX_UPLOAD_MB" default:"32"`

	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3PublicURL string `envconfig:"S3_PUBLIC_URL"`
}

// Load reads the environment into a Config and checks the combinations
// envconfig can't express with tags alone.
func Load() (*Config, error) {
	c := new(Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.MongoURI == "" {
		return nil, fmt.Errorf("set MONGO_URI")
	}

	c.UploadBackend = strings.ToLower(strings.TrimSpace(c.UploadBackend))
	switch c.UploadBackend {
	case UploadBackendDisk:
	case UploadBackendS3:
		if c.S3Bucket == "" || c.S3PublicURL == "" {
			return nil, fmt.Errorf("set S3_BUCKET and S3_PUBLIC_URL when UPLOAD_BACKEND=s3")
		}
	default:
		return nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", c.UploadBackend)
	}

	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 32
	}

	return c, nil
}

func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
