// Package config reads and validates everything the app needs to start.
// Values come from config.toml and the environment, environment winning.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

const DefaultCapacity = 2 << 30 // 2 GiB per user

var (
	configPath     = pflag.String("config", ".", "Directory containing config.toml")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

// Appwrite holds everything needed to talk to the BaaS.
type Appwrite struct {
	Endpoint          string
	ProjectID         string
	DatabaseID        string
	UsersCollectionID string
	FilesCollectionID string
	BucketID          string
	SecretKey         string
}

type S3 struct {
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	// Public base URL files are served from, e.g. a CDN in front of the bucket
	PublicURL string
}

type Config struct {
	LogLevel    string
	Port        int
	CORSOrigins []string

	Appwrite Appwrite
	S3       S3

	// "appwrite" or "s3", decides where blobs live. Documents always
	// live in Appwrite
	StorageType string
	Capacity    int64

	UploadMaxSize int64
	CookieName    string
	CookieSecure  bool
	SignInPath    string
}

// Load prepares everything config-related so the app can start working.
// It returns an error if something is critically wrong and the
// application can't run because of that.
func Load() (*Config, error) {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("appwrite.endpoint", "appwrite_endpoint")
	v.BindEnv("appwrite.project_id", "appwrite_project_id")
	v.BindEnv("appwrite.database_id", "appwrite_database_id")
	v.BindEnv("appwrite.users_collection_id", "appwrite_users_collection_id")
	v.BindEnv("appwrite.files_collection_id", "appwrite_files_collection_id")
	v.BindEnv("appwrite.bucket_id", "appwrite_bucket_id")
	v.BindEnv("appwrite.secret_key", "appwrite_secret_key")

	v.BindEnv("storage.type", "storage_type")
	v.BindEnv("storage.capacity", "storage_capacity")

	v.BindEnv("s3.access_key_id", "s3_access_key_id")
	v.BindEnv("s3.secret_access_key", "s3_secret_access_key")
	v.BindEnv("s3.bucket", "s3_bucket")
	v.BindEnv("s3.region", "s3_region")
	v.BindEnv("s3.public_url", "s3_public_url")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("session.cookie_name", "session_cookie_name")
	v.BindEnv("session.cookie_secure", "session_cookie_secure")
	v.BindEnv("session.sign_in_path", "session_sign_in_path")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("storage.type", "appwrite")
	v.SetDefault("storage.capacity", int64(DefaultCapacity))

	v.SetDefault("upload.max_size", 50)

	v.SetDefault("session.cookie_name", "appwrite-session")
	v.SetDefault("session.cookie_secure", true)
	v.SetDefault("session.sign_in_path", "/sign-in")

	if err := v.ReadInConfig(); err != nil {
		var notFound v.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
		// Missing config.toml is fine as long as the environment
		// provides the required values
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return nil, errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return nil, errors.New("invalid port provided")
	}

	if v.GetString("appwrite.endpoint") == "" {
		return nil, errors.New("appwrite endpoint can't be empty")
	}
	if v.GetString("appwrite.project_id") == "" {
		return nil, errors.New("appwrite project id can't be empty")
	}
	if v.GetString("appwrite.database_id") == "" {
		return nil, errors.New("appwrite database id can't be empty")
	}
	if v.GetString("appwrite.users_collection_id") == "" {
		return nil, errors.New("appwrite users collection id can't be empty")
	}
	if v.GetString("appwrite.files_collection_id") == "" {
		return nil, errors.New("appwrite files collection id can't be empty")
	}
	if v.GetString("appwrite.secret_key") == "" {
		return nil, errors.New("appwrite secret key can't be empty")
	}

	switch v.GetString("storage.type") {
	case "appwrite":
		if v.GetString("appwrite.bucket_id") == "" {
			return nil, errors.New("appwrite bucket id can't be empty")
		}
	case "s3":
		if v.GetString("s3.access_key_id") == "" {
			return nil, errors.New("s3 access key id can't be empty")
		}
		if v.GetString("s3.secret_access_key") == "" {
			return nil, errors.New("s3 secret access key can't be empty")
		}
		if v.GetString("s3.bucket") == "" {
			return nil, errors.New("s3 bucket can't be empty")
		}
	default:
		return nil, errors.New("invalid storage type provided")
	}

	if v.GetInt64("storage.capacity") <= 0 {
		return nil, errors.New("storage capacity must be bigger than 0")
	}

	if v.GetInt64("upload.max_size") <= 0 {
		return nil, errors.New("upload max size must be bigger than 0")
	}

	return &Config{
		LogLevel:    v.GetString("app.log_level"),
		Port:        v.GetInt("host.port"),
		CORSOrigins: v.GetStringSlice("host.cors_origins"),
		Appwrite: Appwrite{
			Endpoint:          strings.TrimRight(v.GetString("appwrite.endpoint"), "/"),
			ProjectID:         v.GetString("appwrite.project_id"),
			DatabaseID:        v.GetString("appwrite.database_id"),
			UsersCollectionID: v.GetString("appwrite.users_collection_id"),
			FilesCollectionID: v.GetString("appwrite.files_collection_id"),
			BucketID:          v.GetString("appwrite.bucket_id"),
			SecretKey:         v.GetString("appwrite.secret_key"),
		},
		S3: S3{
			AccessKeyID:     v.GetString("s3.access_key_id"),
			SecretAccessKey: v.GetString("s3.secret_access_key"),
			Bucket:          v.GetString("s3.bucket"),
			Region:          v.GetString("s3.region"),
			PublicURL:       strings.TrimRight(v.GetString("s3.public_url"), "/"),
		},
		StorageType:   v.GetString("storage.type"),
		Capacity:      v.GetInt64("storage.capacity"),
		UploadMaxSize: v.GetInt64("upload.max_size") << 20,
		CookieName:    v.GetString("session.cookie_name"),
		CookieSecure:  v.GetBool("session.cookie_secure"),
		SignInPath:    v.GetString("session.sign_in_path"),
	}, nil
}
