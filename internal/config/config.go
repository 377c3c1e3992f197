package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Prefix namespaces every environment variable, e.g. CS2HUB_SERVICE_ADDRESS.
const Prefix = "cs2hub"

// Common is shared by every binary.
type Common struct {
	// DevMode turns on trace logging and pretty console output.
	DevMode bool `split_words:"true"`

	// LogJsonStdout writes JSON logs to stdout instead of the console writer, for log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`
}

// Server configures the catalogue backend.
type Server struct {
	Common

	// ServiceAddress is the listen address of the HTTP API.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:8080"`

	// DBPath is the SQLite database file.
	DBPath string `split_words:"true" default:"./cs2hub.db"`

	// AllowedOrigins lists CORS origins. Wildcards are allowed per go-chi/cors.
	AllowedOrigins []string `split_words:"true" default:"http://localhost:*"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

// Client configures the catalogue client used by the admin screen and skinctl.
type Client struct {
	Common

	// CatalogueEndpoint is the skins resource: GET/POST/PUT/DELETE all go to this URL.
	CatalogueEndpoint string `required:"true" split_words:"true" default:"http://localhost:8080/api/skins"`

	// RequestTimeout bounds every request to the catalogue. Zero disables the timeout.
	RequestTimeout time.Duration `split_words:"true" default:"30s"`

	// LogFile receives logs while the terminal is owned by the admin screen.
	LogFile string `split_words:"true" default:"cs2hub-admin.log"`
}

// loadDotEnv loads .env from the working directory when present.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
}

// ParseServer reads the server configuration from the environment.
func ParseServer() (*Server, error) {
	loadDotEnv()

	var conf Server
	if err := envconfig.Process(Prefix, &conf); err != nil {
		_ = envconfig.Usage(Prefix, &conf)
		return nil, errors.Wrap(err, "failed to parse server configuration")
	}
	return &conf, nil
}

// ParseClient reads the client configuration from the environment.
func ParseClient() (*Client, error) {
	loadDotEnv()

	var conf Client
	if err := envconfig.Process(Prefix, &conf); err != nil {
		_ = envconfig.Usage(Prefix, &conf)
		return nil, errors.Wrap(err, "failed to parse client configuration")
	}
	return &conf, nil
}
