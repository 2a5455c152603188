package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/leoisqualified/pomodoro-timer/internal/logger"
)

const (
	defaultListenAddr   = "localhost:8000"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction
	defaultCORSOrigin   = "http://localhost:5173"
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the pomodoro service will be run
	ListenAddr string

	// Database to connect to
	DatabaseDSN string

	// Secret to sign access tokens
	AccessSecret string

	// Secret to sign refresh tokens, must differ from AccessSecret
	RefreshSecret string

	// Origin of the SPA that talks to this API
	CORSOrigin string

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		ListenAddr:  defaultListenAddr,
		CORSOrigin:  defaultCORSOrigin,
		Environment: defaultEnvironment,
	}
}

// Load variable from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":        setString(&c.ListenAddr),
		"DATABASE_URI":       setString(&c.DatabaseDSN),
		"SECRET_KEY":         setString(&c.AccessSecret),
		"REFRESH_SECRET_KEY": setString(&c.RefreshSecret),
		"CORS_ORIGIN":        setString(&c.CORSOrigin),
		"LOG_LEVEL":          setString(&c.LogLevel),
		"ENVIRONMENT":        setString(&c.Environment),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("pomodoro", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVarP(&c.AccessSecret, "secret-key", "s", c.AccessSecret, "Access token signing secret")
	fs.StringVarP(&c.RefreshSecret, "refresh-secret-key", "r", c.RefreshSecret, "Refresh token signing secret")
	fs.StringVarP(&c.CORSOrigin, "cors-origin", "o", c.CORSOrigin, "Allowed SPA origin")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	return fs.Parse(args)
}

// Validate refuses to let the service start half configured
func (c *Config) Validate() error {
	switch {
	case c.DatabaseDSN == "":
		return errors.New("database connection string is required")
	case c.AccessSecret == "":
		return errors.New("access token secret is required")
	case c.RefreshSecret == "":
		return errors.New("refresh token secret is required")
	case c.AccessSecret == c.RefreshSecret:
		return errors.New("access and refresh token secrets must differ")
	default:
		return nil
	}
}
