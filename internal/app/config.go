package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Constants
const (
	DefaultEndpoint    = "http://localhost:3000/listings"
	DefaultContentType = "application/x-www-form-urlencoded"
	DefaultImageURL    = "https://images.unsplash.com/photo-1517841905240-472988babdf9?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=facearea&facepad=8&w=1024&h=1024&q=80"
	DefaultTitle       = "Listings"
	DefaultExportPath  = "public/index.html"
	DefaultExportKey   = "index.html"
	FilePermissions    = 0644

	// Error messages
	ErrViewNotMounted   = "Listing view not mounted"
	ErrFailedToRender   = "Failed to render listings"
	ErrFailedToEncode   = "Failed to encode listings"
	ErrMethodNotAllowed = "Method not allowed"
)

// Global variables (set by main)
var (
	Current   *ListingView
	Display   = DisplayOptions{ImageURL: DefaultImageURL}
	PageTitle = DefaultTitle
)

type ServerConfig struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

// SourceConfig describes the outbound request to the listings service.
// Headers are sent as-is on every request.
type SourceConfig struct {
	Endpoint  string            `yaml:"endpoint"`
	Method    string            `yaml:"method"`
	Headers   map[string]string `yaml:"headers"`
	Timeout   time.Duration     `yaml:"timeout"`
	UserAgent string            `yaml:"user_agent"`
}

type ViewConfig struct {
	Title    string `yaml:"title"`
	ImageURL string `yaml:"image_url"`
	Locale   string `yaml:"locale"`
	Timezone string `yaml:"timezone"`
}

type ExportConfig struct {
	Output string `yaml:"output"`
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Source SourceConfig `yaml:"source"`
	View   ViewConfig   `yaml:"view"`
	Export ExportConfig `yaml:"export"`
}

// LoadConfig reads the YAML file at path (skipped when path is empty),
// applies environment overrides and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	c.applyEnv()
	c.applyDefaults()

	if _, err := c.View.TimeLocation(); err != nil {
		return nil, fmt.Errorf("view.timezone: %w", err)
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	c.Source.Endpoint = getEnv("LISTINGS_ENDPOINT", c.Source.Endpoint)
	if port := os.Getenv("PORT"); port != "" {
		c.Server.ListenAddress = ":" + port
	}
	c.Server.ListenAddress = getEnv("LISTEN_ADDRESS", c.Server.ListenAddress)
	c.View.Locale = getEnv("LISTINGS_LOCALE", c.View.Locale)
	c.View.Timezone = getEnv("LISTINGS_TIMEZONE", c.View.Timezone)
	c.View.ImageURL = getEnv("LISTINGS_IMAGE_URL", c.View.ImageURL)
	c.Export.Bucket = getEnv("EXPORT_BUCKET", c.Export.Bucket)
}

func (c *Config) applyDefaults() {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Source.Endpoint == "" {
		c.Source.Endpoint = DefaultEndpoint
	}
	if c.Source.Method == "" {
		c.Source.Method = "GET"
	}
	// A nil map means "not configured"; an explicit empty map sends no headers
	if c.Source.Headers == nil {
		c.Source.Headers = map[string]string{"Content-Type": DefaultContentType}
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 10 * time.Second
	}
	if c.View.Title == "" {
		c.View.Title = DefaultTitle
	}
	if c.View.ImageURL == "" {
		c.View.ImageURL = DefaultImageURL
	}
	if c.Export.Output == "" {
		c.Export.Output = DefaultExportPath
	}
	if c.Export.Key == "" {
		c.Export.Key = DefaultExportKey
	}
}

// TimeLocation resolves the configured time zone, falling back to the
// process local zone.
func (v ViewConfig) TimeLocation() (*time.Location, error) {
	if v.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(v.Timezone)
}

// DisplayOptions builds the card display options for this view config
func (v ViewConfig) DisplayOptions() DisplayOptions {
	loc, err := v.TimeLocation()
	if err != nil {
		loc = time.Local
	}
	return DisplayOptions{
		ImageURL: v.ImageURL,
		Dates: DateOptions{
			Locale:   ResolveLocale(v.Locale),
			Location: loc,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
