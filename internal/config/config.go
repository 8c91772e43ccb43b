package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment (and .env when present)
type Config struct {
	Port    string
	GinMode string

	ChromeBin   string
	ScrollCount int
	ScrollDelay time.Duration
	BaseURL     string

	AnthropicAPIKey   string
	AnthropicModel    string
	LLMIncludeContext bool

	ExtractMode string // "positional" or "keyed"
	YearMin     int
	YearMax     int
	PriceFloor  int

	CacheDir       string
	CacheExpiry    time.Duration
	ExportPath     string
	AdminKey       string
	ScrapeCooldown time.Duration
	ScrapeTimeout  time.Duration
}

// Load reads .env (if any) and the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() *Config {
	return &Config{
		Port:    getString("PORT", "8080"),
		GinMode: getString("GIN_MODE", "debug"),

		ChromeBin:   os.Getenv("CHROME_BIN"),
		ScrollCount: getInt("SCROLL_COUNT", 4),
		ScrollDelay: getDuration("SCROLL_DELAY", 2*time.Second),
		BaseURL:     getString("MARKETPLACE_BASE_URL", "https://www.facebook.com/marketplace/"),

		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:    os.Getenv("ANTHROPIC_MODEL"),
		LLMIncludeContext: getBool("LLM_INCLUDE_CONTEXT", false),

		ExtractMode: strings.ToLower(getString("EXTRACT_MODE", "positional")),
		YearMin:     getInt("YEAR_MIN", 1980),
		YearMax:     getInt("YEAR_MAX", 2025),
		PriceFloor:  getInt("PRICE_FLOOR", 100),

		CacheDir:       getString("CACHE_DIR", "data"),
		CacheExpiry:    getDuration("CACHE_EXPIRY", 24*time.Hour),
		ExportPath:     getString("EXPORT_PATH", "vehicle_data.csv"),
		AdminKey:       os.Getenv("ADMIN_KEY"),
		ScrapeCooldown: getDuration("SCRAPE_COOLDOWN", time.Minute),
		ScrapeTimeout:  getDuration("SCRAPE_TIMEOUT", 2*time.Minute),
	}
}

// LLMEnabled reports whether an API key is configured
func (c *Config) LLMEnabled() bool {
	return c.AnthropicAPIKey != ""
}

// Keyed reports whether listings should be extracted per card
func (c *Config) Keyed() bool {
	return c.ExtractMode == "keyed"
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
