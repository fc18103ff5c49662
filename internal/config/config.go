package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/golang/geo/r2"

	"github.com/jengzang/route-simplex/internal/spatial"
)

// Config 应用配置
type Config struct {
	Port            string          `toml:"port"`
	DBPath          string          `toml:"db_path"`
	JWTSecret       string          `toml:"jwt_secret"`
	TokenTTLMinutes int             `toml:"token_ttl_minutes"`
	Backend         BackendConfig   `toml:"backend"`
	Explorer        ExplorerConfig  `toml:"explorer"`
	RateLimit       RateLimitConfig `toml:"rate_limit"`
}

// BackendConfig points at the routing backend
type BackendConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ExplorerConfig controls the weight selector
type ExplorerConfig struct {
	HitThreshold    float64       `toml:"hit_threshold"`
	CanvasWidth     int           `toml:"canvas_width"`
	CanvasHeight    int           `toml:"canvas_height"`
	RenderCacheSize int           `toml:"render_cache_size"`
	DiscardStale    bool          `toml:"discard_stale"` // drop responses of superseded requests
	Corners         CornersConfig `toml:"corners"`
}

// CornersConfig places the three objectives on the canvas, as [x, y]
type CornersConfig struct {
	Length        [2]float64 `toml:"length"`
	Height        [2]float64 `toml:"height"`
	Unsuitability [2]float64 `toml:"unsuitability"`
}

// RateLimitConfig limits requests per client IP
type RateLimitConfig struct {
	Requests      int `toml:"requests"`
	WindowSeconds int `toml:"window_seconds"`
}

// Default 默认配置
func Default() *Config {
	c := spatial.DefaultCorners
	return &Config{
		Port:            ":8080",
		DBPath:          ":memory:",
		JWTSecret:       "your-secret-key-change-in-production",
		TokenTTLMinutes: 24 * 60,
		Backend: BackendConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 60,
		},
		Explorer: ExplorerConfig{
			HitThreshold:    5,
			CanvasWidth:     510,
			CanvasHeight:    510,
			RenderCacheSize: 128,
			Corners: CornersConfig{
				Length:        [2]float64{c.Length.X, c.Length.Y},
				Height:        [2]float64{c.Height.X, c.Height.Y},
				Unsuitability: [2]float64{c.Unsuitability.X, c.Unsuitability.Y},
			},
		},
		RateLimit: RateLimitConfig{
			Requests:      3000,
			WindowSeconds: 60,
		},
	}
}

// Load 加载配置: defaults, then the TOML file named by EXPLORER_CONFIG,
// then environment variables. A broken config file is reported and
// ignored.
func Load() *Config {
	cfg, err := LoadFile(os.Getenv("EXPLORER_CONFIG"))
	if err != nil {
		log.Printf("[Config] %v, using defaults", err)
		cfg = Default()
		applyEnv(cfg)
	}
	return cfg
}

// LoadFile is Load with an explicit config file. An empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		cfg.JWTSecret = jwtSecret
	}
	if backend := os.Getenv("BACKEND_URL"); backend != "" {
		cfg.Backend.URL = backend
	}
}

// Corners returns the configured corner layout
func (c *Config) Corners() spatial.Corners {
	k := c.Explorer.Corners
	return spatial.Corners{
		Length:        r2.Point{X: k.Length[0], Y: k.Length[1]},
		Height:        r2.Point{X: k.Height[0], Y: k.Height[1]},
		Unsuitability: r2.Point{X: k.Unsuitability[0], Y: k.Unsuitability[1]},
	}
}

// RequestTimeout is the timeout of one backend request
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// TokenTTL is the lifetime of a session token
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}

// RateWindow is the rate limit window
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}
