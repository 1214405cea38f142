// README: Config loader with env defaults for HTTP, DB, Redis, providers and AI settings.
package config

import (
	"os"
	"strconv"
)

// Provider strategy names.
const (
	ProviderCeneo   = "ceneo"
	ProviderAllegro = "allegro"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN is optional; empty disables the usage log and quota guard.
		DSN string
	}
	Redis struct {
		// Addr is optional; empty disables the generate-endpoint rate limit.
		Addr string
	}
	AI struct {
		GeminiKey string
		Model     string
	}
	Gifts struct {
		// Provider selects the product provider strategy: "ceneo" or "allegro".
		Provider string
	}
	Ceneo struct {
		APIKey    string
		PartnerID string
		APIURL    string
	}
	Allegro struct {
		ClientID     string
		ClientSecret string
		APIURL       string
		AuthURL      string
	}
	RateLimit struct {
		// PerMinute caps generate requests per client per minute. 0 disables.
		PerMinute int
	}
	Blog struct {
		// Dir holds the article JSON files. Missing dir yields empty lists.
		Dir string
	}
}

// Load reads configuration from the environment. Missing credentials do
// not fail here: the affected feature reports a configuration error at
// request time instead (the app must still serve static endpoints).
func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("GIFT_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("GIFT_DB_DSN")
	cfg.Redis.Addr = os.Getenv("GIFT_REDIS_ADDR")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.Model = envOrDefault("LLM_MODEL", "gemini-2.0-flash")
	cfg.Gifts.Provider = envOrDefault("GIFT_PROVIDER", ProviderCeneo)
	cfg.Ceneo.APIKey = os.Getenv("CENEO_API_KEY")
	cfg.Ceneo.PartnerID = os.Getenv("CENEO_PARTNER_ID")
	cfg.Ceneo.APIURL = envOrDefault("CENEO_API_URL", "https://partnerzyapi.ceneo.pl")
	cfg.Allegro.ClientID = os.Getenv("ALLEGRO_CLIENT_ID")
	cfg.Allegro.ClientSecret = os.Getenv("ALLEGRO_CLIENT_SECRET")
	cfg.Allegro.APIURL = envOrDefault("ALLEGRO_API_URL", "https://api.allegro.pl")
	cfg.Allegro.AuthURL = envOrDefault("ALLEGRO_AUTH_URL", "https://allegro.pl/auth/oauth/token")
	cfg.RateLimit.PerMinute = envOrDefaultInt("GIFT_RATE_LIMIT_PER_MINUTE", 10)
	cfg.Blog.Dir = envOrDefault("GIFT_BLOG_DIR", "content/blog")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
