package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every process setting in one explicit struct so
// adapters receive their credentials at construction instead of
// reading globals. Absent provider credentials are legal; the provider
// is simply disabled for the run.
type Config struct {
	AmadeusAPIKey    string
	AmadeusAPISecret string
	AmadeusBaseURL   string

	TequilaAPIKey   string
	TequilaEndpoint string

	Currency   string
	MaxResults int

	RoutesPath  string
	OutputPath  string
	ReduceScope string

	WebhookURL    string
	WebhookToken  string
	WebhookSource string

	DatabaseURL string
	DBPath      string
	RedisAddr   string

	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

// Load reads the configuration from the environment. Callers run
// godotenv.Load first so a local .env file participates.
func Load() Config {
	return Config{
		AmadeusAPIKey:    os.Getenv("AMADEUS_API_KEY"),
		AmadeusAPISecret: os.Getenv("AMADEUS_API_SECRET"),
		AmadeusBaseURL:   Get("AMADEUS_BASE_URL", "https://api.amadeus.com"),

		TequilaAPIKey:   os.Getenv("TEQUILA_API_KEY"),
		TequilaEndpoint: Get("TEQUILA_ENDPOINT", "https://tequila-api.kiwi.com/v2/search"),

		Currency:   Get("CURRENCY", "AUD"),
		MaxResults: GetInt("MAX_RESULTS", 5),

		RoutesPath:  Get("ROUTES_PATH", "data/routes.json"),
		OutputPath:  Get("OUTPUT_PATH", "data/live_deals.json"),
		ReduceScope: Get("REDUCE_SCOPE", "route"),

		WebhookURL:    os.Getenv("WEBHOOK_URL"),
		WebhookToken:  os.Getenv("WEBHOOK_TOKEN"),
		WebhookSource: Get("WEBHOOK_SOURCE", "flight-deals-service"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBPath:      Get("DB_PATH", "data/deals.db"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		CacheTTL:    time.Duration(GetInt("CACHE_TTL_MINUTES", 30)) * time.Minute,
		HTTPTimeout: time.Duration(GetInt("HTTP_TIMEOUT_SECONDS", 20)) * time.Second,
	}
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
