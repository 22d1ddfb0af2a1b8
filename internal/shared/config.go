package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HotelName   string
	HTTPAddr    string
	MetricsAddr string
	DataDir     string

	RedisAddr       string
	RedisDB         int
	RedisPass       string
	RedisTimeout    time.Duration
	SessionTTL      time.Duration
	SessionCapacity int

	ChunkMaxTokens int
	CharsPerToken  int
	RequestTimeout time.Duration

	LogSink           string // sheets | mysql
	GoogleServiceAcct string
	GoogleSheetID     string
	SheetsRange       string
	SheetsRPS         float64
	SheetsTimeout     time.Duration
	MySQLDSN          string
}

// Load reads configuration from the environment, after an optional .env
// file in the working directory.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg(".env could not be read")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HotelName:   env("HOTEL_NAME", "Formi Resorts"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		DataDir:     env("DATA_DIR", "data"),

		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		RedisTimeout:    time.Duration(atoi("REDIS_TIMEOUT_MS", 2000)) * time.Millisecond,
		SessionTTL:      time.Duration(atoi("SESSION_TTL_SECONDS", 0)) * time.Second,
		SessionCapacity: atoi("SESSION_LOCAL_CAPACITY", 10000),

		ChunkMaxTokens: atoi("CHUNK_MAX_TOKENS", 800),
		CharsPerToken:  atoi("CHARS_PER_TOKEN", 4),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,

		LogSink:           env("LOG_SINK", "sheets"),
		GoogleServiceAcct: env("GOOGLE_SERVICE_ACCOUNT_FILE", "data/service-account.json"),
		GoogleSheetID:     os.Getenv("GOOGLE_SHEET_ID"),
		SheetsRange:       env("SHEETS_RANGE", "Sheet1!A1"),
		SheetsRPS:         float64(atoi("SHEETS_RPS", 1)),
		SheetsTimeout:     time.Duration(atoi("SHEETS_TIMEOUT_SECONDS", 10)) * time.Second,
		MySQLDSN:          env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_voice?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
	}
	if c.LogSink == "sheets" && c.GoogleSheetID == "" {
		log.Warn().Msg("GOOGLE_SHEET_ID is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
