package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int

	JWTSecret  []byte
	BcryptCost int

	StoreBackend string
	ProductsFile string
	UsersFile    string
	SQLitePath   string

	KafkaBrokers []string

	LogLevel string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServerPort: EnvIntDefault("PORT", 4000),

		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		BcryptCost: EnvIntDefault("BCRYPT_COST", 10),

		StoreBackend: EnvDefault("STORE_BACKEND", "file"),
		ProductsFile: EnvDefault("PRODUCTS_FILE", "db.json"),
		UsersFile:    EnvDefault("USERS_FILE", "users.json"),
		SQLitePath:   EnvDefault("SQLITE_PATH", "storefront.db"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
