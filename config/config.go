package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Config struct {
	DatabaseHost     string `env:"DATABASE_HOST" envDefault:"db"`
	DatabasePort     string `env:"DATABASE_PORT" envDefault:"5432"`
	DatabaseUser     string `env:"DATABASE_USER" envDefault:"postgres"`
	DatabasePassword string `env:"DATABASE_PASSWORD" envDefault:"password"`
	DatabaseName     string `env:"DATABASE_NAME" envDefault:"zerobot"`

	BotToken    string `env:"BOT_DISCORD_TOKEN"`
	BotPassword string `env:"BOT_DISCORD_PASSWORD"`
	StatsPort   string `env:"STATS_PORT" envDefault:"8080"`
	PetsFile    string `env:"PETS_PRICE_FILE" envDefault:"pets_price.json"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	ServerList  string `env:"SERVER_LIST_FILE" envDefault:"server_list.txt"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("đọc cấu hình môi trường: %w", err)
	}
	return cfg, nil
}

func (c Config) PostgresConnStr() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
	)
}

func InitDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.PostgresConnStr())
	if err != nil {
		return nil, fmt.Errorf("kết nối DB: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return db, nil
}

// defaultPetPrices is used when no pets_price.json exists alongside the
// binary, so a fresh deploy still has a pet catalog.
var defaultPetPrices = map[string]string{
	"fox":     "2000",
	"cat":     "800",
	"dog":     "1000",
	"rabbit":  "600",
	"hamster": "400",
	"parrot":  "1500",
	"dragon":  "10000",
}

// LoadPetCatalog reads the static pet price table once at startup.
// Catalog edits require redeploying the file.
func LoadPetCatalog(path string) (map[string]decimal.Decimal, error) {
	catalog := make(map[string]decimal.Decimal)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			for name, price := range defaultPetPrices {
				catalog[name] = decimal.RequireFromString(price)
			}
			return catalog, nil
		}
		return nil, fmt.Errorf("đọc bảng giá pet: %w", err)
	}

	var prices map[string]json.Number
	if err := json.Unmarshal(raw, &prices); err != nil {
		return nil, fmt.Errorf("bảng giá pet %s không hợp lệ: %w", path, err)
	}
	for name, price := range prices {
		d, err := decimal.NewFromString(price.String())
		if err != nil {
			return nil, fmt.Errorf("giá pet %q không hợp lệ: %w", name, err)
		}
		catalog[name] = d
	}
	return catalog, nil
}
