package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pedidos/internal/order"
)

type Backend string

const (
	BackendFile     Backend = "file"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

type Config struct {
	App struct {
		Name      string `envconfig:"APP_NAME" default:"Pedidos"`
		Port      int    `envconfig:"PORT" default:"8080"`
		ExportDir string `envconfig:"EXPORT_DIR" default:"."`
		Debug     bool   `envconfig:"DEBUG" default:"false"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
		MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
	}

	Storage struct {
		Backend Backend `envconfig:"STORAGE_BACKEND" default:"file"`
		Dir     string  `envconfig:"STORAGE_DIR" default:"./data"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pedidos"`
	}

	Redis struct {
		URL    string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
		Prefix string `envconfig:"REDIS_PREFIX" default:"pedidos"`
	}

	Ledger struct {
		PaymentScope   string       `envconfig:"PAYMENT_SCOPE" default:"order"`
		ImportGrouping string       `envconfig:"IMPORT_GROUPING" default:"grouped"`
		NumberPolicy   string       `envconfig:"NUMBER_POLICY" default:"zero"`
		Overpayment    string       `envconfig:"OVERPAYMENT_POLICY" default:"allow"`
		SurchargeRates SurchargeMap `envconfig:"SURCHARGE_RATES" default:"boticario:15,natura:30,eudora:20"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		Issuer    string `envconfig:"AUTH_JWT_ISSUER"`
	}
}

// SurchargeMap decodes "brand:percent,brand:percent". Brand names are folded like imports.
type SurchargeMap map[string]decimal.Decimal

func (m *SurchargeMap) Decode(value string) error {
	out := make(SurchargeMap)

	for pair := range strings.SplitSeq(value, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}

		brand, rate, ok := strings.Cut(pair, ":")
		if !ok {
			return fmt.Errorf("surcharge %q: expected brand:percent", pair)
		}

		d, err := decimal.NewFromString(strings.TrimSpace(rate))
		if err != nil {
			return fmt.Errorf("surcharge %q: %w", pair, err)
		}

		if d.IsNegative() {
			return fmt.Errorf("surcharge %q: negative rate", pair)
		}

		out[order.Fold(brand)] = d
	}

	*m = out

	return nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Policy returns the ledger switches after checking them.
func (c *Config) Policy() (order.Policy, error) {
	p := order.Policy{
		Scope:       order.PaymentScope(order.Fold(c.Ledger.PaymentScope)),
		Grouping:    order.Grouping(order.Fold(c.Ledger.ImportGrouping)),
		Numbers:     order.NumberPolicy(order.Fold(c.Ledger.NumberPolicy)),
		Overpayment: order.OverpaymentPolicy(order.Fold(c.Ledger.Overpayment)),
	}

	if err := p.Validate(); err != nil {
		return order.Policy{}, err
	}

	return p, nil
}

func (c *Config) Rates() order.Rates {
	rates := make(order.Rates, len(c.Ledger.SurchargeRates))
	for brand, rate := range c.Ledger.SurchargeRates {
		rates[order.Brand(brand)] = rate
	}

	return rates
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendRedis, BackendPostgres, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if _, err := cfg.Policy(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
