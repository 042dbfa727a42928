package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pmi-competition/portal-api/internal/domain"
	"github.com/pmi-competition/portal-api/internal/scoring"
)

var (
	errMissingJWTSigningKey = errors.New("api.jwt_signing_key is required")
	errMissingServerKey     = errors.New("payment.midtrans.server_key is required when payment.provider is midtrans")
	errMissingSpreadsheetID = errors.New("sheets.spreadsheet_id is required when sheets are enabled")
	errNoEvents             = errors.New("competition.events must list at least one event")
)

type AppConfig struct {
	API         *APIConfig         `mapstructure:"api"`
	Gin         *GinConfig         `mapstructure:"gin"`
	Postgres    *PostgresConfig    `mapstructure:"postgres"`
	Payment     *PaymentConfig     `mapstructure:"payment"`
	Sheets      *SheetsConfig      `mapstructure:"sheets"`
	Competition *CompetitionConfig `mapstructure:"competition"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	PublicURL          string   `mapstructure:"public_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	AdminEmails        []string `mapstructure:"admin_emails"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

type PaymentConfig struct {
	// Provider is "midtrans" or "stub".
	Provider string          `mapstructure:"provider"`
	Midtrans *MidtransConfig `mapstructure:"midtrans"`
}

type MidtransConfig struct {
	ServerKey       string `mapstructure:"server_key"`
	Production      bool   `mapstructure:"production"`
	VerifySignature bool   `mapstructure:"verify_signature"`
}

type SheetsConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	CredentialsFile string `mapstructure:"credentials_file"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
}

type CompetitionConfig struct {
	// Scheme applies to every event that does not define its own.
	Scheme scoring.Scheme `mapstructure:"scheme"`
	Events []EventConfig  `mapstructure:"events"`
}

type EventConfig struct {
	ID          string          `mapstructure:"id"`
	Name        string          `mapstructure:"name"`
	Description string          `mapstructure:"description"`
	Fee         int64           `mapstructure:"fee"`
	MinMembers  int             `mapstructure:"min_members"`
	MaxMembers  int             `mapstructure:"max_members"`
	Scheme      *scoring.Scheme `mapstructure:"scheme"`
}

// Load reads the YAML file at path. Every key can be overridden from the
// environment by upper-casing it and replacing dots with underscores, for
// example API_PORT or PAYMENT_MIDTRANS_SERVER_KEY.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Warn("config file changed, restart the server to apply it", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("payment.provider", "midtrans")
	v.SetDefault("payment.midtrans.server_key", "")
	v.SetDefault("payment.midtrans.production", false)
	v.SetDefault("payment.midtrans.verify_signature", true)
	v.SetDefault("sheets.enabled", false)
	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.spreadsheet_id", "")
}

func (c *AppConfig) Validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return errMissingJWTSigningKey
	}
	if c.Payment != nil && c.Payment.Provider == "midtrans" &&
		(c.Payment.Midtrans == nil || c.Payment.Midtrans.ServerKey == "") {
		return errMissingServerKey
	}
	if c.Sheets != nil && c.Sheets.Enabled && c.Sheets.SpreadsheetID == "" {
		return errMissingSpreadsheetID
	}
	if c.Competition == nil || len(c.Competition.Events) == 0 {
		return errNoEvents
	}

	return nil
}

// Catalog builds the event catalog, falling back to the shared scheme for
// events without their own.
func (c *CompetitionConfig) Catalog() *domain.Catalog {
	events := make([]domain.Event, 0, len(c.Events))
	for _, e := range c.Events {
		scheme := c.Scheme
		if e.Scheme != nil {
			scheme = *e.Scheme
		}
		events = append(events, domain.Event{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Fee:         e.Fee,
			MinMembers:  e.MinMembers,
			MaxMembers:  e.MaxMembers,
			Scheme:      scheme,
		})
	}

	return domain.NewCatalog(events)
}
