package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tylercoen/bankist/ledger"
	"gopkg.in/yaml.v3"
)

// Config describes everything seeded at startup: the demo accounts, the HTTP
// listener, and the operation journal backend.
type Config struct {
	Accounts []AccountConfig `json:"accounts" yaml:"accounts"`
	Server   ServerConfig    `json:"server" yaml:"server"`
	Journal  JournalConfig   `json:"journal" yaml:"journal"`
}

// AccountConfig is one seed account. Username is always derived from Owner,
// never configured.
type AccountConfig struct {
	Owner        string           `json:"owner" yaml:"owner"`
	PIN          int              `json:"pin" yaml:"pin"`
	InterestRate float64          `json:"interest_rate" yaml:"interest_rate"`
	Currency     string           `json:"currency" yaml:"currency"`
	Locale       string           `json:"locale" yaml:"locale"`
	Movements    []MovementConfig `json:"movements,omitempty" yaml:"movements,omitempty"`
}

// MovementConfig is one seed ledger entry with its RFC 3339 timestamp.
type MovementConfig struct {
	Amount float64 `json:"amount" yaml:"amount"`
	Date   string  `json:"date" yaml:"date"`
}

// ParseDate converts the seed timestamp string to time.Time.
func (mc MovementConfig) ParseDate() (time.Time, error) {
	return time.Parse(time.RFC3339, mc.Date)
}

// ServerConfig contains HTTP daemon parameters.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// JournalConfig selects the operation journal backend.
type JournalConfig struct {
	Type    string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	OpsFile string `json:"ops_file,omitempty" yaml:"ops_file,omitempty"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the seed-data preconditions the engine relies on but never
// re-checks at runtime, most importantly that no two owners derive the same
// username.
func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}

	seen := make(map[string]string)
	for i, ac := range c.Accounts {
		if ac.Owner == "" {
			return fmt.Errorf("accounts[%d].owner is required", i)
		}
		if ac.PIN <= 0 {
			return fmt.Errorf("accounts[%d].pin must be positive", i)
		}
		if ac.InterestRate < 0 {
			return fmt.Errorf("accounts[%d].interest_rate must not be negative", i)
		}
		if ac.Currency == "" {
			return fmt.Errorf("accounts[%d].currency is required", i)
		}
		if ac.Locale == "" {
			return fmt.Errorf("accounts[%d].locale is required", i)
		}

		username := ledger.DeriveUsername(ac.Owner)
		if other, dup := seen[username]; dup {
			return fmt.Errorf("accounts %q and %q both derive username %q", other, ac.Owner, username)
		}
		seen[username] = ac.Owner

		for j, mc := range ac.Movements {
			if _, err := mc.ParseDate(); err != nil {
				return fmt.Errorf("accounts[%d].movements[%d].date: %w", i, j, err)
			}
		}
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.OpsFile == "" {
			return fmt.Errorf("journal.ops_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// Build constructs the account store from the validated seed data.
func (c *Config) Build() (*ledger.Store, error) {
	store := ledger.NewStore()
	for _, ac := range c.Accounts {
		a := ledger.NewAccount(ac.Owner, ac.PIN, ac.InterestRate, ac.Currency, ac.Locale)
		for _, mc := range ac.Movements {
			at, err := mc.ParseDate()
			if err != nil {
				return nil, fmt.Errorf("account %q: %w", ac.Owner, err)
			}
			a.Movements = append(a.Movements, mc.Amount)
			a.MovementDates = append(a.MovementDates, at)
		}
		store.Append(a)
	}
	return store, nil
}

// Default returns the two demo accounts the app has always shipped with.
func Default() *Config {
	return &Config{
		Accounts: []AccountConfig{
			{
				Owner:        "Jonas Schmedtmann",
				PIN:          1111,
				InterestRate: 1.2,
				Currency:     "EUR",
				Locale:       "pt-PT",
				Movements: []MovementConfig{
					{Amount: 200, Date: "2019-11-18T21:31:17Z"},
					{Amount: 455.23, Date: "2019-12-23T07:42:02Z"},
					{Amount: -306.5, Date: "2020-01-28T09:15:04Z"},
					{Amount: 25000, Date: "2020-04-01T10:17:24Z"},
					{Amount: -642.21, Date: "2020-05-08T14:11:59Z"},
					{Amount: -133.9, Date: "2020-05-27T17:01:17Z"},
					{Amount: 79.97, Date: "2020-07-11T23:36:17Z"},
					{Amount: 1300, Date: "2020-07-12T10:51:36Z"},
				},
			},
			{
				Owner:        "Jessica Davis",
				PIN:          2222,
				InterestRate: 1.5,
				Currency:     "USD",
				Locale:       "en-US",
				Movements: []MovementConfig{
					{Amount: 5000, Date: "2019-11-01T13:15:33Z"},
					{Amount: 3400, Date: "2019-11-30T09:48:16Z"},
					{Amount: -150, Date: "2019-12-25T06:04:23Z"},
					{Amount: -790, Date: "2020-01-25T14:18:46Z"},
					{Amount: -3210, Date: "2020-02-05T16:33:06Z"},
					{Amount: -1000, Date: "2020-04-10T14:43:26Z"},
					{Amount: 8500, Date: "2020-06-25T18:49:59Z"},
					{Amount: -30, Date: "2020-07-26T12:01:20Z"},
				},
			},
		},
		Server:  ServerConfig{Addr: ":8080"},
		Journal: JournalConfig{Type: "none"},
	}
}
