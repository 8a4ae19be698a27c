package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Accounts, 2)
}

func TestValidateRejectsUsernameCollision(t *testing.T) {
	t.Parallel()

	cfg := Default()
	// "Jeremy Smith" also derives "js", colliding with Jonas Schmedtmann.
	cfg.Accounts = append(cfg.Accounts, AccountConfig{
		Owner:        "Jeremy Smith",
		PIN:          3333,
		InterestRate: 1.0,
		Currency:     "USD",
		Locale:       "en-US",
	})

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"js"`)
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "no_accounts", mutate: func(c *Config) { c.Accounts = nil }},
		{name: "missing_owner", mutate: func(c *Config) { c.Accounts[0].Owner = "" }},
		{name: "bad_pin", mutate: func(c *Config) { c.Accounts[0].PIN = 0 }},
		{name: "negative_rate", mutate: func(c *Config) { c.Accounts[0].InterestRate = -1 }},
		{name: "missing_currency", mutate: func(c *Config) { c.Accounts[0].Currency = "" }},
		{name: "missing_locale", mutate: func(c *Config) { c.Accounts[0].Locale = "" }},
		{name: "bad_movement_date", mutate: func(c *Config) { c.Accounts[0].Movements[0].Date = "yesterday" }},
		{name: "unknown_journal_type", mutate: func(c *Config) { c.Journal.Type = "postgres" }},
		{name: "csv_without_file", mutate: func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{name: "sqlite_without_path", mutate: func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bankist.yaml")
	data := `
accounts:
  - owner: Jonas Schmedtmann
    pin: 1111
    interest_rate: 1.2
    currency: EUR
    locale: pt-PT
    movements:
      - amount: 200
        date: 2019-11-18T21:31:17Z
      - amount: -306.5
        date: 2020-01-28T09:15:04Z
server:
  addr: ":9090"
journal:
  type: none
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	require.Len(t, cfg.Accounts, 1)
	assert.Equal(t, 1111, cfg.Accounts[0].PIN)
	assert.Len(t, cfg.Accounts[0].Movements, 2)
}

func TestLoadFromFileJSONFallback(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bankist.json")
	data := `{
  "accounts": [
    {"owner": "Jessica Davis", "pin": 2222, "interest_rate": 1.5, "currency": "USD", "locale": "en-US"}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Jessica Davis", cfg.Accounts[0].Owner)
}

func TestLoadFromFileInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts: []"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	store, err := Default().Build()
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	a, ok := store.FindByUsername("js")
	require.True(t, ok)
	assert.Len(t, a.Movements, 8)
	assert.Len(t, a.MovementDates, 8)
	assert.Equal(t, "EUR", a.Currency)

	_, ok = store.FindByUsername("jd")
	assert.True(t, ok)
}
