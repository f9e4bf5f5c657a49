package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := FromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "invoicely-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "INV", cfg.Numbering.InvoicePrefix)
	assert.Equal(t, "REC", cfg.Numbering.ReceiptPrefix)
	assert.Equal(t, 48, cfg.Export.ThermalCharWidth)
	assert.Equal(t, time.Hour, cfg.Seed.Interval)
	assert.Equal(t, 5*time.Second, cfg.Seed.RetryDelay)
	assert.Equal(t, 3, cfg.Seed.MaxRetries)
	assert.Equal(t, 15, cfg.Seed.Products)
	assert.Equal(t, 12, cfg.Seed.Invoices)
	assert.Equal(t, 15, cfg.Seed.Receipts)
}

func TestFromViperValidation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]interface{}
	}{
		{"unknown driver", map[string]interface{}{"DB_DRIVER": "mysql"}},
		{"empty prefix", map[string]interface{}{"INVOICE_PREFIX": " "}},
		{"same prefix", map[string]interface{}{"INVOICE_PREFIX": "DOC", "RECEIPT_PREFIX": "DOC"}},
		{"zero rate limit", map[string]interface{}{"RATE_LIMIT_REQUESTS": 0}},
		{"narrow slip", map[string]interface{}{"THERMAL_CHAR_WIDTH": 8}},
		{"zero interval", map[string]interface{}{"SEED_INTERVAL": "0s"}},
		{"no retries", map[string]interface{}{"SEED_MAX_RETRIES": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromViper(newViper(tt.overrides))
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", db.DSN())

	assert.Equal(t, "file::memory:?cache=shared&_pragma=foreign_keys(1)", (&DatabaseConfig{Path: ":memory:"}).SQLiteDSN())
	assert.Equal(t, "data.db?_pragma=foreign_keys(1)", (&DatabaseConfig{Path: "data.db"}).SQLiteDSN())
	assert.Equal(t, "file:data.db?mode=rwc&_pragma=foreign_keys(1)", (&DatabaseConfig{Path: "file:data.db?mode=rwc"}).SQLiteDSN())
}
