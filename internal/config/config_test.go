package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFees(t *testing.T) {
	fees := DefaultFees()

	assert.Equal(t, "0.08", fees.TaxRate.String())
	assert.Equal(t, "0.15", fees.CommissionRate.String())
	assert.Equal(t, "0.15", fees.DeliveryPlatformRate.String())
	assert.Equal(t, "3.99", fees.DeliveryFee.StringFixed(2))
	assert.Equal(t, "2.99", fees.ServiceFee.StringFixed(2))
}

func TestLoadFeeOverrides(t *testing.T) {
	t.Setenv("TAX_RATE", "0.10")
	t.Setenv("DELIVERY_FEE", "4.50")

	fees, err := loadFees()
	require.NoError(t, err)

	assert.Equal(t, "0.1", fees.TaxRate.String())
	assert.Equal(t, "4.50", fees.DeliveryFee.StringFixed(2))
	assert.Equal(t, "2.99", fees.ServiceFee.StringFixed(2))
}

func TestLoadFeeOverrides_Invalid(t *testing.T) {
	t.Setenv("COMMISSION_RATE", "fifteen percent")

	_, err := loadFees()
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", Name: "orders", User: "app", Password: "pw",
	}}
	assert.Equal(t, "host=db port=5432 user=app password=pw dbname=orders sslmode=disable", cfg.DSN())
}
