package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionSale.Valid())
	assert.True(t, TransactionAntichresis.Valid())
	assert.True(t, TransactionRental.Valid())
	assert.False(t, TransactionType("venta ").Valid())
	assert.False(t, TransactionType("").Valid())
}

func TestPropertyTypeValid(t *testing.T) {
	for _, pt := range []PropertyType{PropertyHouse, PropertyApartment, PropertyLand, PropertyCommercial, PropertyOffice} {
		assert.True(t, pt.Valid(), string(pt))
	}
	assert.False(t, PropertyType("chalet").Valid())
}

func TestCurrencyValid(t *testing.T) {
	assert.True(t, CurrencyUSD.Valid())
	assert.True(t, CurrencyBOB.Valid())
	assert.False(t, Currency("EUR").Valid())
}

func TestMarkerColorPerTransaction(t *testing.T) {
	assert.Equal(t, "#E84118", TransactionSale.MarkerColor())
	assert.Equal(t, "#F59E0B", TransactionAntichresis.MarkerColor())
	assert.Equal(t, "#22C55E", TransactionRental.MarkerColor())
	assert.Equal(t, "#6B7280", TransactionType("").MarkerColor())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "US$ 1.200", FormatPrice(1200, CurrencyUSD))
	assert.Equal(t, "Bs 3.500", FormatPrice(3500, CurrencyBOB))
	assert.Equal(t, "US$ 185.000", FormatPrice(185000, CurrencyUSD))
	assert.Equal(t, "US$ 1.250.000", FormatPrice(1250000, CurrencyUSD))
	assert.Equal(t, "US$ 950", FormatPrice(950, CurrencyUSD))
	assert.Equal(t, "US$ 0", FormatPrice(0, CurrencyUSD))
	// decimals are dropped, not rounded
	assert.Equal(t, "Bs 99", FormatPrice(99.9, CurrencyBOB))
}
