package entity

import (
	"strconv"
	"time"
)

// TransactionType classifies how a listing is offered. The three values are
// mutually exclusive and reflect the Bolivian market (anticrético is a
// leasehold-deposit arrangement).
type TransactionType string

const (
	TransactionSale        TransactionType = "venta"
	TransactionAntichresis TransactionType = "anticrético"
	TransactionRental      TransactionType = "alquiler"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionSale, TransactionAntichresis, TransactionRental:
		return true
	}
	return false
}

// MarkerColor returns the map marker color associated with the transaction type.
func (t TransactionType) MarkerColor() string {
	switch t {
	case TransactionSale:
		return "#E84118"
	case TransactionAntichresis:
		return "#F59E0B"
	case TransactionRental:
		return "#22C55E"
	}
	return "#6B7280"
}

type PropertyType string

const (
	PropertyHouse      PropertyType = "casa"
	PropertyApartment  PropertyType = "departamento"
	PropertyLand       PropertyType = "terreno"
	PropertyCommercial PropertyType = "local"
	PropertyOffice     PropertyType = "oficina"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertyHouse, PropertyApartment, PropertyLand, PropertyCommercial, PropertyOffice:
		return true
	}
	return false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyBOB Currency = "BOB"
)

func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyBOB
}

// Location is a WGS84 point.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Property is the aggregate root for a listing. Images hold object-storage
// URLs in upload order. A property always has a single owning user.
type Property struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Address          string          `json:"address"`
	City             string          `json:"city"`
	Price            float64         `json:"price"`
	Currency         Currency        `json:"currency"`
	TransactionType  TransactionType `json:"transactionType"`
	PropertyType     PropertyType    `json:"propertyType"`
	LandSize         float64         `json:"landSize"`
	ConstructionSize float64         `json:"constructionSize,omitempty"`
	Bedrooms         int             `json:"bedrooms,omitempty"`
	Bathrooms        int             `json:"bathrooms,omitempty"`
	ParkingSpots     int             `json:"parkingSpots,omitempty"`
	Features         []string        `json:"features"`
	Images           []string        `json:"images"`
	Location         Location        `json:"location"`
	OwnerID          string          `json:"ownerId"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// FormatPrice renders an amount the way listings display it locally:
// no decimals, dot-grouped thousands, currency prefix ("US$ 1.200", "Bs 1.200").
func FormatPrice(amount float64, cur Currency) string {
	n := int64(amount)
	s := strconv.FormatInt(n, 10)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	prefix := "US$ "
	if cur == CurrencyBOB {
		prefix = "Bs "
	}
	if neg {
		return "-" + prefix + string(out)
	}
	return prefix + string(out)
}
