package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func sampleProps() []Property {
	return []Property{
		{ID: "a", City: "Cochabamba", Price: 100000, TransactionType: TransactionSale, PropertyType: PropertyHouse},
		{ID: "b", City: "La Paz", Price: 3500, TransactionType: TransactionRental, PropertyType: PropertyApartment},
		{ID: "c", City: "Cochabamba", Price: 25000, TransactionType: TransactionAntichresis, PropertyType: PropertyCommercial},
		{ID: "d", City: "Santa Cruz", Price: 120000, TransactionType: TransactionSale, PropertyType: PropertyApartment},
	}
}

func ids(props []Property) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.ID
	}
	return out
}

func TestFilterEmptyReturnsEverything(t *testing.T) {
	props := sampleProps()
	got := ApplyFilter(props, Filter{})
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
}

func TestFilterByTransactionType(t *testing.T) {
	got := ApplyFilter(sampleProps(), Filter{TransactionType: ptr(TransactionSale)})
	assert.Equal(t, []string{"a", "d"}, ids(got))
}

func TestFilterByCity(t *testing.T) {
	got := ApplyFilter(sampleProps(), Filter{City: ptr("Cochabamba")})
	assert.Equal(t, []string{"a", "c"}, ids(got))
}

func TestFilterByPriceRange(t *testing.T) {
	got := ApplyFilter(sampleProps(), Filter{MinPrice: ptr(20000.0), MaxPrice: ptr(110000.0)})
	assert.Equal(t, []string{"a", "c"}, ids(got))

	// boundaries are inclusive
	got = ApplyFilter(sampleProps(), Filter{MinPrice: ptr(3500.0), MaxPrice: ptr(3500.0)})
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestFilterPredicatesCombineWithAnd(t *testing.T) {
	got := ApplyFilter(sampleProps(), Filter{
		TransactionType: ptr(TransactionSale),
		PropertyType:    ptr(PropertyApartment),
	})
	assert.Equal(t, []string{"d"}, ids(got))

	got = ApplyFilter(sampleProps(), Filter{
		City:            ptr("La Paz"),
		TransactionType: ptr(TransactionSale),
	})
	assert.Empty(t, got)
}

func TestFilterPreservesOrder(t *testing.T) {
	got := ApplyFilter(sampleProps(), Filter{PropertyType: ptr(PropertyApartment)})
	assert.Equal(t, []string{"b", "d"}, ids(got))
}

func TestFilterEmptyDetection(t *testing.T) {
	assert.True(t, Filter{}.Empty())
	assert.False(t, Filter{City: ptr("Sucre")}.Empty())
	assert.False(t, Filter{MinPrice: ptr(0.0)}.Empty())
}
