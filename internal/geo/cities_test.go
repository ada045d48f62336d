package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inmobo/inmobo-api/internal/domain/entity"
)

func TestCenterOf(t *testing.T) {
	c, ok := CenterOf("Cochabamba")
	assert.True(t, ok)
	assert.Equal(t, entity.Location{Lat: -17.3895, Lng: -66.1568}, c)

	c, ok = CenterOf("Potosí")
	assert.True(t, ok)
	assert.Equal(t, entity.Location{Lat: -19.5836, Lng: -65.7531}, c)

	_, ok = CenterOf("Buenos Aires")
	assert.False(t, ok)
}

func TestCitiesTable(t *testing.T) {
	assert.Len(t, Cities, 10)
	seen := map[string]bool{}
	for _, c := range Cities {
		assert.False(t, seen[c.Name], c.Name)
		seen[c.Name] = true
		assert.NotZero(t, c.Center.Lat)
		assert.NotZero(t, c.Center.Lng)
	}
}
