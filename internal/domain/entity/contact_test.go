package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContactLinks(t *testing.T) {
	links := BuildContactLinks("+591 712-34567", "Casa en Cala Cala")

	assert.Equal(t, "+591 712-34567", links.Phone)
	assert.Equal(t, "tel:+59171234567", links.CallURL)
	assert.Contains(t, links.WhatsAppURL, "https://wa.me/59171234567?text=")
	assert.Contains(t, links.WhatsAppURL, "Hola%2C+vi+tu+anuncio")
}

func TestBuildContactLinksNoPhone(t *testing.T) {
	assert.Equal(t, ContactLinks{}, BuildContactLinks("", "Casa"))
	assert.Equal(t, ContactLinks{}, BuildContactLinks("sin teléfono", "Casa"))
}
