package entity

import (
	"net/url"
	"strings"
)

// ContactLinks are the outbound contact actions for a listing's owner.
type ContactLinks struct {
	Phone       string `json:"phone"`
	CallURL     string `json:"callUrl"`
	WhatsAppURL string `json:"whatsappUrl"`
}

// BuildContactLinks constructs a phone-call link and a message-prefilled
// WhatsApp link from the owner's stored phone number. Returns the zero value
// when the owner has no phone on file.
func BuildContactLinks(phone, title string) ContactLinks {
	digits := phoneDigits(phone)
	if digits == "" {
		return ContactLinks{}
	}
	msg := "Hola, vi tu anuncio \"" + title + "\" y me interesa."
	return ContactLinks{
		Phone:       phone,
		CallURL:     "tel:+" + digits,
		WhatsAppURL: "https://wa.me/" + digits + "?text=" + url.QueryEscape(msg),
	}
}

func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
