package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/inmobo/inmobo-api/config"
	"github.com/inmobo/inmobo-api/pkg/helpers"
)

type seedListing struct {
	title    string
	desc     string
	address  string
	city     string
	price    float64
	currency string
	tx       string
	ptype    string
	land     float64
	constr   float64
	beds     int
	baths    int
	parking  int
	lat      float64
	lng      float64
}

var listings = []seedListing{
	{
		title: "Casa en Cala Cala con jardín", desc: "Amplia casa de dos plantas con jardín y churrasquera.",
		address: "Av. América Este 1234", city: "Cochabamba",
		price: 185000, currency: "USD", tx: "venta", ptype: "casa",
		land: 420, constr: 280, beds: 4, baths: 3, parking: 2,
		lat: -17.3712, lng: -66.1533,
	},
	{
		title: "Departamento en Equipetrol", desc: "Departamento moderno de 3 dormitorios, piso 8, con piscina en el edificio.",
		address: "Calle 7 Este 45", city: "Santa Cruz",
		price: 120000, currency: "USD", tx: "venta", ptype: "departamento",
		land: 0, constr: 140, beds: 3, baths: 2, parking: 1,
		lat: -17.7675, lng: -63.1953,
	},
	{
		title: "Terreno en Achumani", desc: "Terreno plano con muro perimetral, listo para construir.",
		address: "Calle 30 de Achumani", city: "La Paz",
		price: 95000, currency: "USD", tx: "venta", ptype: "terreno",
		land: 600, constr: 0, beds: 0, baths: 0, parking: 0,
		lat: -16.5401, lng: -68.0760,
	},
	{
		title: "Departamento en alquiler, Sopocachi", desc: "Departamento amoblado de 2 dormitorios, cerca del Montículo.",
		address: "Av. Ecuador 2145", city: "La Paz",
		price: 3500, currency: "BOB", tx: "alquiler", ptype: "departamento",
		land: 0, constr: 85, beds: 2, baths: 1, parking: 0,
		lat: -16.5086, lng: -68.1278,
	},
	{
		title: "Local comercial en anticrético", desc: "Local sobre avenida principal, ideal para tienda u oficina.",
		address: "Av. 6 de Agosto 789", city: "Cochabamba",
		price: 25000, currency: "USD", tx: "anticrético", ptype: "local",
		land: 0, constr: 60, beds: 0, baths: 1, parking: 0,
		lat: -17.4009, lng: -66.1620,
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@inmobo.bo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var ownerID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, "Usuario Demo", "+59171234567").Scan(&ownerID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", ownerID, email, password)

	for _, l := range listings {
		var id string
		err := db.QueryRow(`
			INSERT INTO properties (
				id, title, description, address, city, price, currency,
				transaction_type, property_type, land_size, construction_size,
				bedrooms, bathrooms, parking_spots, features, images,
				lat, lng, owner_id, created_at, updated_at
			) VALUES (
				gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, '{}', '{}', $14, $15, $16, now(), now()
			)
			RETURNING id
		`, l.title, l.desc, l.address, l.city, l.price, l.currency,
			l.tx, l.ptype, l.land, l.constr,
			l.beds, l.baths, l.parking, l.lat, l.lng, ownerID).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed listing %q: %v", l.title, err)
		}
		fmt.Printf("seeded listing: id=%s title=%q city=%s\n", id, l.title, l.city)
	}
}
