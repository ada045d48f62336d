package geo

import "github.com/inmobo/inmobo-api/internal/domain/entity"

// City is a reference point the map recenters on.
type City struct {
	Name   string          `json:"name"`
	Center entity.Location `json:"center"`
}

// Cities is the fixed table of supported Bolivian cities, in display order.
var Cities = []City{
	{Name: "La Paz", Center: entity.Location{Lat: -16.5000, Lng: -68.1500}},
	{Name: "El Alto", Center: entity.Location{Lat: -16.5000, Lng: -68.2000}},
	{Name: "Cochabamba", Center: entity.Location{Lat: -17.3895, Lng: -66.1568}},
	{Name: "Santa Cruz", Center: entity.Location{Lat: -17.7833, Lng: -63.1821}},
	{Name: "Sucre", Center: entity.Location{Lat: -19.0333, Lng: -65.2627}},
	{Name: "Oruro", Center: entity.Location{Lat: -17.9833, Lng: -67.1500}},
	{Name: "Potosí", Center: entity.Location{Lat: -19.5836, Lng: -65.7531}},
	{Name: "Tarija", Center: entity.Location{Lat: -21.5355, Lng: -64.7296}},
	{Name: "Trinidad", Center: entity.Location{Lat: -14.8333, Lng: -64.9000}},
	{Name: "Cobija", Center: entity.Location{Lat: -11.0333, Lng: -68.7667}},
}

// CenterOf looks up a city's reference point by name.
func CenterOf(name string) (entity.Location, bool) {
	for _, c := range Cities {
		if c.Name == name {
			return c.Center, true
		}
	}
	return entity.Location{}, false
}

// DefaultCenter is used when no city is selected (Cochabamba, roughly the
// middle of the country).
var DefaultCenter = entity.Location{Lat: -17.3895, Lng: -66.1568}
