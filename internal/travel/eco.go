package travel

import (
	"fmt"
	"strings"

	"github.com/nadzzz/globemate/internal/message"
)

// flightEmissionFactor is kg CO2 per passenger-km.
const flightEmissionFactor = 0.115

var ecoHotels = map[string][]string{
	"karachi": {"Hotel One 🌱", "Pearl Eco Inn"},
	"dubai":   {"Green Oasis Hotel", "EcoPalm Resort"},
	"london":  {"The Zetter Eco Hotel", "Green Stay Inn"},
}

// CarbonFootprint estimates flight emissions for a trip.
func CarbonFootprint(distanceKm, passengers float64) string {
	emissions := round2(distanceKm * passengers * flightEmissionFactor)
	return fmt.Sprintf("✈️ Estimated Carbon Footprint: %s kg CO2", formatNumber(emissions))
}

// EcoHotels lists eco-friendly hotels in a city, one per line.
func EcoHotels(city string) string {
	if hotels, ok := ecoHotels[normalizeKey(city)]; ok {
		return strings.Join(hotels, "\n")
	}
	return message.Warning("No eco-hotels found, try another city.")
}
