package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmergencyNumber(t *testing.T) {
	assert.Equal(t, "911", EmergencyNumber("USA"))
	assert.Equal(t, "Rescue 1122 / Police 15", EmergencyNumber(" pakistan "))
	assert.Equal(t, "⚠️ Not available, please check locally.", EmergencyNumber("Atlantis"))
}

func TestScamCheck(t *testing.T) {
	tests := []struct {
		text string
		scam bool
	}{
		{"You won the LOTTERY, claim now", true},
		{"Please send money to this account", true},
		{"A Nigerian prince needs your help", true},
		{"Your train leaves at 9", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ScamCheck(tt.text)
			if tt.scam {
				assert.Equal(t, "⚠️ Potential Scam Detected!", got)
			} else {
				assert.Equal(t, "✅ Message seems safe.", got)
			}
		})
	}
}

func TestPassportHelp(t *testing.T) {
	assert.Equal(t,
		"If you lost your passport in Italy, visit your embassy immediately and file a police report.",
		PassportHelp("Italy"))
}

func TestCarbonFootprint(t *testing.T) {
	assert.Equal(t, "✈️ Estimated Carbon Footprint: 115.0 kg CO2", CarbonFootprint(1000, 1))
	assert.Equal(t, "✈️ Estimated Carbon Footprint: 345.0 kg CO2", CarbonFootprint(1000, 3))
	assert.Equal(t, "✈️ Estimated Carbon Footprint: 0.58 kg CO2", CarbonFootprint(5, 1))
}

func TestEcoHotels(t *testing.T) {
	assert.Equal(t, "Green Oasis Hotel\nEcoPalm Resort", EcoHotels("Dubai"))
	assert.Equal(t, "The Zetter Eco Hotel\nGreen Stay Inn", EcoHotels("london"))
	assert.Equal(t, "⚠️ No eco-hotels found, try another city.", EcoHotels("Oslo"))
}
