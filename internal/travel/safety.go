package travel

import (
	"fmt"
	"strings"

	"github.com/nadzzz/globemate/internal/message"
)

var emergencyNumbers = map[string]string{
	"pakistan": "Rescue 1122 / Police 15",
	"india":    "112 (All emergencies)",
	"usa":      "911",
	"uk":       "999",
	"uae":      "999 (Police), 998 (Ambulance)",
}

// scamKeywords are matched against the lower-cased message.
var scamKeywords = []string{"lottery", "prize", "send money", "urgent transfer", "nigerian prince"}

// EmergencyNumber returns the emergency contacts for a country.
func EmergencyNumber(country string) string {
	if n, ok := emergencyNumbers[normalizeKey(country)]; ok {
		return n
	}
	return message.Warning("Not available, please check locally.")
}

// ScamCheck flags messages containing common scam phrases.
func ScamCheck(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range scamKeywords {
		if strings.Contains(lower, kw) {
			return message.Warning("Potential Scam Detected!")
		}
	}
	return "✅ Message seems safe."
}

// PassportHelp returns the steps to take after losing a passport.
func PassportHelp(country string) string {
	return fmt.Sprintf("If you lost your passport in %s, visit your embassy immediately and file a police report.", strings.TrimSpace(country))
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
