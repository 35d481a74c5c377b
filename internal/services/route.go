package services

import (
	"strings"

	"github.com/swiftship/courier-backend/internal/models"
)

// reverseMarkers are the substrings in a free-text service identifier that
// select the India-to-UAE lane. Anything else falls back to outbound.
var reverseMarkers = []string{"reverse", "india to uae"}

// DeriveRoute classifies a free-text service identifier into a shipping lane.
func DeriveRoute(service string) models.Route {
	s := strings.ToLower(service)
	for _, marker := range reverseMarkers {
		if strings.Contains(s, marker) {
			return models.RouteReverse
		}
	}
	return models.RouteOutbound
}
