package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"flight-deals-service/internal/domain"
)

type routeSeed struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
	ReturnDate  string `json:"return_date"`
	Passengers  int    `json:"passengers"`
	Cabin       string `json:"cabin"`
	Nonstop     bool   `json:"nonstop"`
}

// LoadRoutes reads the configured routes from a JSON file. Routes are
// validated on load; a run with a bad route file should fail at startup
// rather than skip routes silently. An unrecognized cabin is passed
// through lowercased (the normalizer maps it to economy per provider).
func LoadRoutes(path string) ([]domain.RouteQuery, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load routes: read %q: %w", path, err)
	}

	var seeds []routeSeed
	if err := json.Unmarshal(bytes, &seeds); err != nil {
		return nil, fmt.Errorf("load routes: parse json: %w", err)
	}

	routes := make([]domain.RouteQuery, 0, len(seeds))
	for i, s := range seeds {
		origin := strings.ToUpper(strings.TrimSpace(s.Origin))
		if len(origin) != 3 {
			return nil, fmt.Errorf("load routes: route at index %d: origin %q is not a 3-letter code", i+1, s.Origin)
		}

		dest := strings.ToUpper(strings.TrimSpace(s.Destination))
		if len(dest) != 3 {
			return nil, fmt.Errorf("load routes: route at index %d: destination %q is not a 3-letter code", i+1, s.Destination)
		}

		if _, err := time.Parse("2006-01-02", s.Date); err != nil {
			return nil, fmt.Errorf("load routes: route at index %d: date %q: %w", i+1, s.Date, err)
		}

		ret := strings.TrimSpace(s.ReturnDate)
		if ret != "" {
			if _, err := time.Parse("2006-01-02", ret); err != nil {
				return nil, fmt.Errorf("load routes: route at index %d: return date %q: %w", i+1, ret, err)
			}
		}

		passengers := s.Passengers
		if passengers == 0 {
			passengers = 1
		}
		if passengers < 1 {
			return nil, fmt.Errorf("load routes: route at index %d: invalid passenger count %d", i+1, s.Passengers)
		}

		routes = append(routes, domain.RouteQuery{
			Origin:      origin,
			Destination: dest,
			Date:        s.Date,
			ReturnDate:  ret,
			Passengers:  passengers,
			Cabin:       domain.Cabin(strings.ToLower(strings.TrimSpace(s.Cabin))),
			Nonstop:     s.Nonstop,
		})
	}

	if len(routes) == 0 {
		return nil, fmt.Errorf("load routes: %q contains no routes", path)
	}

	return routes, nil
}
