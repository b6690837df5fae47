package schedule

import (
	"strings"
	"time"
)

// Service is one bookable item on the salon menu.
type Service struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration"`
	Price           int    `json:"price"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Catalog is the authoritative name → duration table. Durations sent by
// clients are never trusted over it.
type Catalog struct {
	services []Service
	byName   map[string]Service
}

func NewCatalog(services ...Service) *Catalog {
	c := &Catalog{byName: make(map[string]Service, len(services))}
	for _, s := range services {
		c.services = append(c.services, s)
		c.byName[s.Name] = s
	}
	return c
}

// DefaultCatalog is the salon's published menu.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Service{Name: "Classic Haircut", DurationMinutes: 30, Price: 70},
		Service{Name: "Beard Trim", DurationMinutes: 20, Price: 50},
		Service{Name: "Hot Towel Shave", DurationMinutes: 30, Price: 60},
		Service{Name: "Hair & Beard Combo", DurationMinutes: 60, Price: 120},
	)
}

func (c *Catalog) Lookup(name string) (Service, bool) {
	s, ok := c.byName[strings.TrimSpace(name)]
	return s, ok
}

// All returns the services in menu order.
func (c *Catalog) All() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// MaxDuration is the longest service on the menu.
func (c *Catalog) MaxDuration() time.Duration {
	var longest time.Duration
	for _, s := range c.services {
		if d := s.Duration(); d > longest {
			longest = d
		}
	}
	return longest
}
