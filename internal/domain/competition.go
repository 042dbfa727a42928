package domain

import (
	"sort"

	"github.com/pmi-competition/portal-api/internal/scoring"
)

// Event is one competition category a school can register teams for.
type Event struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Fee         int64          `json:"fee"`
	MinMembers  int            `json:"minMembers"`
	MaxMembers  int            `json:"maxMembers"`
	Scheme      scoring.Scheme `json:"scoringScheme"`
}

func (e Event) AllowsMembers(n int) bool {
	return n >= e.MinMembers && n <= e.MaxMembers
}

type Catalog struct {
	events []Event
	byID   map[string]Event
}

func NewCatalog(events []Event) *Catalog {
	c := &Catalog{
		events: make([]Event, len(events)),
		byID:   make(map[string]Event, len(events)),
	}
	copy(c.events, events)
	for _, e := range events {
		c.byID[e.ID] = e
	}

	return c
}

func (c *Catalog) Event(id string) (Event, bool) {
	e, ok := c.byID[id]
	return e, ok
}

func (c *Catalog) Events() []Event {
	events := make([]Event, len(c.events))
	copy(events, c.events)

	return events
}

// EventIDs returns the known event IDs in lexical order.
func (c *Catalog) EventIDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
