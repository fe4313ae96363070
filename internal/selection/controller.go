// Package selection enthält den Auswahl-Automaten des Konfigurators: welche
// Zonen zum Einfärben vorgemerkt sind, welcher Stofftyp die Vormerkung
// einschränkt und welche Zonen bereits eine Farbe tragen.
//
// Ein Controller gehört genau einer Kundensitzung und ist nicht
// nebenläufigkeitssicher; der Aufrufer serialisiert die Gesten.
package selection

import (
	"fmt"

	"overol-konfigurator-backend/internal/domain"
)

// Controller hält den veränderlichen Auswahlzustand einer Sitzung.
//
// Invarianten nach jedem Übergang:
//   - pending nicht leer ⇔ active gesetzt, alle vorgemerkten Zonen haben Stofftyp active
//   - keine Zone ist gleichzeitig vorgemerkt und eingefärbt
//   - jede Zuordnung trägt den Stofftyp ihrer Zone
type Controller struct {
	zones  []domain.Zone
	byID   map[string]domain.Zone
	order  map[string]int
	active string

	pending     map[string]struct{}
	assignments map[string]domain.Assignment
}

// State ist eine Momentaufnahme des Auswahlzustands zum Rendern.
type State struct {
	PendingAreas     []string                     `json:"pending_areas"`
	ActiveFabricType string                       `json:"active_fabric_type"`
	Assignments      map[string]domain.Assignment `json:"assignments"`
}

// New erstellt einen leeren Controller über dem festen Zonenkatalog.
func New(zones []domain.Zone) *Controller {
	c := &Controller{
		zones:       append([]domain.Zone(nil), zones...),
		byID:        make(map[string]domain.Zone, len(zones)),
		order:       make(map[string]int, len(zones)),
		pending:     make(map[string]struct{}),
		assignments: make(map[string]domain.Assignment),
	}
	for i, z := range c.zones {
		c.byID[z.ID] = z
		c.order[z.ID] = i
	}
	return c
}

// HandleZoneGesture wendet einen Klick (multiSelect=false) oder einen
// Doppelklick (multiSelect=true) auf eine Zone an.
func (c *Controller) HandleZoneGesture(zoneID, fabricType string, multiSelect bool) error {
	zone, ok := c.byID[zoneID]
	if !ok {
		return fmt.Errorf("unbekannte zone %q: %w", zoneID, domain.ErrInvalidInput)
	}
	if zone.FabricType != fabricType {
		return fmt.Errorf("zone %q hat stofftyp %q, nicht %q: %w",
			zoneID, zone.FabricType, fabricType, domain.ErrInvalidInput)
	}

	if multiSelect {
		// Bereits eingefärbte Zonen des Stofftyps werden wieder vorgemerkt
		// und verlieren dabei ihre Farbe, da keine Zone zugleich vorgemerkt
		// und eingefärbt sein darf.
		c.pending = make(map[string]struct{})
		for _, z := range c.zones {
			if z.FabricType == fabricType {
				c.pending[z.ID] = struct{}{}
				delete(c.assignments, z.ID)
			}
		}
		c.active = fabricType
		return nil
	}

	_, isPending := c.pending[zoneID]
	_, isAssigned := c.assignments[zoneID]

	switch {
	case isPending && !isAssigned:
		delete(c.pending, zoneID)
		if len(c.pending) == 0 {
			c.active = ""
		}
	case isAssigned:
		delete(c.assignments, zoneID)
	case len(c.pending) == 0:
		c.pending[zoneID] = struct{}{}
		c.active = fabricType
	case c.active == fabricType:
		c.pending[zoneID] = struct{}{}
	default:
		return fmt.Errorf("zone %q (%s) zu auswahl mit %s: %w",
			zoneID, fabricType, c.active, domain.ErrFabricTypeMismatch)
	}
	return nil
}

// ApplyColor färbt alle vorgemerkten Zonen ein und leert die Vormerkung.
// Ohne vorgemerkte Zonen passiert nichts.
func (c *Controller) ApplyColor(color domain.Color) {
	if len(c.pending) == 0 {
		return
	}
	for id := range c.pending {
		c.assignments[id] = domain.Assignment{
			ColorID:    color.ID,
			ColorHex:   color.HexValue,
			FabricType: c.active,
		}
	}
	c.pending = make(map[string]struct{})
	c.active = ""
}

// ResetAll verwirft Vormerkung und alle Zuordnungen.
func (c *Controller) ResetAll() {
	c.pending = make(map[string]struct{})
	c.assignments = make(map[string]domain.Assignment)
	c.active = ""
}

// ActiveFabricType gibt den Stofftyp der aktuellen Vormerkung zurück ("" wenn keine).
func (c *Controller) ActiveFabricType() string {
	return c.active
}

// SnapshotForSubmission liefert eine Bestellzeile pro eingefärbter Zone in
// Katalogreihenfolge.
func (c *Controller) SnapshotForSubmission() ([]domain.Selection, error) {
	if len(c.assignments) == 0 {
		return nil, domain.ErrEmptySelection
	}
	out := make([]domain.Selection, 0, len(c.assignments))
	for _, z := range c.zones {
		a, ok := c.assignments[z.ID]
		if !ok {
			continue
		}
		out = append(out, domain.Selection{
			AreaID:     z.ID,
			FabricType: a.FabricType,
			ColorID:    a.ColorID,
			ColorHex:   a.ColorHex,
		})
	}
	return out, nil
}

// State gibt eine Kopie des Zustands zurück; vorgemerkte Zonen in Katalogreihenfolge.
func (c *Controller) State() State {
	s := State{
		PendingAreas:     make([]string, 0, len(c.pending)),
		ActiveFabricType: c.active,
		Assignments:      make(map[string]domain.Assignment, len(c.assignments)),
	}
	for _, z := range c.zones {
		if _, ok := c.pending[z.ID]; ok {
			s.PendingAreas = append(s.PendingAreas, z.ID)
		}
	}
	for id, a := range c.assignments {
		s.Assignments[id] = a
	}
	return s
}

// AvailableColorsFor filtert den Farbkatalog auf einen Stofftyp.
func AvailableColorsFor(fabricType string, catalog []domain.Color) []domain.Color {
	out := make([]domain.Color, 0)
	if fabricType == "" {
		return out
	}
	for _, col := range catalog {
		if col.FabricType == fabricType {
			out = append(out, col)
		}
	}
	return out
}
