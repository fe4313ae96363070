// Package catalog enthält den festen Zonenschnitt des Overalls sowie die
// Stofftypen und Farben, mit denen ein leerer Speicher befüllt wird.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"overol-konfigurator-backend/internal/domain"
)

//go:embed zones.yaml
var zonesYAML []byte

type layout struct {
	Zones []domain.Zone `yaml:"zones"`
}

// Zones gibt den eingebetteten Zonenschnitt zurück.
func Zones() ([]domain.Zone, error) {
	return ParseZones(zonesYAML)
}

// MustZones ist wie Zones, bricht aber bei einem fehlerhaften Schnitt ab.
func MustZones() []domain.Zone {
	zones, err := Zones()
	if err != nil {
		panic(err)
	}
	return zones
}

// ParseZones liest einen Zonenschnitt im YAML-Format und prüft, dass jede
// Zone eine eindeutige ID und einen Stofftyp hat.
func ParseZones(data []byte) ([]domain.Zone, error) {
	var l layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("zonen lesen: %w", err)
	}
	if len(l.Zones) == 0 {
		return nil, fmt.Errorf("keine zonen definiert: %w", domain.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(l.Zones))
	for i, z := range l.Zones {
		if z.ID == "" || z.FabricType == "" {
			return nil, fmt.Errorf("zone %d ohne id oder stofftyp: %w", i, domain.ErrInvalidInput)
		}
		if _, dup := seen[z.ID]; dup {
			return nil, fmt.Errorf("zone %q doppelt: %w", z.ID, domain.ErrInvalidInput)
		}
		seen[z.ID] = struct{}{}
	}
	return l.Zones, nil
}

// DefaultFabricTypes sind die vier Stofftypen des Standardschnitts.
func DefaultFabricTypes() []domain.FabricType {
	return []domain.FabricType{
		{ID: "tela1", Name: "Tela #1", PatternType: "diagonal"},
		{ID: "tela2", Name: "Tela #2", PatternType: "cross"},
		{ID: "tela3", Name: "Tela #3", PatternType: "cross"},
		{ID: "tela4", Name: "Tela #4", PatternType: "horizontal"},
	}
}

// DefaultColors ist die Farbauswahl je Stofftyp bei Erstinstallation.
func DefaultColors() []domain.Color {
	return []domain.Color{
		{ID: "t1_gray", Name: "Gray", HexValue: "#808080", FabricType: "tela1"},
		{ID: "t1_blue", Name: "Blue", HexValue: "#0066CC", FabricType: "tela1"},
		{ID: "t1_red", Name: "Red", HexValue: "#FF0000", FabricType: "tela1"},
		{ID: "t1_black", Name: "Black", HexValue: "#000000", FabricType: "tela1"},

		{ID: "t2_black", Name: "Black", HexValue: "#000000", FabricType: "tela2"},
		{ID: "t2_gray", Name: "Gray", HexValue: "#808080", FabricType: "tela2"},
		{ID: "t2_blue", Name: "Blue", HexValue: "#0066CC", FabricType: "tela2"},
		{ID: "t2_navy", Name: "Navy", HexValue: "#000080", FabricType: "tela2"},
		{ID: "t2_red", Name: "Red", HexValue: "#FF0000", FabricType: "tela2"},

		{ID: "t3_navy", Name: "Navy", HexValue: "#000080", FabricType: "tela3"},
		{ID: "t3_black", Name: "Black", HexValue: "#000000", FabricType: "tela3"},
		{ID: "t3_gray", Name: "Gray", HexValue: "#808080", FabricType: "tela3"},
		{ID: "t3_blue", Name: "Blue", HexValue: "#0066CC", FabricType: "tela3"},
		{ID: "t3_red", Name: "Red", HexValue: "#FF0000", FabricType: "tela3"},

		{ID: "t4_red", Name: "Red", HexValue: "#FF0000", FabricType: "tela4"},
		{ID: "t4_black", Name: "Black", HexValue: "#000000", FabricType: "tela4"},
		{ID: "t4_blue", Name: "Blue", HexValue: "#0066CC", FabricType: "tela4"},
		{ID: "t4_gray", Name: "Gray", HexValue: "#808080", FabricType: "tela4"},
		{ID: "t4_yellow", Name: "Yellow", HexValue: "#FFFF00", FabricType: "tela4"},
	}
}
