package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
	"overol-konfigurator-backend/internal/repository"
)

// CatalogService liefert Zonen, Stofftypen und Farben.
type CatalogService struct {
	zones   []domain.Zone
	byID    map[string]domain.Zone
	colors  repository.ColorRepository
	fabrics repository.FabricTypeRepository
	logger  *zap.Logger
}

// NewCatalogService gibt einen einsatzbereiten CatalogService zurück.
func NewCatalogService(zones []domain.Zone, colors repository.ColorRepository,
	fabrics repository.FabricTypeRepository, logger *zap.Logger) *CatalogService {
	byID := make(map[string]domain.Zone, len(zones))
	for _, z := range zones {
		byID[z.ID] = z
	}
	return &CatalogService{zones: zones, byID: byID, colors: colors, fabrics: fabrics, logger: logger}
}

// Zones gibt den festen Zonenschnitt zurück.
func (s *CatalogService) Zones() []domain.Zone {
	out := make([]domain.Zone, len(s.zones))
	copy(out, s.zones)
	return out
}

// Zone sucht eine Zone anhand ihrer ID.
func (s *CatalogService) Zone(id string) (domain.Zone, error) {
	z, ok := s.byID[id]
	if !ok {
		return domain.Zone{}, fmt.Errorf("unbekannte zone %q: %w", id, domain.ErrInvalidInput)
	}
	return z, nil
}

// FabricTypes gibt alle Stofftypen zurück.
func (s *CatalogService) FabricTypes(ctx context.Context) ([]domain.FabricType, error) {
	return s.fabrics.ListFabricTypes(ctx)
}

// Colors gibt den gesamten Farbkatalog zurück.
func (s *CatalogService) Colors(ctx context.Context) ([]domain.Color, error) {
	return s.colors.ListColors(ctx)
}

// ColorsByFabricType gibt die Farben eines Stofftyps zurück; ein unbekannter
// Stofftyp ergibt eine leere Liste.
func (s *CatalogService) ColorsByFabricType(ctx context.Context, fabricType string) ([]domain.Color, error) {
	return s.colors.ListColorsByFabricType(ctx, strings.TrimSpace(fabricType))
}

// Color sucht eine Farbe anhand ihrer ID.
func (s *CatalogService) Color(ctx context.Context, id string) (domain.Color, error) {
	return s.colors.GetColor(ctx, id)
}
