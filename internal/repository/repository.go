package repository

import (
	"context"
	"fmt"

	"overol-konfigurator-backend/internal/domain"
)

// ColorRepository abstrahiert den Datenzugriff auf den Farbkatalog.
type ColorRepository interface {
	ListColors(ctx context.Context) ([]domain.Color, error)
	ListColorsByFabricType(ctx context.Context, fabricType string) ([]domain.Color, error)
	GetColor(ctx context.Context, id string) (domain.Color, error)
	AddColor(ctx context.Context, color domain.Color) error
	UpdateColor(ctx context.Context, color domain.Color) error
	RemoveColor(ctx context.Context, id string) error
}

// FabricTypeRepository abstrahiert den Datenzugriff auf Stofftypen.
type FabricTypeRepository interface {
	ListFabricTypes(ctx context.Context) ([]domain.FabricType, error)
	EnsureFabricType(ctx context.Context, ft domain.FabricType) error
}

// OrderRepository speichert Bestellungen samt PDF.
type OrderRepository interface {
	SaveOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	GetOrderPDF(ctx context.Context, id string) ([]byte, error)
}

// Store fasst alle Repositories eines Speicher-Backends zusammen.
type Store interface {
	ColorRepository
	FabricTypeRepository
	OrderRepository
	EnsureColor(ctx context.Context, color domain.Color) error
	Close() error
}

// Seed legt fehlende Stofftypen und Farben an; vorhandene Einträge
// bleiben unverändert.
func Seed(ctx context.Context, s Store, fabricTypes []domain.FabricType, colors []domain.Color) error {
	for _, ft := range fabricTypes {
		if err := s.EnsureFabricType(ctx, ft); err != nil {
			return fmt.Errorf("stofftyp %s anlegen: %w", ft.ID, err)
		}
	}
	for _, c := range colors {
		if err := s.EnsureColor(ctx, c); err != nil {
			return fmt.Errorf("farbe %s anlegen: %w", c.ID, err)
		}
	}
	return nil
}
