package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
	"overol-konfigurator-backend/internal/selection"
	"overol-konfigurator-backend/internal/session"
)

// SessionView ist der Zustand einer Sitzung, wie ihn der Browser rendert.
type SessionView struct {
	SessionID string `json:"session_id"`
	selection.State
	AvailableColors []domain.Color `json:"available_colors"`
}

// SessionService steuert die Auswahl-Controller der Kundensitzungen.
type SessionService struct {
	store   *session.Store
	catalog *CatalogService
	orders  *OrderService
	logger  *zap.Logger
}

// NewSessionService gibt einen einsatzbereiten SessionService zurück.
func NewSessionService(store *session.Store, catalog *CatalogService, orders *OrderService, logger *zap.Logger) *SessionService {
	return &SessionService{store: store, catalog: catalog, orders: orders, logger: logger}
}

// Create eröffnet eine Sitzung mit leerer Auswahl.
func (s *SessionService) Create(ctx context.Context) (SessionView, error) {
	id, err := s.store.Create()
	if err != nil {
		return SessionView{}, err
	}
	return s.View(ctx, id)
}

// View gibt den aktuellen Zustand der Sitzung zurück.
func (s *SessionService) View(ctx context.Context, id string) (SessionView, error) {
	return s.apply(ctx, id, func(*selection.Controller) error { return nil })
}

// Gesture wendet einen Klick oder Doppelklick auf eine Zone an. Der
// Stofftyp der Zone stammt aus dem Zonenschnitt.
func (s *SessionService) Gesture(ctx context.Context, id, zoneID string, multiSelect bool) (SessionView, error) {
	zone, err := s.catalog.Zone(zoneID)
	if err != nil {
		return SessionView{}, err
	}
	return s.apply(ctx, id, func(c *selection.Controller) error {
		return c.HandleZoneGesture(zone.ID, zone.FabricType, multiSelect)
	})
}

// ApplyColor färbt die vorgemerkten Zonen. Die Farbe muss zum Stofftyp der
// Vormerkung gehören.
func (s *SessionService) ApplyColor(ctx context.Context, id, colorID string) (SessionView, error) {
	color, err := s.catalog.Color(ctx, colorID)
	if errors.Is(err, domain.ErrNotFound) {
		return SessionView{}, fmt.Errorf("unbekannte farbe %q: %w", colorID, domain.ErrInvalidInput)
	}
	if err != nil {
		return SessionView{}, err
	}
	return s.apply(ctx, id, func(c *selection.Controller) error {
		if active := c.ActiveFabricType(); active != "" && active != color.FabricType {
			return fmt.Errorf("farbe %q gehört zu %q, auswahl zu %q: %w",
				color.ID, color.FabricType, active, domain.ErrFabricTypeMismatch)
		}
		c.ApplyColor(color)
		return nil
	})
}

// Reset verwirft die gesamte Auswahl der Sitzung.
func (s *SessionService) Reset(ctx context.Context, id string) (SessionView, error) {
	return s.apply(ctx, id, func(c *selection.Controller) error {
		c.ResetAll()
		return nil
	})
}

// Submit bestellt die eingefärbten Zonen. Die Auswahl wird erst nach
// erfolgreich gespeicherter Bestellung geleert.
func (s *SessionService) Submit(ctx context.Context, id string, customer domain.CustomerInfo) (domain.OrderReceipt, error) {
	var receipt domain.OrderReceipt
	err := s.store.With(id, func(c *selection.Controller) error {
		selections, err := c.SnapshotForSubmission()
		if err != nil {
			return err
		}
		receipt, err = s.orders.Create(ctx, customer, selections)
		if err != nil {
			return err
		}
		c.ResetAll()
		return nil
	})
	if err != nil {
		return domain.OrderReceipt{}, err
	}
	s.logger.Info("sitzung bestellt", zap.String("sitzung", id), zap.String("bestellung", receipt.OrderID))
	return receipt, nil
}

// End schließt die Sitzung.
func (s *SessionService) End(_ context.Context, id string) error {
	return s.store.Delete(id)
}

// apply führt fn auf dem Controller aus und baut danach die Ansicht.
func (s *SessionService) apply(ctx context.Context, id string, fn func(*selection.Controller) error) (SessionView, error) {
	var st selection.State
	err := s.store.With(id, func(c *selection.Controller) error {
		if err := fn(c); err != nil {
			return err
		}
		st = c.State()
		return nil
	})
	if err != nil {
		return SessionView{}, err
	}

	available := []domain.Color{}
	if st.ActiveFabricType != "" {
		colors, err := s.catalog.ColorsByFabricType(ctx, st.ActiveFabricType)
		if err != nil {
			return SessionView{}, fmt.Errorf("farben laden: %w", err)
		}
		available = selection.AvailableColorsFor(st.ActiveFabricType, colors)
	}
	return SessionView{SessionID: id, State: st, AvailableColors: available}, nil
}
