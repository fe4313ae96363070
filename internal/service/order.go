package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
	"overol-konfigurator-backend/internal/repository"
)

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DocumentRenderer setzt eine Bestellung als PDF.
type DocumentRenderer interface {
	Render(order domain.Order, fabricTypes []domain.FabricType) ([]byte, error)
}

// OrderService nimmt Bestellungen an und liefert deren PDF aus.
type OrderService struct {
	catalog  *CatalogService
	orders   repository.OrderRepository
	renderer DocumentRenderer
	now      func() time.Time
	logger   *zap.Logger
}

// NewOrderService gibt einen einsatzbereiten OrderService zurück.
func NewOrderService(catalog *CatalogService, orders repository.OrderRepository,
	renderer DocumentRenderer, logger *zap.Logger) *OrderService {
	return &OrderService{
		catalog:  catalog,
		orders:   orders,
		renderer: renderer,
		now:      time.Now,
		logger:   logger,
	}
}

// Create prüft Kundendaten und Auswahl, erzeugt das PDF und speichert die
// Bestellung. Schlägt ein Schritt fehl, wird nichts gespeichert.
func (s *OrderService) Create(ctx context.Context, customer domain.CustomerInfo, selections []domain.Selection) (domain.OrderReceipt, error) {
	now := s.now()
	customer, err := normalizeCustomer(customer, now)
	if err != nil {
		return domain.OrderReceipt{}, err
	}
	if err := s.validateSelections(ctx, selections); err != nil {
		return domain.OrderReceipt{}, err
	}

	fabricTypes, err := s.catalog.FabricTypes(ctx)
	if err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("stofftypen laden: %w", err)
	}

	order := domain.Order{
		ID:           uuid.NewString(),
		CustomerInfo: customer,
		Selections:   append([]domain.Selection(nil), selections...),
		CreatedAt:    now,
	}
	order.PDF, err = s.renderer.Render(order, fabricTypes)
	if err != nil {
		s.logger.Error("pdf konnte nicht erzeugt werden", zap.String("bestellung", order.ID), zap.Error(err))
		return domain.OrderReceipt{}, fmt.Errorf("pdf erzeugen: %w", err)
	}

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return domain.OrderReceipt{}, fmt.Errorf("bestellung speichern: %w", err)
	}

	s.logger.Info("bestellung angelegt",
		zap.String("bestellung", order.ID),
		zap.Int("zonen", len(order.Selections)),
		zap.Int("pdf_bytes", len(order.PDF)),
	)
	return domain.OrderReceipt{OrderID: order.ID, PDFReady: true}, nil
}

// Get lädt eine Bestellung ohne PDF.
func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, fmt.Errorf("bestell-id fehlt: %w", domain.ErrInvalidInput)
	}
	return s.orders.GetOrder(ctx, id)
}

// PDF gibt das Dokument einer Bestellung zurück.
func (s *OrderService) PDF(ctx context.Context, id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("bestell-id fehlt: %w", domain.ErrInvalidInput)
	}
	return s.orders.GetOrderPDF(ctx, id)
}

// normalizeCustomer prüft die Pflichtfelder und setzt ein fehlendes Datum
// auf den heutigen Tag.
func normalizeCustomer(c domain.CustomerInfo, now time.Time) (domain.CustomerInfo, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Date = strings.TrimSpace(c.Date)

	if c.Name == "" || c.Phone == "" || c.Email == "" {
		return c, fmt.Errorf("name, telefon und email sind erforderlich: %w", domain.ErrInvalidInput)
	}
	if !emailPattern.MatchString(c.Email) {
		return c, fmt.Errorf("ungültige email %q: %w", c.Email, domain.ErrInvalidInput)
	}
	if c.Date == "" {
		c.Date = now.Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, c.Date); err != nil {
		return c, fmt.Errorf("ungültiges datum %q: %w", c.Date, domain.ErrInvalidInput)
	}
	return c, nil
}

// validateSelections prüft jede Bestellzeile gegen Zonenschnitt und
// Farbkatalog: Zone und Farbe müssen zum angegebenen Stofftyp gehören.
func (s *OrderService) validateSelections(ctx context.Context, selections []domain.Selection) error {
	if len(selections) == 0 {
		return domain.ErrEmptySelection
	}

	seen := make(map[string]struct{}, len(selections))
	for _, sel := range selections {
		zone, err := s.catalog.Zone(sel.AreaID)
		if err != nil {
			return err
		}
		if _, dup := seen[sel.AreaID]; dup {
			return fmt.Errorf("zone %q mehrfach: %w", sel.AreaID, domain.ErrInvalidInput)
		}
		seen[sel.AreaID] = struct{}{}

		if sel.FabricType != zone.FabricType {
			return fmt.Errorf("zone %q hat stofftyp %q, nicht %q: %w",
				sel.AreaID, zone.FabricType, sel.FabricType, domain.ErrInvalidInput)
		}

		color, err := s.catalog.Color(ctx, sel.ColorID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("unbekannte farbe %q: %w", sel.ColorID, domain.ErrInvalidInput)
		}
		if err != nil {
			return fmt.Errorf("farbe laden: %w", err)
		}
		if color.FabricType != sel.FabricType {
			return fmt.Errorf("farbe %q gehört zu %q, nicht %q: %w",
				color.ID, color.FabricType, sel.FabricType, domain.ErrInvalidInput)
		}
		if !strings.EqualFold(color.HexValue, sel.ColorHex) {
			return fmt.Errorf("farbwert %q passt nicht zu farbe %q: %w",
				sel.ColorHex, color.ID, domain.ErrInvalidInput)
		}
	}
	return nil
}
