package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
)

// mockRepo ist ein Test-Double für Farb-, Stofftyp- und Bestell-Repository.
type mockRepo struct {
	mu          sync.Mutex
	fabricTypes []domain.FabricType
	colors      []domain.Color
	orders      map[string]domain.Order
	saveErr     error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		fabricTypes: []domain.FabricType{
			{ID: "tela1", Name: "Cordura", PatternType: "solid"},
			{ID: "tela2", Name: "Lycra", PatternType: "solid"},
		},
		colors: []domain.Color{
			{ID: "rojo", Name: "Rojo", HexValue: "#FF0000", FabricType: "tela1"},
			{ID: "negro", Name: "Negro", HexValue: "#000000", FabricType: "tela1"},
			{ID: "azul", Name: "Azul", HexValue: "#0000FF", FabricType: "tela2"},
		},
		orders: make(map[string]domain.Order),
	}
}

func (m *mockRepo) ListColors(_ context.Context) ([]domain.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Color(nil), m.colors...), nil
}

func (m *mockRepo) ListColorsByFabricType(_ context.Context, fabricType string) ([]domain.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Color, 0)
	for _, c := range m.colors {
		if c.FabricType == fabricType {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) GetColor(_ context.Context, id string) (domain.Color, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.colors {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Color{}, fmt.Errorf("farbe %s: %w", id, domain.ErrNotFound)
}

func (m *mockRepo) AddColor(_ context.Context, color domain.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.colors {
		if c.ID == color.ID {
			return fmt.Errorf("farbe %s: %w", color.ID, domain.ErrConflict)
		}
	}
	m.colors = append(m.colors, color)
	return nil
}

func (m *mockRepo) UpdateColor(_ context.Context, color domain.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.colors {
		if c.ID == color.ID {
			m.colors[i] = color
			return nil
		}
	}
	return fmt.Errorf("farbe %s: %w", color.ID, domain.ErrNotFound)
}

func (m *mockRepo) RemoveColor(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.colors {
		if c.ID == id {
			m.colors = append(m.colors[:i], m.colors[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("farbe %s: %w", id, domain.ErrNotFound)
}

func (m *mockRepo) ListFabricTypes(_ context.Context) ([]domain.FabricType, error) {
	return append([]domain.FabricType(nil), m.fabricTypes...), nil
}

func (m *mockRepo) EnsureFabricType(_ context.Context, ft domain.FabricType) error {
	m.fabricTypes = append(m.fabricTypes, ft)
	return nil
}

func (m *mockRepo) SaveOrder(_ context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.orders[order.ID] = order
	return nil
}

func (m *mockRepo) GetOrder(_ context.Context, id string) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("bestellung %s: %w", id, domain.ErrNotFound)
	}
	o.PDF = nil
	return o, nil
}

func (m *mockRepo) GetOrderPDF(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || len(o.PDF) == 0 {
		return nil, fmt.Errorf("pdf %s: %w", id, domain.ErrNotFound)
	}
	return o.PDF, nil
}

// mockRenderer gibt ein festes Dokument zurück und merkt sich die Aufrufe.
type mockRenderer struct {
	calls int
	err   error
}

func (r *mockRenderer) Render(order domain.Order, _ []domain.FabricType) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-" + order.ID), nil
}

// mockAuth akzeptiert das Token "gültig" und das Passwort "geheim".
type mockAuth struct{}

func (mockAuth) Login(password string) (string, time.Time, error) {
	if password != "geheim" {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	return "gültig", time.Date(2026, 10, 16, 16, 0, 0, 0, time.UTC), nil
}

func (mockAuth) Authorize(token, password string) error {
	if token == "gültig" || (token == "" && password == "geheim") {
		return nil
	}
	return domain.ErrUnauthorized
}

var errRender = errors.New("renderer kaputt")

func testZones() []domain.Zone {
	return []domain.Zone{
		{ID: "A", FabricType: "tela1", View: "front"},
		{ID: "B", FabricType: "tela1", View: "front"},
		{ID: "C", FabricType: "tela2", View: "back"},
	}
}

func testLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func neuerTestCatalog(repo *mockRepo) *CatalogService {
	return NewCatalogService(testZones(), repo, repo, testLogger())
}

func neuerTestOrderService(repo *mockRepo, r *mockRenderer) *OrderService {
	svc := NewOrderService(neuerTestCatalog(repo), repo, r, testLogger())
	svc.now = func() time.Time { return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC) }
	return svc
}

func gueltigerKunde() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:  "Ana García",
		Phone: "+34 600 000 000",
		Email: "ana@example.com",
		Date:  "2026-10-16",
	}
}
