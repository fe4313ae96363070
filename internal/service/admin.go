package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
	"overol-konfigurator-backend/internal/repository"
	csvrepo "overol-konfigurator-backend/internal/repository/csv"
)

// Aktionen der Farbverwaltung.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionUpdate = "update"
)

// Authorizer prüft die Zugangsdaten der Farbverwaltung.
type Authorizer interface {
	Login(password string) (string, time.Time, error)
	Authorize(token, password string) error
}

// Credentials sind Token oder Passwort eines Verwaltungsaufrufs.
type Credentials struct {
	Token    string
	Password string
}

// ColorCommand ist ein Verwaltungsauftrag für den Farbkatalog.
type ColorCommand struct {
	Action  string
	Color   *domain.Color
	ColorID string
}

// AdminService verändert den Farbkatalog nach erfolgreicher Prüfung der
// Zugangsdaten.
type AdminService struct {
	auth    Authorizer
	colors  repository.ColorRepository
	fabrics repository.FabricTypeRepository
	logger  *zap.Logger
}

// NewAdminService gibt einen einsatzbereiten AdminService zurück.
func NewAdminService(auth Authorizer, colors repository.ColorRepository,
	fabrics repository.FabricTypeRepository, logger *zap.Logger) *AdminService {
	return &AdminService{auth: auth, colors: colors, fabrics: fabrics, logger: logger}
}

// Login tauscht das Passwort gegen ein Token.
func (s *AdminService) Login(password string) (string, time.Time, error) {
	token, expires, err := s.auth.Login(password)
	if err != nil {
		s.logger.Warn("fehlgeschlagene anmeldung an der farbverwaltung")
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Execute führt cmd aus und gibt die Erfolgsmeldung zurück.
func (s *AdminService) Execute(ctx context.Context, cred Credentials, cmd ColorCommand) (string, error) {
	if err := s.auth.Authorize(cred.Token, cred.Password); err != nil {
		s.logger.Warn("farbverwaltung abgelehnt", zap.String("aktion", cmd.Action))
		return "", fmt.Errorf("farbverwaltung: %w", err)
	}

	switch cmd.Action {
	case ActionAdd:
		if cmd.Color == nil {
			return "", fmt.Errorf("farbdaten fehlen für add: %w", domain.ErrInvalidInput)
		}
		c, err := s.validateColor(ctx, *cmd.Color)
		if err != nil {
			return "", err
		}
		if err := s.colors.AddColor(ctx, c); err != nil {
			return "", err
		}
		s.logger.Info("farbe hinzugefügt", zap.String("id", c.ID), zap.String("stofftyp", c.FabricType))
		return "Color added successfully", nil

	case ActionRemove:
		id := strings.TrimSpace(cmd.ColorID)
		if id == "" {
			return "", fmt.Errorf("farb-id fehlt für remove: %w", domain.ErrInvalidInput)
		}
		if err := s.colors.RemoveColor(ctx, id); err != nil {
			return "", err
		}
		s.logger.Info("farbe entfernt", zap.String("id", id))
		return "Color removed successfully", nil

	case ActionUpdate:
		if cmd.Color == nil {
			return "", fmt.Errorf("farbdaten fehlen für update: %w", domain.ErrInvalidInput)
		}
		c, err := s.validateColor(ctx, *cmd.Color)
		if err != nil {
			return "", err
		}
		if err := s.colors.UpdateColor(ctx, c); err != nil {
			return "", err
		}
		s.logger.Info("farbe aktualisiert", zap.String("id", c.ID))
		return "Color updated successfully", nil

	default:
		return "", fmt.Errorf("unbekannte aktion %q: %w", cmd.Action, domain.ErrInvalidInput)
	}
}

// ExportColors schreibt den Farbkatalog als CSV nach w.
func (s *AdminService) ExportColors(ctx context.Context, cred Credentials, w io.Writer) error {
	if err := s.auth.Authorize(cred.Token, cred.Password); err != nil {
		return fmt.Errorf("farbexport: %w", err)
	}
	colors, err := s.colors.ListColors(ctx)
	if err != nil {
		return fmt.Errorf("farben laden: %w", err)
	}
	return csvrepo.WriteColors(w, colors)
}

// validateColor normalisiert c und prüft Pflichtfelder, Farbwert und Stofftyp.
func (s *AdminService) validateColor(ctx context.Context, c domain.Color) (domain.Color, error) {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
	c.FabricType = strings.TrimSpace(c.FabricType)
	c.HexValue = domain.NormalizeHex(c.HexValue)

	if c.ID == "" || c.Name == "" {
		return c, fmt.Errorf("id und name sind erforderlich: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidHex(c.HexValue) {
		return c, fmt.Errorf("ungültiger farbwert %q: %w", c.HexValue, domain.ErrInvalidInput)
	}

	fabrics, err := s.fabrics.ListFabricTypes(ctx)
	if err != nil {
		return c, fmt.Errorf("stofftypen laden: %w", err)
	}
	for _, ft := range fabrics {
		if ft.ID == c.FabricType {
			return c, nil
		}
	}
	return c, fmt.Errorf("unbekannter stofftyp %q: %w", c.FabricType, domain.ErrInvalidInput)
}
