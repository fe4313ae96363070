package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
)

// serviceName steht in der Antwort des Health-Checks.
const serviceName = "skydiving-suit-customizer"

// CatalogService definiert den Vertrag, den der Handler von der Service-Schicht erwartet.
type CatalogService interface {
	Zones() []domain.Zone
	FabricTypes(ctx context.Context) ([]domain.FabricType, error)
	Colors(ctx context.Context) ([]domain.Color, error)
	ColorsByFabricType(ctx context.Context, fabricType string) ([]domain.Color, error)
}

// CatalogHandler stellt Zonen, Stofftypen und Farben über HTTP bereit.
type CatalogHandler struct {
	service CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler erstellt einen neuen CatalogHandler.
func NewCatalogHandler(svc CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: svc, logger: logger}
}

// Health meldet die Betriebsbereitschaft.
func (h *CatalogHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

// Zones gibt den Zonenschnitt zurück.
func (h *CatalogHandler) Zones(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]domain.Zone{"zones": h.service.Zones()})
}

// FabricTypes gibt alle Stofftypen zurück.
func (h *CatalogHandler) FabricTypes(w http.ResponseWriter, r *http.Request) {
	fts, err := h.service.FabricTypes(r.Context())
	if err != nil {
		writeError(w, h.logger, "stofftypen abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.FabricType{"fabric_types": fts})
}

// Colors gibt den gesamten Farbkatalog zurück.
func (h *CatalogHandler) Colors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.service.Colors(r.Context())
	if err != nil {
		writeError(w, h.logger, "farben abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Color{"colors": colors})
}

// ColorsByFabricType gibt die Farben eines Stofftyps zurück.
func (h *CatalogHandler) ColorsByFabricType(w http.ResponseWriter, r *http.Request) {
	colors, err := h.service.ColorsByFabricType(r.Context(), chi.URLParam(r, "fabricType"))
	if err != nil {
		writeError(w, h.logger, "farben nach stofftyp abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]domain.Color{"colors": colors})
}
