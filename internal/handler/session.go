package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
	"overol-konfigurator-backend/internal/service"
)

// SessionService definiert den Vertrag, den der Handler von der Service-Schicht erwartet.
type SessionService interface {
	Create(ctx context.Context) (service.SessionView, error)
	View(ctx context.Context, id string) (service.SessionView, error)
	Gesture(ctx context.Context, id, zoneID string, multiSelect bool) (service.SessionView, error)
	ApplyColor(ctx context.Context, id, colorID string) (service.SessionView, error)
	Reset(ctx context.Context, id string) (service.SessionView, error)
	Submit(ctx context.Context, id string, customer domain.CustomerInfo) (domain.OrderReceipt, error)
	End(ctx context.Context, id string) error
}

type gestureRequest struct {
	ZoneID      string `json:"zone_id"`
	MultiSelect bool   `json:"multi_select"`
}

type colorRequest struct {
	ColorID string `json:"color_id"`
}

type submitRequest struct {
	CustomerInfo domain.CustomerInfo `json:"customer_info"`
}

// SessionHandler steuert die Auswahl einer Kundensitzung über HTTP.
type SessionHandler struct {
	service SessionService
	logger  *zap.Logger
}

// NewSessionHandler erstellt einen neuen SessionHandler.
func NewSessionHandler(svc SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{service: svc, logger: logger}
}

// Create eröffnet eine Sitzung.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Create(r.Context())
	if err != nil {
		writeError(w, h.logger, "sitzung eröffnen", err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Get gibt den Zustand einer Sitzung zurück.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, "sitzung abrufen", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Delete beendet eine Sitzung.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, "sitzung beenden", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Gesture wendet einen Klick oder Doppelklick auf eine Zone an.
func (h *SessionHandler) Gesture(w http.ResponseWriter, r *http.Request) {
	var req gestureRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.service.Gesture(r.Context(), chi.URLParam(r, "id"), req.ZoneID, req.MultiSelect)
	if err != nil {
		writeError(w, h.logger, "zonengeste anwenden", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ApplyColor färbt die vorgemerkten Zonen.
func (h *SessionHandler) ApplyColor(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	view, err := h.service.ApplyColor(r.Context(), chi.URLParam(r, "id"), req.ColorID)
	if err != nil {
		writeError(w, h.logger, "farbe anwenden", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Reset verwirft die Auswahl der Sitzung.
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, "auswahl zurücksetzen", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Submit bestellt die eingefärbten Zonen der Sitzung.
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	receipt, err := h.service.Submit(r.Context(), chi.URLParam(r, "id"), req.CustomerInfo)
	if err != nil {
		writeError(w, h.logger, "sitzung bestellen", err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
