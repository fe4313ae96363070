package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
	"overol-konfigurator-backend/internal/pdf"
)

// OrderService definiert den Vertrag, den der Handler von der Service-Schicht erwartet.
type OrderService interface {
	Create(ctx context.Context, customer domain.CustomerInfo, selections []domain.Selection) (domain.OrderReceipt, error)
	PDF(ctx context.Context, id string) ([]byte, error)
}

// orderRequest ist der Body von POST /api/orders.
type orderRequest struct {
	CustomerInfo domain.CustomerInfo `json:"customer_info"`
	Selections   []domain.Selection  `json:"selections"`
}

// OrderHandler nimmt Bestellungen an und liefert deren PDF aus.
type OrderHandler struct {
	service OrderService
	logger  *zap.Logger
}

// NewOrderHandler erstellt einen neuen OrderHandler.
func NewOrderHandler(svc OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// Create legt eine Bestellung an.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	receipt, err := h.service.Create(r.Context(), req.CustomerInfo, req.Selections)
	if err != nil {
		writeError(w, h.logger, "bestellung anlegen", err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// PDF liefert das Dokument einer Bestellung als Download.
func (h *OrderHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.service.PDF(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, "pdf abrufen", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.FileName(id)))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
