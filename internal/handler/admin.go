package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"overol-konfigurator-backend/internal/domain"
	"overol-konfigurator-backend/internal/service"
)

// AdminService definiert den Vertrag, den der Handler von der Service-Schicht erwartet.
type AdminService interface {
	Login(password string) (string, time.Time, error)
	Execute(ctx context.Context, cred service.Credentials, cmd service.ColorCommand) (string, error)
	ExportColors(ctx context.Context, cred service.Credentials, w io.Writer) error
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// adminRequest entspricht dem Body des Farbverwaltungs-Panels.
type adminRequest struct {
	Password string        `json:"password"`
	Action   string        `json:"action"`
	Color    *domain.Color `json:"color"`
	ColorID  string        `json:"color_id"`
}

// AdminHandler stellt die Farbverwaltung über HTTP bereit.
type AdminHandler struct {
	service AdminService
	logger  *zap.Logger
}

// NewAdminHandler erstellt einen neuen AdminHandler.
func NewAdminHandler(svc AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: svc, logger: logger}
}

// Login tauscht das Passwort gegen ein Token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	token, expires, err := h.service.Login(req.Password)
	if err != nil {
		writeError(w, h.logger, "anmeldung", err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}

// Colors führt eine Aktion der Farbverwaltung aus.
func (h *AdminHandler) Colors(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if !decodeBody(w, r, &req) {
		return
	}
	cred := service.Credentials{Token: bearerToken(r), Password: req.Password}
	msg, err := h.service.Execute(r.Context(), cred, service.ColorCommand{
		Action:  req.Action,
		Color:   req.Color,
		ColorID: req.ColorID,
	})
	if err != nil {
		writeError(w, h.logger, "farbverwaltung", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{msg})
}

// Export liefert den Farbkatalog als CSV. Das Passwort kann alternativ zum
// Token im Header X-Admin-Password stehen.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	cred := service.Credentials{Token: bearerToken(r), Password: r.Header.Get("X-Admin-Password")}

	var buf bytes.Buffer
	if err := h.service.ExportColors(r.Context(), cred, &buf); err != nil {
		writeError(w, h.logger, "farbexport", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="colors.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
