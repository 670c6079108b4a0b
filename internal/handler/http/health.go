package http

import (
	"net/http"

	"github.com/MKhiriev/go-guardian/internal/app"
	"github.com/MKhiriev/go-guardian/internal/utils"
)

type rootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// health reports dependency status and answers 503 while any dependency is
// down.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) error {
	report := h.services.HealthService.Check(r.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}

	_, err := utils.WriteJSON(w, report, status)
	return err
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) error {
	_, err := utils.WriteJSON(w, rootResponse{
		Message: app.MsgWelcome,
		Version: h.services.AppInfoService.GetAppVersion(r.Context()),
	}, http.StatusOK)
	return err
}
