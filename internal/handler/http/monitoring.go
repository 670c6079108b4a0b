package http

import (
	"net/http"

	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/models"
)

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) error {
	metrics, err := h.services.MetricsService.List(r.Context())
	if err != nil {
		return err
	}

	_, err = utils.WriteJSON(w, models.MetricsResponse{Metrics: metrics, Total: len(metrics)}, http.StatusOK)
	return err
}

func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) error {
	alerts := h.services.AlertService.List(r.Context())

	_, err := utils.WriteJSON(w, models.AlertsResponse{Alerts: alerts, Total: len(alerts)}, http.StatusOK)
	return err
}
