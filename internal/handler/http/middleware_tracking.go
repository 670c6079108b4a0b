package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-guardian/internal/utils"
	"github.com/MKhiriev/go-guardian/models"
)

const (
	requestIDHeader     = "X-Request-Id"
	correlationIDHeader = "X-Correlation-Id"

	// maxIDLength bounds inbound ids before they are echoed and logged.
	maxIDLength = 128
)

// withTracking assigns the request identity. Inbound ids are reused, missing
// ones are generated independently. Both are echoed on every response and
// carried by the request-scoped logger.
func (h *Handler) withTracking(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := inboundID(r, requestIDHeader)
		if requestID == "" {
			requestID = h.idGen.Generate()
		}
		correlationID := inboundID(r, correlationIDHeader)
		if correlationID == "" {
			correlationID = h.idGen.Generate()
		}

		rc := models.RequestContext{RequestID: requestID, CorrelationID: correlationID}
		l := h.logger.ForRequest(rc)

		ctx := utils.WithRequestContext(r.Context(), rc)
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(requestIDHeader, requestID)
		w.Header().Set(correlationIDHeader, correlationID)
		next.ServeHTTP(w, r)
	})
}

func inboundID(r *http.Request, header string) string {
	id := strings.TrimSpace(r.Header.Get(header))
	if len(id) > maxIDLength {
		return ""
	}
	return id
}
