package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger func(ctx context.Context) error

type HealthController struct {
	ping Pinger
	log  logrus.FieldLogger
}

func NewHealthController(ping Pinger, log logrus.FieldLogger) *HealthController {
	return &HealthController{ping: ping, log: log}
}

// Health handles GET /healthz
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := hc.ping(ctx); err != nil {
		hc.log.WithError(err).Warn("store ping failed")
		sendJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
