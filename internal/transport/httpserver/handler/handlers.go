package handler

import (
	"net/http"

	subsdomain "mooney-app-go/internal/domain/subscriptions"
	"mooney-app-go/pkg/logger"
)

type Handlers struct {
	Subscriptions *subsdomain.Service
	log           logger.Logger
}

func New(subscriptions *subsdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Subscriptions: subscriptions,
		log:           log,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
