package handler

import (
	"context"
	"net/http"

	"github.com/builderstack/appserver/internal/model"
)

// InstanceLister produces a database instance listing result.
type InstanceLister interface {
	List(ctx context.Context) model.InstanceListResult
}

// InstanceHandler exposes the Lakebase instance listing.
type InstanceHandler struct {
	instances InstanceLister
}

// NewInstanceHandler creates a new InstanceHandler.
func NewInstanceHandler(instances InstanceLister) *InstanceHandler {
	return &InstanceHandler{instances: instances}
}

// List returns the first database instances visible to the app.
// Listing failures are reported in the body with a 200 status so the
// frontend can fall back gracefully.
//
// GET /api/lakebase-instance-info
func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.instances.List(r.Context()))
}
