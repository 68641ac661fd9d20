package get_space_metrics

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/api/handlers"
	"github.com/m04kA/SMC-SpaceAnalytics/internal/infra/storage/snapshot"
)

const (
	msgMissingSpaceID = "отсутствует ID пространства"
	msgNotFound       = "метрики пространства не найдены"
)

type Handler struct {
	store  SnapshotStore
	logger Logger
}

func NewHandler(store SnapshotStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle GET /api/v1/spaces/{spaceId}/metrics
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем spaceId из URL
	vars := mux.Vars(r)
	spaceID := vars["spaceId"]
	if spaceID == "" {
		h.logger.Warn("GET /spaces/{id}/metrics - Missing space ID")
		handlers.RespondBadRequest(w, msgMissingSpaceID)
		return
	}

	rows, err := h.store.LatestForSpace(r.Context(), spaceID)
	if err != nil {
		switch {
		case errors.Is(err, snapshot.ErrNotFound):
			h.logger.Warn("GET /spaces/{id}/metrics - No snapshot for space: space_id=%s", spaceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /spaces/{id}/metrics - Failed to load metrics: space_id=%s, error=%v", spaceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /spaces/{id}/metrics - Metrics retrieved: space_id=%s, periods=%d", spaceID, len(rows))
	handlers.RespondJSON(w, http.StatusOK, fromSnapshotRows(rows))
}
