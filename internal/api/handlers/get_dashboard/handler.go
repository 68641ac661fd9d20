package get_dashboard

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/m04kA/SMC-SpaceAnalytics/internal/api/handlers"
)

const msgNotGenerated = "дашборд еще не сгенерирован"

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	docsDir string
	logger  Logger
}

func NewHandler(docsDir string, logger Logger) *Handler {
	return &Handler{
		docsDir: docsDir,
		logger:  logger,
	}
}

// Handle GET /dashboard — отдает последний сгенерированный дашборд
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.docsDir, "index.html")

	if _, err := os.Stat(path); err != nil {
		h.logger.Warn("GET /dashboard - Dashboard file not found: path=%s", path)
		handlers.RespondNotFound(w, msgNotGenerated)
		return
	}

	http.ServeFile(w, r, path)
}
