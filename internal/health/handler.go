package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Nasaee/todo-crud-api/pkg/utils"
)

// Pinger คือ store อะไรก็ได้ที่เช็คการเชื่อมต่อได้
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	store   Pinger
	driver  string
	timeout time.Duration
}

func NewHandler(store Pinger, driver string) *Handler {
	return &Handler{store: store, driver: driver, timeout: 2 * time.Second}
}

// GET / ตอบ pong เสมอ ไม่ขึ้นกับ state ของ store
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"ping": "pong"})
}

// GET /healthz เช็คว่า store ยังต่อได้
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Warn("store ping failed", "driver", h.driver, "error", err)
		utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"store":  h.driver,
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  h.driver,
	})
}
