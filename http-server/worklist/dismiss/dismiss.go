package dismiss

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"bms-board/internal/session"
)

type Request struct {
	Key string `json:"key"`
}

type Response struct {
	Dismissed int    `json:"dismissed"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// DismissRow hides one merged worklist row for the rest of the session; the
// composite key covers every contributing service order.
func DismissRow(log *slog.Logger, dismissed *session.DismissedSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklist.DismissRow"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil || req.Key == "" {
			log.Error("invalid dismiss request", slog.String("op", op))
			http.Error(w, "Missing key", http.StatusBadRequest)
			return
		}

		dismissed.Dismiss(req.Key)

		render.JSON(w, r, Response{Dismissed: dismissed.Len(), Status: strconv.Itoa(http.StatusOK)})
	}
}

func RestoreRow(log *slog.Logger, dismissed *session.DismissedSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklist.RestoreRow"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil || req.Key == "" {
			log.Error("invalid restore request", slog.String("op", op))
			http.Error(w, "Missing key", http.StatusBadRequest)
			return
		}

		dismissed.Restore(req.Key)

		render.JSON(w, r, Response{Dismissed: dismissed.Len(), Status: strconv.Itoa(http.StatusOK)})
	}
}

// ResetRows brings every hidden row back ("숨긴 항목 다시 보기").
func ResetRows(log *slog.Logger, dismissed *session.DismissedSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dismissed.Reset()
		render.JSON(w, r, Response{Dismissed: 0, Status: strconv.Itoa(http.StatusOK)})
	}
}
