package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
)

type StaffProvider interface {
	Staff(ctx context.Context) ([]string, error)
}

type ResponseStaff struct {
	Staff  []string `json:"staff"`
	Status string   `json:"status"`
	Error  string   `json:"error,omitempty"`
}

// GetStaff returns the staff-name universe of the snapshot, priority names
// first, the rest alphabetical.
func GetStaff(log *slog.Logger, provider StaffProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.staff.GetStaff"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		staff, err := provider.Staff(ctx)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to list staff")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseStaff{Error: "담당자 목록을 불러오지 못했습니다"})
			return
		}

		render.JSON(w, r, ResponseStaff{Staff: staff, Status: strconv.Itoa(http.StatusOK)})
	}
}
