package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"bms-board/internal/session"
	"bms-board/internal/storage"
)

type ResponseWorklist struct {
	Rows        []storage.AggregatedRow `json:"rows"`
	Raw         []storage.AttributedRow `json:"raw"`
	Outstanding int                     `json:"outstanding"`
	Status      string                  `json:"status"`
	Error       string                  `json:"error,omitempty"`
}

type WorklistProvider interface {
	Worklist(ctx context.Context, staff string) ([]storage.AggregatedRow, []storage.AttributedRow, error)
}

func GetWorklist(log *slog.Logger, provider WorklistProvider, dismissed *session.DismissedSet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.worklist.GetWorklist"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		staff := r.URL.Query().Get("staff")
		if staff == "" {
			log.Error("missing staff in query parameters")
			http.Error(w, "Missing staff", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, raw, err := provider.Worklist(ctx, staff)
		if err != nil {
			log.Error("failed to build worklist", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseWorklist{Error: "주문 데이터를 불러오지 못했습니다"})
			return
		}

		// dismissal is applied strictly after aggregation
		visible := dismissed.Filter(rows)

		render.JSON(w, r, ResponseWorklist{
			Rows:        visible,
			Raw:         raw,
			Outstanding: len(visible),
			Status:      strconv.Itoa(http.StatusOK),
		})
	}
}
