package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"bms-board/internal/service/worklist"
	"bms-board/internal/storage"
)

type WorklistProvider interface {
	Worklist(ctx context.Context, staff string) ([]storage.AggregatedRow, []storage.AttributedRow, error)
}

type ResponseStats struct {
	Months []string                `json:"months"`
	Month  string                  `json:"month"`
	Stats  []worklist.CategoryStat `json:"stats"`
	Status string                  `json:"status"`
	Error  string                  `json:"error,omitempty"`
}

// GetStats feeds the monthly pie charts: per category, counts of first-level
// classification over the raw (pre-merge) attributed rows.
func GetStats(log *slog.Logger, provider WorklistProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.stats.GetStats"

		staff := r.URL.Query().Get("staff")
		if staff == "" {
			http.Error(w, "Missing staff", http.StatusBadRequest)
			return
		}
		month := r.URL.Query().Get("month")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		_, raw, err := provider.Worklist(ctx, staff)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to build stats")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ResponseStats{Error: "통계 데이터를 불러오지 못했습니다"})
			return
		}

		months := worklist.Months(raw)
		if month == "" && len(months) > 0 {
			month = months[0]
		}

		render.JSON(w, r, ResponseStats{
			Months: months,
			Month:  month,
			Stats:  worklist.MonthlyStats(raw, month),
			Status: strconv.Itoa(http.StatusOK),
		})
	}
}
