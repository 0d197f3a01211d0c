package run

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	syncsvc "bms-board/internal/service/sync"
)

type Runner interface {
	Run(ctx context.Context, mode string) (syncsvc.Result, error)
}

type ResponseSync struct {
	Result syncsvc.Result `json:"result"`
	Status string         `json:"status"`
	Error  string         `json:"error,omitempty"`
}

// RunSync triggers a store refresh from the BMS API. A full resync over two
// years of orders takes a while, hence the generous timeout.
func RunSync(log *slog.Logger, runner Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.sync.RunSync"

		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = "1week"
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Minute)
		defer cancel()

		result, err := runner.Run(ctx, mode)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("sync failed")
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, ResponseSync{Result: result, Error: "데이터 동기화에 실패했습니다"})
			return
		}

		render.JSON(w, r, ResponseSync{Result: result, Status: strconv.Itoa(http.StatusOK)})
	}
}
