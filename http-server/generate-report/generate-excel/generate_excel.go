package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, staff string) ([]byte, error)
}

// GenerateReportExcel streams the staff member's worklist as an xlsx
// download.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		staff := r.URL.Query().Get("staff")
		if staff == "" {
			http.Error(w, "Missing staff", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		data, err := gen.GenerateExcel(ctx, staff)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("excel generation failed")
			http.Error(w, "Failed to generate report", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("as_worklist_%s_%s.xlsx", staff, time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Write(data)
	}
}
