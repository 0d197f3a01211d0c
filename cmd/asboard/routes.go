package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	generate_excel "bms-board/http-server/generate-report/generate-excel"
	openpopup "bms-board/http-server/popup/open"
	getstaff "bms-board/http-server/staff/get"
	getstats "bms-board/http-server/stats/get"
	runsync "bms-board/http-server/sync/run"
	"bms-board/http-server/worklist/dismiss"
	getworklist "bms-board/http-server/worklist/get"
	"bms-board/internal/browser"
	"bms-board/internal/config"
	"bms-board/internal/middleware/auth"
	excelsvc "bms-board/internal/service/generate-excel"
	syncsvc "bms-board/internal/service/sync"
	"bms-board/internal/service/worklist"
	"bms-board/internal/session"
	"bms-board/internal/storage/mysql"
)

func routes(
	cfg config.Config,
	log *slog.Logger,
	storage *mysql.Storage,
	worklistService *worklist.Service,
	syncService *syncsvc.Service,
	excelService *excelsvc.GenerateExcelService,
	popup *browser.Popup,
	dismissed *session.DismissedSet,
) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// per-staff worklist and session dismissal
	router.Get("/api/worklist", getworklist.GetWorklist(log, worklistService, dismissed))
	router.Post("/api/worklist/dismiss", dismiss.DismissRow(log, dismissed))
	router.Post("/api/worklist/restore", dismiss.RestoreRow(log, dismissed))
	router.Post("/api/worklist/reset", dismiss.ResetRows(log, dismissed))

	router.Get("/api/staff", getstaff.GetStaff(log, worklistService))
	router.Get("/api/stats", getstats.GetStats(log, worklistService))

	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, excelService))

	router.Post("/api/popup", openpopup.OpenPopup(log, popup, cfg.BMS.PopupPassword))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Post("/sync", runsync.RunSync(log, syncService))
	router.Mount("/api/admin", adminRouter)

	// static Vue frontend with SPA fallback
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend dir not found, serving API only", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
