package open

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

type Opener interface {
	Open(customer, orderCode, username, password string) error
}

type Request struct {
	Customer  string `json:"customer"`
	OrderCode string `json:"order_code"`
	Staff     string `json:"staff"`
}

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// OpenPopup opens a logged-in BMS browser window on the given customer's
// order card. BMS logins are per staff member with a shared password.
func OpenPopup(log *slog.Logger, opener Opener, popupPassword string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.popup.OpenPopup"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Customer == "" || req.OrderCode == "" || req.Staff == "" {
			http.Error(w, "Missing customer, order_code or staff", http.StatusBadRequest)
			return
		}

		if err := opener.Open(req.Customer, req.OrderCode, req.Staff, popupPassword); err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("popup failed",
				slog.String("order_code", req.OrderCode))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, Response{Error: "팝업 열기에 실패했습니다"})
			return
		}

		render.JSON(w, r, Response{Status: strconv.Itoa(http.StatusOK)})
	}
}
