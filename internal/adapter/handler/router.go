package handler

import (
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func NewRouter(h *BookingHandler, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/wizards", h.StartWizard).Methods(http.MethodPost)
	api.HandleFunc("/wizards/{id}", h.GetWizard).Methods(http.MethodGet)
	api.HandleFunc("/wizards/{id}", h.DiscardWizard).Methods(http.MethodDelete)
	api.HandleFunc("/wizards/{id}/sections/{section}", h.UpdateSection).Methods(http.MethodPut)
	api.HandleFunc("/wizards/{id}/sections/{section}", h.ResetSection).Methods(http.MethodDelete)
	api.HandleFunc("/wizards/{id}/step", h.ChangeStep).Methods(http.MethodPost)
	api.HandleFunc("/wizards/{id}/discount", h.ApplyDiscount).Methods(http.MethodPost)
	api.HandleFunc("/wizards/{id}/discount", h.ClearDiscount).Methods(http.MethodDelete)
	api.HandleFunc("/wizards/{id}/discount/reset", h.ResetSpecialDiscount).Methods(http.MethodPost)
	api.HandleFunc("/wizards/{id}/prices/keep", h.KeepStoredPrices).Methods(http.MethodPost)
	api.HandleFunc("/wizards/{id}/summary", h.Summary).Methods(http.MethodGet)
	api.HandleFunc("/wizards/{id}/submit", h.Submit).Methods(http.MethodPost)
	api.HandleFunc("/discounts", h.ListDiscounts).Methods(http.MethodGet)

	headersOk := gorillaHandlers.AllowedHeaders([]string{"X-Requested-With", "Authorization", "Content-Type"})
	originsOk := gorillaHandlers.AllowedOrigins(allowedOrigins)
	methodsOk := gorillaHandlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "DELETE", "OPTIONS"})

	return gorillaHandlers.CORS(originsOk, headersOk, methodsOk)(router)
}
