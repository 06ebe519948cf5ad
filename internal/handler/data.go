package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brookfield-academy/site-server-go/internal/service"
)

type dataRequest struct {
	Action       string          `json:"action"`
	SessionToken string          `json:"sessionToken"`
	Data         json.RawMessage `json:"data"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// DataHandler serves POST /functions/admin-data. Authorization and the
// action whitelist live in the service.
type DataHandler struct {
	dataService *service.AdminDataService
}

func NewDataHandler(dataService *service.AdminDataService) *DataHandler {
	return &DataHandler{dataService: dataService}
}

func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Handle)
	return r
}

func (h *DataHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req dataRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.dataService.Execute(r.Context(), service.DataRequest{
		Action:       req.Action,
		SessionToken: req.SessionToken,
		Data:         req.Data,
		Client:       clientInfo(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Success: true, Data: result})
}
