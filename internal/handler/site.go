package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brookfield-academy/site-server-go/internal/service"
)

// SiteHandler serves the public website reads and the admission form.
type SiteHandler struct {
	siteService *service.SiteService
}

func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

func (h *SiteHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/gallery", h.ListGallery)
	r.Get("/content/{section}", h.GetContent)
	r.Post("/inquiries", h.SubmitInquiry)

	return r
}

func (h *SiteHandler) ListGallery(w http.ResponseWriter, r *http.Request) {
	items, err := h.siteService.ListGallery(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *SiteHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.siteService.GetContent(r.Context(), chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}

func (h *SiteHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitInquiryInput
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	inquiry, err := h.siteService.SubmitInquiry(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": inquiry.ID, "status": string(inquiry.Status)})
}
