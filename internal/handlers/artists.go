package handlers

import (
	"net/http"

	"github.com/Totarae/linkshortener/internal/model"
)

// ListArtists GET /artists
func (h *Handler) ListArtists(res http.ResponseWriter, req *http.Request) {
	artists, err := h.Services.Artists.List(req.Context())
	if err != nil {
		h.writeServiceError(res, err, "list artists")
		return
	}
	writeJSON(res, http.StatusOK, artists)
}

// CreateArtist POST /artist
func (h *Handler) CreateArtist(res http.ResponseWriter, req *http.Request) {
	var body model.CreateArtistRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(res, http.StatusBadRequest, badJSONMessage)
		return
	}

	artist, err := h.Services.Artists.Create(req.Context(), body)
	if err != nil {
		h.writeServiceError(res, err, "create artist")
		return
	}
	writeJSON(res, http.StatusOK, artist)
}
