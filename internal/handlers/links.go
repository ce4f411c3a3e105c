package handlers

import (
	"net/http"

	"github.com/Totarae/linkshortener/internal/model"
)

// CreateLink POST /shortUrl
func (h *Handler) CreateLink(res http.ResponseWriter, req *http.Request) {
	var body model.CreateLinkRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(res, http.StatusBadRequest, badJSONMessage)
		return
	}

	link, err := h.Services.Links.Create(req.Context(), body)
	if err != nil {
		h.writeServiceError(res, err, "create link")
		return
	}

	writeJSON(res, http.StatusCreated, model.CreateLinkResponse{Message: "link created", Link: link})
}

// UpdateLink PUT /shortUrl/{id}
func (h *Handler) UpdateLink(res http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		writeError(res, http.StatusBadRequest, "invalid link id")
		return
	}

	var body model.UpdateLinkRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(res, http.StatusBadRequest, badJSONMessage)
		return
	}

	link, err := h.Services.Links.Update(req.Context(), id, body)
	if err != nil {
		h.writeServiceError(res, err, "update link")
		return
	}
	writeJSON(res, http.StatusOK, link)
}

// DeleteLink DELETE /shortUrl/{id}. Успех отвечает 204 без тела.
func (h *Handler) DeleteLink(res http.ResponseWriter, req *http.Request) {
	id, ok := pathID(req, "id")
	if !ok {
		writeError(res, http.StatusBadRequest, "invalid link id")
		return
	}

	if err := h.Services.Links.Delete(req.Context(), id); err != nil {
		h.writeServiceError(res, err, "delete link")
		return
	}
	res.WriteHeader(http.StatusNoContent)
}

// GetUserLinks GET /shortUrl/{id}, где id — идентификатор пользователя.
func (h *Handler) GetUserLinks(res http.ResponseWriter, req *http.Request) {
	userID, ok := pathID(req, "id")
	if !ok {
		writeError(res, http.StatusBadRequest, "invalid user id")
		return
	}

	links, err := h.Services.Links.ListByUser(req.Context(), userID)
	if err != nil {
		h.writeServiceError(res, err, "list links")
		return
	}
	writeJSON(res, http.StatusOK, links)
}
