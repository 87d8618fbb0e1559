package api

import (
	"io"
	"net/http"
)

const maxDocumentBytes = 10 << 20

type uploadDocumentResponse struct {
	Reference string `json:"reference"`
}

func (a *API) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if a.documents == nil {
		a.Response(w, http.StatusServiceUnavailable, "document storage is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		a.Response(w, http.StatusBadRequest, "document file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, "failed to read document")
		return
	}

	reference, err := a.documents.Store(r.Context(), data, header.Filename)
	if err != nil {
		a.Response(w, http.StatusBadGateway, "failed to store document")
		return
	}

	a.Response(w, http.StatusCreated, uploadDocumentResponse{Reference: reference})
}
