package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vy1216/v4learnease/internal/domain/material"
	"github.com/vy1216/v4learnease/internal/domain/support"
	"github.com/vy1216/v4learnease/internal/id"
)

const maxUploadSize = 32 << 20 // 32 MiB multipart memory limit

// ── Response types ──────────────────────────────────────────────────────────

type UploadResponse struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

type HelpResponse struct {
	ID string `json:"id"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// GET /api/materials
func (h *Handler) listMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.store.ListMaterials(r.Context())
	if err != nil {
		h.logger.Error("failed to list materials", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, materials)
}

// POST /api/materials (requires auth)
func (h *Handler) createMaterial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form")
		return
	}
	name := r.FormValue("name")
	file, header, err := r.FormFile("file")
	if name == "" || err != nil {
		respondError(w, http.StatusBadRequest, "Material name and file are required")
		return
	}
	defer file.Close()

	storedName, path, err := h.saveFile(file, header)
	if err != nil {
		h.logger.Error("failed to store file", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	fileURL := h.baseURL(r) + "/uploads/" + storedName

	var uploaderID int64
	if claims := claimsFrom(ctx); claims != nil {
		uploaderID = claims.UserID
	}

	mat := &material.Material{
		ID:          id.New("mat"),
		Name:        name,
		Description: r.FormValue("description"),
		FileURL:     fileURL,
		UploaderID:  uploaderID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.SaveMaterial(ctx, mat); err != nil {
		h.logger.Error("failed to save material", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// Text extraction is best effort and asynchronous; chat picks the
	// material up once indexing lands.
	h.indexer.Submit(material.Upload{
		ID:   mat.ID,
		Name: header.Filename,
		URL:  fileURL,
	}, path, header.Header.Get("Content-Type"))

	respondJSON(w, http.StatusCreated, mat)
}

// POST /api/upload
func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	storedName, path, err := h.saveFile(file, header)
	if err != nil {
		h.logger.Error("failed to store file", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to process uploaded file")
		return
	}

	upload := material.Upload{
		ID:   id.New("up"),
		Name: header.Filename,
		URL:  h.baseURL(r) + "/uploads/" + storedName,
	}
	h.indexer.Submit(upload, path, header.Header.Get("Content-Type"))

	respondJSON(w, http.StatusOK, UploadResponse{ID: upload.ID, URL: upload.URL, Name: upload.Name})
}

// saveFile writes the uploaded file under the uploads dir with a
// timestamp-prefixed name and returns that name and the full path.
func (h *Handler) saveFile(file multipart.File, header *multipart.FileHeader) (string, string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", "", err
	}
	storedName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	path := filepath.Join(h.uploadDir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", "", err
	}
	return storedName, path, nil
}

// POST /api/help
func (h *Handler) createTicket(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		respondError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	ticket := &support.Ticket{
		ID:        id.New("help"),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.SaveTicket(r.Context(), ticket); err != nil {
		h.logger.Error("failed to save ticket", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, HelpResponse{ID: ticket.ID})
}
