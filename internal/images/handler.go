package images

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/azurvoyages/tours-api/internal/auth"
)

// 10 MiB upload cap.
const MaxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// Handler serves the image routes as plain chi handlers. This route
// group sits outside the huma pipeline: retrieval is public, and
// upload/delete resolve the bearer token by hand.
type Handler struct {
	store      *Store
	converter  *Converter
	auth       *auth.AuthHandler
	publicPath string
}

func NewHandler(store *Store, converter *Converter, authHandler *auth.AuthHandler, publicPath string) *Handler {
	return &Handler{
		store:      store,
		converter:  converter,
		auth:       authHandler,
		publicPath: publicPath,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/upload", h.HandleUpload)
	r.Get("/{filename}", h.HandleGet)
	r.Delete("/{filename}", h.HandleDelete)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// resolveUser authenticates the caller from the Authorization header,
// writing a 401 with a message that tells "nothing presented" apart
// from "presented but invalid". Returns false when the response has
// been written.
func (h *Handler) resolveUser(w http.ResponseWriter, r *http.Request) bool {
	_, err := h.auth.UserFromAuthorization(r.Header.Get("Authorization"))
	if err == nil {
		return true
	}
	if errors.Is(err, auth.ErrNoToken) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"message": "Authentication required",
			"error":   "Missing Authorization header. Send: Authorization: Bearer <token>",
		})
	} else {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"message": "Authentication required",
			"error":   "Invalid or expired token",
		})
	}
	return false
}

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if !h.resolveUser(w, r) {
		return
	}

	// Cap the whole request a bit above the file limit so multipart
	// framing does not push a maximal file over the edge.
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+1<<20)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"message": "File is too large (maximum 10MB)",
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No image file provided"})
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedImageTypes[mimeType] {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "File must be an image (JPEG, PNG, GIF, WebP or BMP)",
		})
		return
	}

	if header.Size > MaxUploadSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"message": "File is too large (maximum 10MB)",
		})
		return
	}

	if err := h.store.EnsureDir(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Image upload failed",
			"error":   err.Error(),
		})
		return
	}

	filename, err := h.store.NewFilename(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Image upload failed",
			"error":   err.Error(),
		})
		return
	}
	dstPath := h.store.Path(filename)

	var message string
	if mimeType == "image/webp" {
		// Already the target codec: byte-copy, no re-encode.
		if err := copyFile(file, dstPath); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Failed to store the image",
				"error":   err.Error(),
			})
			return
		}
		message = "WebP image uploaded successfully"
	} else {
		if err := h.converter.Convert(file, dstPath); err != nil {
			var convErr *ConversionError
			if errors.As(err, &convErr) {
				writeJSON(w, http.StatusInternalServerError, map[string]any{
					"message": "Failed to convert the image to WebP",
					"error":   convErr.Reason,
					"details": map[string]any{
						"backend": convErr.Backend,
						"info":    convErr.Details,
					},
				})
			} else {
				writeJSON(w, http.StatusInternalServerError, map[string]string{
					"message": "Failed to convert the image to WebP",
					"error":   err.Error(),
				})
			}
			return
		}
		message = "Image uploaded and converted to WebP successfully"
	}

	info, err := os.Stat(dstPath)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Stored image is missing",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  message,
		"filename": filename,
		"url":      h.publicPath + "/" + filename,
		"size":     info.Size(),
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.store.Resolve(filename)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Image not found", http.StatusNotFound)
		} else {
			http.Error(w, "Access denied", http.StatusForbidden)
		}
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, path)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.resolveUser(w, r) {
		return
	}

	filename := chi.URLParam(r, "filename")
	if err := h.store.Remove(filename); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Image not found"})
		case errors.Is(err, ErrForbidden):
			writeJSON(w, http.StatusForbidden, map[string]string{"message": "Access denied"})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Failed to delete the image",
				"error":   err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Image deleted successfully",
		"filename": filename,
	})
}

func copyFile(src io.Reader, dstPath string) error {
	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return err
	}
	return dst.Close()
}
