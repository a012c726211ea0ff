package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/markjakearzadon/flatmate-gobackend/internal/models"
	"github.com/markjakearzadon/flatmate-gobackend/internal/services"
	"github.com/markjakearzadon/flatmate-gobackend/internal/storage"
	"github.com/sirupsen/logrus"
)

const imagesField = "images"

type RequirementService interface {
	CreatePost(ctx context.Context, form *models.RequirementForm, images []string) (*models.Requirement, error)
	ListPosts(ctx context.Context) ([]models.Requirement, error)
}

type Uploader interface {
	SaveAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

// RequirementHandler handles the requirement post endpoints
type RequirementHandler struct {
	service        RequirementService
	uploader       Uploader
	maxUploadBytes int64
	logger         *logrus.Logger
}

func NewRequirementHandler(service RequirementService, uploader Uploader, maxUploadBytes int64, logger *logrus.Logger) *RequirementHandler {
	return &RequirementHandler{
		service:        service,
		uploader:       uploader,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// CreateRequirement handles POST /api/post-requirement
func (h *RequirementHandler) CreateRequirement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	// urlencoded bodies are still parsed into PostForm, they just carry no files
	err := r.ParseMultipartForm(h.maxUploadBytes)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.logger.WithError(err).Info("unreadable requirement form")
		writeFailure(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
		files = r.MultipartForm.File[imagesField]
	}

	var form models.RequirementForm
	if err := decoder.Decode(&form, r.PostForm); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	if _, err := services.ParsePrice(form.Price); err != nil {
		h.writeError(w, err)
		return
	}

	images, err := h.uploader.SaveAll(r.Context(), files)
	if err != nil {
		if errors.Is(err, storage.ErrTooManyFiles) {
			writeFailure(w, http.StatusBadRequest, fmt.Sprintf("You can upload at most %d images", models.MaxRequirementImages))
			return
		}
		h.logger.WithError(err).Error("failed to store requirement images")
		writeFailure(w, http.StatusInternalServerError, "Server error while posting requirement")
		return
	}

	post, err := h.service.CreatePost(r.Context(), &form, images)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Success: true,
		Message: "Requirement posted successfully!",
		Post:    post,
	})
}

// GetRequirements handles GET /api/requirements
func (h *RequirementHandler) GetRequirements(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("failed to list requirements")
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Success bool                 `json:"success"`
		Data    []models.Requirement `json:"data"`
	}{Success: true, Data: posts})
}

func (h *RequirementHandler) writeError(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeFailure(w, http.StatusBadRequest, verr.Message)
		return
	}
	h.logger.WithError(err).Error("failed to save requirement")
	writeFailure(w, http.StatusInternalServerError, "Server error while posting requirement")
}
