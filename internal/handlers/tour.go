package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/azurvoyages/tours-api/internal/auth"
	"github.com/azurvoyages/tours-api/internal/models"
	"github.com/azurvoyages/tours-api/internal/repository"
)

type TourHandler struct {
	tours       *repository.TourRepository
	authHandler *auth.AuthHandler
}

func NewTourHandler(tours *repository.TourRepository, authHandler *auth.AuthHandler) *TourHandler {
	return &TourHandler{tours: tours, authHandler: authHandler}
}

type TourView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Duration    string    `json:"duration"`
	Highlights  []string  `json:"highlights"`
	ImageURLs   []string  `json:"imageUrls"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewTourView(t *models.Tour) TourView {
	highlights := []string{}
	if t.Highlights != nil {
		highlights = t.Highlights
	}
	return TourView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Price:       t.Price,
		Duration:    t.Duration,
		Highlights:  highlights,
		ImageURLs:   t.ImageURLs(),
		IsActive:    t.IsActive == nil || *t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// positiveDecimal accepts "12", "12.5", "12.50" and requires a value
// strictly above zero.
func positiveDecimal(s string) bool {
	v, err := strconv.ParseFloat(s, 64)
	return err == nil && v > 0
}

func (h *TourHandler) findTour(id string) (*models.Tour, error) {
	tour, err := h.tours.Find(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Tour not found")
		}
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}
	return tour, nil
}

type ListToursRequest struct {
	auth.AuthInput
	Active bool `query:"active" doc:"Only list active tours"`
}

type ListToursResponse struct {
	Body struct {
		Tours []TourView `json:"tours"`
	}
}

func (h *TourHandler) HandleList(ctx context.Context, input *ListToursRequest) (*ListToursResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleUser); err != nil {
		return nil, err
	}

	tours, err := h.tours.List(input.Active)
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}

	res := &ListToursResponse{}
	res.Body.Tours = make([]TourView, 0, len(tours))
	for i := range tours {
		res.Body.Tours = append(res.Body.Tours, NewTourView(&tours[i]))
	}
	return res, nil
}

type GetTourRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

type TourResponse struct {
	Body TourView
}

func (h *TourHandler) HandleGet(ctx context.Context, input *GetTourRequest) (*TourResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleUser); err != nil {
		return nil, err
	}

	tour, err := h.findTour(input.ID)
	if err != nil {
		return nil, err
	}
	return &TourResponse{Body: NewTourView(tour)}, nil
}

type TourWriteBody struct {
	Title       string   `json:"title,omitempty" doc:"Tour title"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty" doc:"Positive decimal, e.g. 49.90"`
	Duration    string   `json:"duration,omitempty" doc:"Human-readable duration"`
	Highlights  []string `json:"highlights,omitempty"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

type CreateTourRequest struct {
	auth.AuthInput
	Body TourWriteBody
}

func (h *TourHandler) HandleCreate(ctx context.Context, input *CreateTourRequest) (*TourResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	b := input.Body
	if b.Title == "" || b.Description == "" || b.Duration == "" {
		return nil, huma.Error400BadRequest("Title, description and duration are required")
	}
	if !positiveDecimal(b.Price) {
		return nil, huma.Error400BadRequest("Price must be a positive decimal")
	}

	tour := models.Tour{
		Title:       b.Title,
		Description: b.Description,
		Price:       b.Price,
		Duration:    b.Duration,
		IsActive:    b.IsActive,
	}
	tour.Highlights = b.Highlights
	tour.ReplaceImageURLs(b.ImageURLs)

	if err := h.tours.Create(&tour); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create tour: " + err.Error())
	}
	return &TourResponse{Body: NewTourView(&tour)}, nil
}

type UpdateTourRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body TourWriteBody
}

func (h *TourHandler) HandleUpdate(ctx context.Context, input *UpdateTourRequest) (*TourResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	tour, err := h.findTour(input.ID)
	if err != nil {
		return nil, err
	}

	b := input.Body
	if b.Title != "" {
		tour.Title = b.Title
	}
	if b.Description != "" {
		tour.Description = b.Description
	}
	if b.Price != "" {
		if !positiveDecimal(b.Price) {
			return nil, huma.Error400BadRequest("Price must be a positive decimal")
		}
		tour.Price = b.Price
	}
	if b.Duration != "" {
		tour.Duration = b.Duration
	}
	if b.Highlights != nil {
		tour.Highlights = b.Highlights
	}
	if b.ImageURLs != nil {
		tour.ReplaceImageURLs(b.ImageURLs)
	}
	if b.IsActive != nil {
		tour.IsActive = b.IsActive
	}

	if err := h.tours.Save(tour); err != nil {
		return nil, huma.Error500InternalServerError("Failed to update tour: " + err.Error())
	}
	return &TourResponse{Body: NewTourView(tour)}, nil
}

type DeleteTourRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *TourHandler) HandleDelete(ctx context.Context, input *DeleteTourRequest) (*MessageResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	tour, err := h.findTour(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.tours.Delete(tour); err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete tour: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Tour deleted successfully"
	return res, nil
}
