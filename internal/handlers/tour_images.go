package handlers

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/azurvoyages/tours-api/internal/auth"
	"github.com/azurvoyages/tours-api/internal/models"
)

// TourImagesView is the tour excerpt returned by the image
// association operations.
type TourImagesView struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	ImageURLs []string `json:"imageUrls"`
}

func newTourImagesView(t *models.Tour) TourImagesView {
	return TourImagesView{
		ID:        t.ID,
		Title:     t.Title,
		ImageURLs: t.ImageURLs(),
	}
}

type AddTourImagesRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		ImageURLs *[]string `json:"imageUrls,omitempty" doc:"Image URLs to append"`
	}
}

type AddTourImagesResponse struct {
	Body struct {
		Message   string         `json:"message"`
		Tour      TourImagesView `json:"tour"`
		AddedURLs []string       `json:"addedUrls"`
	}
}

// HandleAddImages appends URLs to the tour's image list, skipping
// blanks and entries already present. Repeating the same input leaves
// the list unchanged.
func (h *TourHandler) HandleAddImages(ctx context.Context, input *AddTourImagesRequest) (*AddTourImagesResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	tour, err := h.findTour(input.ID)
	if err != nil {
		return nil, err
	}

	if input.Body.ImageURLs == nil {
		return nil, huma.Error400BadRequest(`The "imageUrls" field is required and must be an array`)
	}

	added := []string{}
	for _, url := range *input.Body.ImageURLs {
		if tour.AddImageURL(url) {
			added = append(added, url)
		}
	}

	if err := h.tours.UpdateImageURLs(tour); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save images: " + err.Error())
	}

	res := &AddTourImagesResponse{}
	res.Body.Message = fmt.Sprintf("%d image(s) added successfully", len(added))
	res.Body.Tour = newTourImagesView(tour)
	res.Body.AddedURLs = added
	return res, nil
}

type ReplaceTourImagesRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		ImageURLs *[]string `json:"imageUrls,omitempty" doc:"Full replacement image URL list"`
	}
}

type ReplaceTourImagesResponse struct {
	Body struct {
		Message string         `json:"message"`
		Tour    TourImagesView `json:"tour"`
	}
}

// HandleReplaceImages discards the tour's image list and installs the
// given one, dropping blank entries. Unlike add, replace does not
// de-duplicate; the discrepancy is deliberate and documented.
func (h *TourHandler) HandleReplaceImages(ctx context.Context, input *ReplaceTourImagesRequest) (*ReplaceTourImagesResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	tour, err := h.findTour(input.ID)
	if err != nil {
		return nil, err
	}

	if input.Body.ImageURLs == nil {
		return nil, huma.Error400BadRequest(`The "imageUrls" field is required and must be an array`)
	}

	tour.ReplaceImageURLs(*input.Body.ImageURLs)

	if err := h.tours.UpdateImageURLs(tour); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save images: " + err.Error())
	}

	res := &ReplaceTourImagesResponse{}
	res.Body.Message = "Images updated successfully"
	res.Body.Tour = newTourImagesView(tour)
	return res, nil
}

type RemoveTourImageRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body struct {
		ImageURL string `json:"imageUrl,omitempty" doc:"Image URL to remove"`
	}
}

type RemoveTourImageResponse struct {
	Body struct {
		Message string         `json:"message"`
		Tour    TourImagesView `json:"tour"`
	}
}

// HandleRemoveImage removes the first exact match from the list.
// Removing a URL that is not present succeeds without changing
// anything.
func (h *TourHandler) HandleRemoveImage(ctx context.Context, input *RemoveTourImageRequest) (*RemoveTourImageResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	tour, err := h.findTour(input.ID)
	if err != nil {
		return nil, err
	}

	if input.Body.ImageURL == "" {
		return nil, huma.Error400BadRequest(`The "imageUrl" field is required`)
	}

	tour.RemoveImageURL(input.Body.ImageURL)

	if err := h.tours.UpdateImageURLs(tour); err != nil {
		return nil, huma.Error500InternalServerError("Failed to save images: " + err.Error())
	}

	res := &RemoveTourImageResponse{}
	res.Body.Message = "Image removed successfully"
	res.Body.Tour = newTourImagesView(tour)
	return res, nil
}
