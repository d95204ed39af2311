package handlers

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/azurvoyages/tours-api/internal/auth"
	"github.com/azurvoyages/tours-api/internal/models"
	"github.com/azurvoyages/tours-api/internal/repository"
)

// HH:MM:SS, 24-hour clock.
var timeOfDayPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]:[0-5][0-9]$`)

type ShuttleHandler struct {
	shuttles    *repository.ShuttleRepository
	authHandler *auth.AuthHandler
}

func NewShuttleHandler(shuttles *repository.ShuttleRepository, authHandler *auth.AuthHandler) *ShuttleHandler {
	return &ShuttleHandler{shuttles: shuttles, authHandler: authHandler}
}

type ShuttleView struct {
	ID            string    `json:"id"`
	DepartureTime string    `json:"departureTime"`
	ArrivalTime   string    `json:"arrivalTime"`
	Route         string    `json:"route"`
	Price         string    `json:"price"`
	IsActive      bool      `json:"isActive"`
	Direction     string    `json:"direction"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewShuttleView(s *models.ShuttleSchedule) ShuttleView {
	return ShuttleView{
		ID:            s.ID,
		DepartureTime: s.DepartureTime,
		ArrivalTime:   s.ArrivalTime,
		Route:         s.Route,
		Price:         s.Price,
		IsActive:      s.IsActive == nil || *s.IsActive,
		Direction:     s.Direction,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func validDirection(direction string) bool {
	return direction == models.DirectionAirportToCity || direction == models.DirectionCityToAirport
}

func (h *ShuttleHandler) findSchedule(id string) (*models.ShuttleSchedule, error) {
	schedule, err := h.shuttles.Find(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Shuttle schedule not found")
		}
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}
	return schedule, nil
}

type ListShuttlesRequest struct {
	auth.AuthInput
	Active    bool   `query:"active" doc:"Only list active schedules"`
	Direction string `query:"direction" doc:"Filter by direction: airport-to-city or city-to-airport"`
}

type ListShuttlesResponse struct {
	Body struct {
		Schedules []ShuttleView `json:"schedules"`
	}
}

func (h *ShuttleHandler) HandleList(ctx context.Context, input *ListShuttlesRequest) (*ListShuttlesResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleUser); err != nil {
		return nil, err
	}

	if input.Direction != "" && !validDirection(input.Direction) {
		return nil, huma.Error400BadRequest(`Direction must be "airport-to-city" or "city-to-airport"`)
	}

	schedules, err := h.shuttles.List(repository.ShuttleFilter{
		ActiveOnly: input.Active,
		Direction:  input.Direction,
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}

	res := &ListShuttlesResponse{}
	res.Body.Schedules = make([]ShuttleView, 0, len(schedules))
	for i := range schedules {
		res.Body.Schedules = append(res.Body.Schedules, NewShuttleView(&schedules[i]))
	}
	return res, nil
}

type GetShuttleRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

type ShuttleResponse struct {
	Body ShuttleView
}

func (h *ShuttleHandler) HandleGet(ctx context.Context, input *GetShuttleRequest) (*ShuttleResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleUser); err != nil {
		return nil, err
	}

	schedule, err := h.findSchedule(input.ID)
	if err != nil {
		return nil, err
	}
	return &ShuttleResponse{Body: NewShuttleView(schedule)}, nil
}

type ShuttleWriteBody struct {
	DepartureTime string `json:"departureTime,omitempty" doc:"HH:MM:SS"`
	ArrivalTime   string `json:"arrivalTime,omitempty" doc:"HH:MM:SS"`
	Route         string `json:"route,omitempty"`
	Price         string `json:"price,omitempty" doc:"Positive decimal"`
	IsActive      *bool  `json:"isActive,omitempty"`
	Direction     string `json:"direction,omitempty" doc:"airport-to-city or city-to-airport"`
}

type CreateShuttleRequest struct {
	auth.AuthInput
	Body ShuttleWriteBody
}

func (h *ShuttleHandler) HandleCreate(ctx context.Context, input *CreateShuttleRequest) (*ShuttleResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	b := input.Body
	if !timeOfDayPattern.MatchString(b.DepartureTime) {
		return nil, huma.Error400BadRequest("departureTime must be in HH:MM:SS format")
	}
	if !timeOfDayPattern.MatchString(b.ArrivalTime) {
		return nil, huma.Error400BadRequest("arrivalTime must be in HH:MM:SS format")
	}
	if b.Route == "" {
		return nil, huma.Error400BadRequest("Route is required")
	}
	if !positiveDecimal(b.Price) {
		return nil, huma.Error400BadRequest("Price must be a positive decimal")
	}
	if b.Direction != "" && !validDirection(b.Direction) {
		return nil, huma.Error400BadRequest(`Direction must be "airport-to-city" or "city-to-airport"`)
	}

	schedule := models.ShuttleSchedule{
		DepartureTime: b.DepartureTime,
		ArrivalTime:   b.ArrivalTime,
		Route:         b.Route,
		Price:         b.Price,
		IsActive:      b.IsActive,
		Direction:     b.Direction,
	}

	if err := h.shuttles.Create(&schedule); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create shuttle schedule: " + err.Error())
	}
	return &ShuttleResponse{Body: NewShuttleView(&schedule)}, nil
}

type UpdateShuttleRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body ShuttleWriteBody
}

func (h *ShuttleHandler) HandleUpdate(ctx context.Context, input *UpdateShuttleRequest) (*ShuttleResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	schedule, err := h.findSchedule(input.ID)
	if err != nil {
		return nil, err
	}

	b := input.Body
	if b.DepartureTime != "" {
		if !timeOfDayPattern.MatchString(b.DepartureTime) {
			return nil, huma.Error400BadRequest("departureTime must be in HH:MM:SS format")
		}
		schedule.DepartureTime = b.DepartureTime
	}
	if b.ArrivalTime != "" {
		if !timeOfDayPattern.MatchString(b.ArrivalTime) {
			return nil, huma.Error400BadRequest("arrivalTime must be in HH:MM:SS format")
		}
		schedule.ArrivalTime = b.ArrivalTime
	}
	if b.Route != "" {
		schedule.Route = b.Route
	}
	if b.Price != "" {
		if !positiveDecimal(b.Price) {
			return nil, huma.Error400BadRequest("Price must be a positive decimal")
		}
		schedule.Price = b.Price
	}
	if b.IsActive != nil {
		schedule.IsActive = b.IsActive
	}
	if b.Direction != "" {
		if !validDirection(b.Direction) {
			return nil, huma.Error400BadRequest(`Direction must be "airport-to-city" or "city-to-airport"`)
		}
		schedule.Direction = b.Direction
	}

	if err := h.shuttles.Save(schedule); err != nil {
		return nil, huma.Error500InternalServerError("Failed to update shuttle schedule: " + err.Error())
	}
	return &ShuttleResponse{Body: NewShuttleView(schedule)}, nil
}

type DeleteShuttleRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *ShuttleHandler) HandleDelete(ctx context.Context, input *DeleteShuttleRequest) (*MessageResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	schedule, err := h.findSchedule(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.shuttles.Delete(schedule); err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete shuttle schedule: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Shuttle schedule deleted successfully"
	return res, nil
}
