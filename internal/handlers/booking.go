package handlers

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"

	"github.com/azurvoyages/tours-api/internal/auth"
	"github.com/azurvoyages/tours-api/internal/models"
	"github.com/azurvoyages/tours-api/internal/notifier"
	"github.com/azurvoyages/tours-api/internal/repository"
)

const bookingDateLayout = "2006-01-02"

type BookingHandler struct {
	bookings    *repository.BookingRepository
	tours       *repository.TourRepository
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewBookingHandler(bookings *repository.BookingRepository, tours *repository.TourRepository, n notifier.Notifier, authHandler *auth.AuthHandler) *BookingHandler {
	return &BookingHandler{bookings: bookings, tours: tours, notifier: n, authHandler: authHandler}
}

type BookingView struct {
	ID           string    `json:"id"`
	TourID       *string   `json:"tourId"`
	UserEmail    string    `json:"userEmail"`
	UserName     string    `json:"userName"`
	BookingDate  string    `json:"bookingDate"`
	Participants int       `json:"participants"`
	TotalPrice   string    `json:"totalPrice"`
	Status       string    `json:"status"`
	PaymentID    *string   `json:"paymentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewBookingView(b *models.Booking) BookingView {
	return BookingView{
		ID:           b.ID,
		TourID:       b.TourID,
		UserEmail:    b.UserEmail,
		UserName:     b.UserName,
		BookingDate:  b.BookingDate.Format(bookingDateLayout),
		Participants: b.Participants,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status,
		PaymentID:    b.PaymentID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func validBookingStatus(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
		return true
	}
	return false
}

func validEmailAddress(address string) bool {
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}

type ListBookingsRequest struct {
	auth.AuthInput
	Status string `query:"status" doc:"Filter by status: pending, confirmed or cancelled"`
	Email  string `query:"email" doc:"Filter by customer email"`
	Tour   string `query:"tour" doc:"Filter by tour ID"`
}

type ListBookingsResponse struct {
	Body struct {
		Bookings []BookingView `json:"bookings"`
	}
}

func (h *BookingHandler) HandleList(ctx context.Context, input *ListBookingsRequest) (*ListBookingsResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleUser); err != nil {
		return nil, err
	}

	if input.Status != "" && !validBookingStatus(input.Status) {
		return nil, huma.Error400BadRequest(`Status must be "pending", "confirmed" or "cancelled"`)
	}

	bookings, err := h.bookings.List(repository.BookingFilter{
		Status:    input.Status,
		UserEmail: input.Email,
		TourID:    input.Tour,
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}

	res := &ListBookingsResponse{}
	res.Body.Bookings = make([]BookingView, 0, len(bookings))
	for i := range bookings {
		res.Body.Bookings = append(res.Body.Bookings, NewBookingView(&bookings[i]))
	}
	return res, nil
}

type GetBookingRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

type BookingResponse struct {
	Body BookingView
}

func (h *BookingHandler) HandleGet(ctx context.Context, input *GetBookingRequest) (*BookingResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleUser); err != nil {
		return nil, err
	}

	booking, err := h.findBooking(input.ID)
	if err != nil {
		return nil, err
	}
	return &BookingResponse{Body: NewBookingView(booking)}, nil
}

func (h *BookingHandler) findBooking(id string) (*models.Booking, error) {
	booking, err := h.bookings.Find(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Booking not found")
		}
		return nil, huma.Error500InternalServerError("Database error: " + err.Error())
	}
	return booking, nil
}

type BookingWriteBody struct {
	TourID       *string `json:"tourId,omitempty" doc:"Optional tour reference"`
	UserEmail    string  `json:"userEmail,omitempty"`
	UserName     string  `json:"userName,omitempty"`
	BookingDate  string  `json:"bookingDate,omitempty" doc:"Date, YYYY-MM-DD"`
	Participants int     `json:"participants,omitempty"`
	TotalPrice   string  `json:"totalPrice,omitempty" doc:"Positive decimal"`
	Status       string  `json:"status,omitempty" doc:"pending, confirmed or cancelled"`
	PaymentID    *string `json:"paymentId,omitempty" doc:"Payment reference; empty string clears it"`
}

type CreateBookingRequest struct {
	auth.AuthInput
	Body BookingWriteBody
}

func (h *BookingHandler) HandleCreate(ctx context.Context, input *CreateBookingRequest) (*BookingResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleUser); err != nil {
		return nil, err
	}

	b := input.Body
	if b.UserEmail == "" || b.UserName == "" || b.BookingDate == "" {
		return nil, huma.Error400BadRequest("userEmail, userName and bookingDate are required")
	}
	if !validEmailAddress(b.UserEmail) {
		return nil, huma.Error400BadRequest("userEmail is not a valid email address")
	}
	date, err := time.Parse(bookingDateLayout, b.BookingDate)
	if err != nil {
		return nil, huma.Error400BadRequest("bookingDate must be a date in YYYY-MM-DD format")
	}
	if b.Participants <= 0 {
		return nil, huma.Error400BadRequest("Participants must be greater than 0")
	}
	if !positiveDecimal(b.TotalPrice) {
		return nil, huma.Error400BadRequest("totalPrice must be a positive decimal")
	}
	if b.Status != "" && !validBookingStatus(b.Status) {
		return nil, huma.Error400BadRequest(`Status must be "pending", "confirmed" or "cancelled"`)
	}

	var tour *models.Tour
	if b.TourID != nil && *b.TourID != "" {
		tour, err = h.tours.Find(*b.TourID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, huma.Error404NotFound("Tour not found")
			}
			return nil, huma.Error500InternalServerError("Database error: " + err.Error())
		}
	}

	booking := models.Booking{
		UserEmail:    b.UserEmail,
		UserName:     b.UserName,
		BookingDate:  date,
		Participants: b.Participants,
		TotalPrice:   b.TotalPrice,
		Status:       b.Status,
		PaymentID:    b.PaymentID,
	}
	if tour != nil {
		booking.TourID = &tour.ID
	}

	if err := h.bookings.Create(&booking); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create booking: " + err.Error())
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyBooking(&booking, tour); err != nil {
			log.Printf("Failed to send booking notification: %v", err)
		}
	}

	return &BookingResponse{Body: NewBookingView(&booking)}, nil
}

type UpdateBookingRequest struct {
	auth.AuthInput
	ID   string `path:"id"`
	Body BookingWriteBody
}

func (h *BookingHandler) HandleUpdate(ctx context.Context, input *UpdateBookingRequest) (*BookingResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	booking, err := h.findBooking(input.ID)
	if err != nil {
		return nil, err
	}

	b := input.Body
	if b.UserEmail != "" {
		if !validEmailAddress(b.UserEmail) {
			return nil, huma.Error400BadRequest("userEmail is not a valid email address")
		}
		booking.UserEmail = b.UserEmail
	}
	if b.UserName != "" {
		booking.UserName = b.UserName
	}
	if b.BookingDate != "" {
		date, err := time.Parse(bookingDateLayout, b.BookingDate)
		if err != nil {
			return nil, huma.Error400BadRequest("bookingDate must be a date in YYYY-MM-DD format")
		}
		booking.BookingDate = date
	}
	if b.Participants != 0 {
		if b.Participants < 0 {
			return nil, huma.Error400BadRequest("Participants must be greater than 0")
		}
		booking.Participants = b.Participants
	}
	if b.TotalPrice != "" {
		if !positiveDecimal(b.TotalPrice) {
			return nil, huma.Error400BadRequest("totalPrice must be a positive decimal")
		}
		booking.TotalPrice = b.TotalPrice
	}
	if b.Status != "" {
		if !validBookingStatus(b.Status) {
			return nil, huma.Error400BadRequest(`Status must be "pending", "confirmed" or "cancelled"`)
		}
		booking.Status = b.Status
	}
	if b.PaymentID != nil {
		if *b.PaymentID == "" {
			booking.PaymentID = nil
		} else {
			booking.PaymentID = b.PaymentID
		}
	}
	if b.TourID != nil {
		if *b.TourID == "" {
			booking.TourID = nil
		} else {
			if _, err := h.tours.Find(*b.TourID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, huma.Error404NotFound("Tour not found")
				}
				return nil, huma.Error500InternalServerError("Database error: " + err.Error())
			}
			booking.TourID = b.TourID
		}
	}

	if err := h.bookings.Save(booking); err != nil {
		return nil, huma.Error500InternalServerError("Failed to update booking: " + err.Error())
	}
	return &BookingResponse{Body: NewBookingView(booking)}, nil
}

type DeleteBookingRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *BookingHandler) HandleDelete(ctx context.Context, input *DeleteBookingRequest) (*MessageResponse, error) {
	if _, err := h.authHandler.AuthorizeRole(input.Authorization, models.RoleAdmin); err != nil {
		return nil, err
	}

	booking, err := h.findBooking(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.bookings.Delete(booking); err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete booking: " + err.Error())
	}

	res := &MessageResponse{}
	res.Body.Message = "Booking deleted successfully"
	return res, nil
}
