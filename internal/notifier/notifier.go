package notifier

import "github.com/azurvoyages/tours-api/internal/models"

type Notifier interface {
	NotifyBooking(booking *models.Booking, tour *models.Tour) error
}
