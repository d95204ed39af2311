package repository

import (
	"gorm.io/gorm"

	"github.com/azurvoyages/tours-api/internal/models"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// BookingFilter narrows List. Zero values mean "no constraint".
type BookingFilter struct {
	Status    string
	UserEmail string
	TourID    string
}

func (r *BookingRepository) List(filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.Order("booking_date DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.UserEmail != "" {
		q = q.Where("user_email = ?", filter.UserEmail)
	}
	if filter.TourID != "" {
		q = q.Where("tour_id = ?", filter.TourID)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) Find(id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepository) Save(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

func (r *BookingRepository) Delete(booking *models.Booking) error {
	return r.db.Delete(booking).Error
}
