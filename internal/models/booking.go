package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	TourID       *string   `gorm:"column:tour_id;type:uuid" json:"tourId"`
	Tour         *Tour     `gorm:"constraint:OnDelete:CASCADE" json:"tour,omitempty"`
	UserEmail    string    `gorm:"column:user_email;not null" json:"userEmail"`
	UserName     string    `gorm:"column:user_name;not null" json:"userName"`
	BookingDate  time.Time `gorm:"column:booking_date;type:date" json:"bookingDate"`
	Participants int       `json:"participants"`
	TotalPrice   string    `gorm:"column:total_price;type:decimal(10,2)" json:"totalPrice"`
	Status       string    `gorm:"default:pending" json:"status"`
	PaymentID    *string   `gorm:"column:payment_id" json:"paymentId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (b *Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
	return nil
}
