package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DirectionAirportToCity = "airport-to-city"
	DirectionCityToAirport = "city-to-airport"
)

type ShuttleSchedule struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	DepartureTime string    `gorm:"column:departure_time;size:8" json:"departureTime"`
	ArrivalTime   string    `gorm:"column:arrival_time;size:8" json:"arrivalTime"`
	Route         string    `gorm:"not null" json:"route"`
	Price         string    `gorm:"type:decimal(10,2)" json:"price"`
	IsActive      *bool     `gorm:"column:is_active;default:true" json:"isActive"`
	Direction     string    `json:"direction"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (s *ShuttleSchedule) TableName() string {
	return "shuttle_schedules"
}

func (s *ShuttleSchedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
