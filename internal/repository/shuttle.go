package repository

import (
	"gorm.io/gorm"

	"github.com/azurvoyages/tours-api/internal/models"
)

type ShuttleRepository struct {
	db *gorm.DB
}

func NewShuttleRepository(db *gorm.DB) *ShuttleRepository {
	return &ShuttleRepository{db: db}
}

// ShuttleFilter narrows List. Zero values mean "no constraint".
type ShuttleFilter struct {
	ActiveOnly bool
	Direction  string
}

func (r *ShuttleRepository) List(filter ShuttleFilter) ([]models.ShuttleSchedule, error) {
	var schedules []models.ShuttleSchedule
	q := r.db.Order("departure_time ASC")
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Direction != "" {
		q = q.Where("direction = ?", filter.Direction)
	}
	if err := q.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ShuttleRepository) Find(id string) (*models.ShuttleSchedule, error) {
	var schedule models.ShuttleSchedule
	if err := r.db.First(&schedule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ShuttleRepository) Create(schedule *models.ShuttleSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *ShuttleRepository) Save(schedule *models.ShuttleSchedule) error {
	return r.db.Save(schedule).Error
}

func (r *ShuttleRepository) Delete(schedule *models.ShuttleSchedule) error {
	return r.db.Delete(schedule).Error
}
