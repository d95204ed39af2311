package repository

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/azurvoyages/tours-api/internal/models"
)

type TourRepository struct {
	db *gorm.DB
}

func NewTourRepository(db *gorm.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) Find(id string) (*models.Tour, error) {
	var tour models.Tour
	if err := r.db.First(&tour, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepository) List(activeOnly bool) ([]models.Tour, error) {
	var tours []models.Tour
	q := r.db.Order("created_at DESC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&tours).Error; err != nil {
		return nil, err
	}
	return tours, nil
}

func (r *TourRepository) Create(tour *models.Tour) error {
	return r.db.Create(tour).Error
}

func (r *TourRepository) Save(tour *models.Tour) error {
	return r.db.Save(tour).Error
}

func (r *TourRepository) Delete(tour *models.Tour) error {
	return r.db.Delete(tour).Error
}

// UpdateImageURLs persists the image list column unconditionally. The
// mutators on Tour report whether they changed anything, but the write
// itself never relies on change detection: an image-list save is
// always considered dirty.
func (r *TourRepository) UpdateImageURLs(tour *models.Tour) error {
	if tour.Images == nil {
		tour.Images = datatypes.JSONSlice[string]{}
	}
	return r.db.Model(tour).Update("image_urls", tour.Images).Error
}
