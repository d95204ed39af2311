package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Tour struct {
	ID          string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string                      `gorm:"not null" json:"title"`
	Description string                      `json:"description"`
	Price       string                      `gorm:"type:decimal(10,2)" json:"price"`
	Duration    string                      `json:"duration"`
	Highlights  datatypes.JSONSlice[string] `json:"highlights"`
	Images      datatypes.JSONSlice[string] `gorm:"column:image_urls" json:"imageUrls"`
	IsActive    *bool                       `gorm:"column:is_active;default:true" json:"isActive"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func (t *Tour) TableName() string {
	return "tours"
}

func (t *Tour) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave materializes the JSON list columns so a nil slice is
// never persisted: both columns are always a JSON array in the
// database, empty at worst.
func (t *Tour) BeforeSave(tx *gorm.DB) error {
	if t.Highlights == nil {
		t.Highlights = datatypes.JSONSlice[string]{}
	}
	if t.Images == nil {
		t.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}

// RawImageURLs returns the image list exactly as held, possibly nil,
// with no initialization side effects.
func (t *Tour) RawImageURLs() []string {
	return t.Images
}

// ImageURLs returns the image list, never nil.
func (t *Tour) ImageURLs() []string {
	if t.Images == nil {
		return []string{}
	}
	return t.Images
}

// AddImageURL appends the URL unless it is blank or already present.
// Reports whether the list changed.
func (t *Tour) AddImageURL(url string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	for _, existing := range t.Images {
		if existing == url {
			return false
		}
	}
	t.Images = append(t.Images, url)
	return true
}

// ReplaceImageURLs discards the current list and installs the given
// one, dropping blank entries. Duplicates in the input are kept: add
// de-duplicates, replace intentionally does not.
func (t *Tour) ReplaceImageURLs(urls []string) {
	filtered := make(datatypes.JSONSlice[string], 0, len(urls))
	for _, url := range urls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		filtered = append(filtered, url)
	}
	t.Images = filtered
}

// RemoveImageURL removes the first exact match and re-compacts the
// list. Removing an absent URL is a no-op. Reports whether the list
// changed.
func (t *Tour) RemoveImageURL(url string) bool {
	for i, existing := range t.Images {
		if existing == url {
			t.Images = append(t.Images[:i], t.Images[i+1:]...)
			return true
		}
	}
	return false
}
