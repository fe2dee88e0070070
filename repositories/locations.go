package repositories

import (
	"errors"

	"gorm.io/gorm"

	"scraper.local/instagram-crawler/models"
)

type LocationsRepository struct {
	Db *gorm.DB
}

func (r *LocationsRepository) Find(id int64) (*models.Location, error) {
	var entity models.Location
	result := r.Db.First(&entity, "id=?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &entity, nil
}

func (r *LocationsRepository) Create(id int64, name string, latitude float64, longitude float64) (*models.Location, error) {
	entity := &models.Location{
		ID:        id,
		Name:      name,
		Latitude:  latitude,
		Longitude: longitude,
	}
	if err := r.Db.Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}
