package repositories

import (
	"errors"

	"gorm.io/gorm"

	"scraper.local/instagram-crawler/models"
)

type PostsRepository struct {
	Db *gorm.DB
}

func (r *PostsRepository) IsExists(id int64) (bool, error) {
	var entity models.Post
	result := r.Db.Select("id").Take(&entity, "id=?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if result.Error != nil {
		return false, result.Error
	}
	return true, nil
}

func (r *PostsRepository) Create(post *models.Post) error {
	return r.Db.Create(post).Error
}
