package repositories

import (
	"errors"

	"gorm.io/gorm"

	"scraper.local/instagram-crawler/models"
)

type AccountsRepository struct {
	Db *gorm.DB
}

func (r *AccountsRepository) Find(id int64) (*models.Account, error) {
	var entity models.Account
	result := r.Db.First(&entity, "id=?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &entity, nil
}

func (r *AccountsRepository) Create(id int64) (*models.Account, error) {
	entity := &models.Account{
		ID: id,
	}
	if err := r.Db.Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *AccountsRepository) Save(account *models.Account) error {
	return r.Db.Save(account).Error
}

// Random returns up to limit account ids sampled by the database.
// Postgres specific.
func (r *AccountsRepository) Random(limit int) ([]int64, error) {
	var ids []int64
	result := r.Db.Model(&models.Account{}).
		Order("random()").
		Limit(limit).
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}
