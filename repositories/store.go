package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"scraper.local/instagram-crawler/models"
)

const uniqueViolationCode = "23505"

type PgStore struct {
	Db *gorm.DB
}

func (s *PgStore) Begin() (Tx, error) {
	tx := s.Db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &pgTx{
		db:        tx,
		accounts:  &AccountsRepository{Db: tx},
		locations: &LocationsRepository{Db: tx},
		posts:     &PostsRepository{Db: tx},
	}, nil
}

func (s *PgStore) RandomAccountIDs(limit int) ([]int64, error) {
	accounts := &AccountsRepository{Db: s.Db}
	return accounts.Random(limit)
}

type pgTx struct {
	db        *gorm.DB
	accounts  *AccountsRepository
	locations *LocationsRepository
	posts     *PostsRepository
}

func (t *pgTx) Account(id int64) (*models.Account, error) {
	return t.accounts.Find(id)
}

func (t *pgTx) CreateAccount(id int64) (*models.Account, error) {
	entity, err := t.accounts.Create(id)
	if err != nil {
		return nil, translateError(err)
	}
	return entity, nil
}

func (t *pgTx) SaveAccount(account *models.Account) error {
	return translateError(t.accounts.Save(account))
}

func (t *pgTx) Location(id int64) (*models.Location, error) {
	return t.locations.Find(id)
}

func (t *pgTx) CreateLocation(id int64, name string, latitude float64, longitude float64) (*models.Location, error) {
	entity, err := t.locations.Create(id, name, latitude, longitude)
	if err != nil {
		return nil, translateError(err)
	}
	return entity, nil
}

func (t *pgTx) PostExists(id int64) (bool, error) {
	return t.posts.IsExists(id)
}

func (t *pgTx) CreatePost(post *models.Post) error {
	return translateError(t.posts.Create(post))
}

func (t *pgTx) Commit() error {
	return translateError(t.db.Commit().Error)
}

func (t *pgTx) Rollback() error {
	return t.db.Rollback().Error
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
