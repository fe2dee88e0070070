package repositories

import (
	"errors"

	"scraper.local/instagram-crawler/models"
)

// ErrConflict wraps a unique-constraint violation. Another crawler process
// created the same row between our existence check and the write; callers
// roll back and count it against their fault budget.
var ErrConflict = errors.New("unique constraint violated")

// Store is the persistence gateway shared by every crawler process. The
// store's primary keys are the only cross-process coordination mechanism.
type Store interface {
	Begin() (Tx, error)
	RandomAccountIDs(limit int) ([]int64, error)
}

// Tx scopes all writes of one crawl iteration to a single transaction.
type Tx interface {
	Account(id int64) (*models.Account, error)
	CreateAccount(id int64) (*models.Account, error)
	SaveAccount(account *models.Account) error
	Location(id int64) (*models.Location, error)
	CreateLocation(id int64, name string, latitude float64, longitude float64) (*models.Location, error)
	PostExists(id int64) (bool, error)
	CreatePost(post *models.Post) error
	Commit() error
	Rollback() error
}
