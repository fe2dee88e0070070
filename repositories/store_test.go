package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateError(plain))
	assert.NotErrorIs(t, translateError(plain), ErrConflict)

	dup := &pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "posts_pkey"`,
	}
	assert.ErrorIs(t, translateError(dup), ErrConflict)
	assert.ErrorIs(t, translateError(fmt.Errorf("create post: %w", dup)), ErrConflict)
}
