package common

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var dbPool *sql.DB

func NewDBPool() *sql.DB {
	if dbPool == nil {
		dsn := GetEnvString("DB_DSN")
		pool, err := sql.Open("pgx", dsn)
		if err != nil {
			panic(err)
		}
		pool.SetMaxIdleConns(10)
		pool.SetMaxOpenConns(20)
		pool.SetConnMaxLifetime(5 * time.Minute)
		dbPool = pool
	}
	return dbPool
}

func NewDB() *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: NewDBPool(),
	}), &gorm.Config{})
	if errors.Is(err, context.DeadlineExceeded) {
		return NewDB()
	}
	if err != nil {
		panic(err)
	}
	return db
}
