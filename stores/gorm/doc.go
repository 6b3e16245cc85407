// Package gorm provides a GORM-based implementation of the authgate
// UserStore. It works with any database GORM supports (PostgreSQL, MySQL,
// SQLite, etc.) and is the backend to use for production deployments.
//
// # Database Schema
//
// A single table:
//   - users: id, email (unique index), password_hash, created_at
//
// The unique index on email is what makes concurrent signups for the same
// address resolve to exactly one success; the store reports the loser as
// authgate.ErrUserExists.
//
// # Usage
//
// Open the DB with TranslateError so GORM surfaces unique-constraint
// violations as gorm.ErrDuplicatedKey across dialects:
//
//	db, _ := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	userStore := gormstore.NewUserStore(db)
package gorm
