package repository

import (
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxPageSize = 100

// Page is a skip/limit window. Zero or negative limits fall back to the
// caller's default; limits above maxPageSize are capped.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) apply(db *gorm.DB, defaultLimit int) *gorm.DB {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	return db.Offset(p.Skip).Limit(p.Limit)
}

// forUpdate takes a row lock on PostgreSQL. SQLite ignores the clause and
// serializes writers on its own.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// jsonArrayContains matches a JSON string-array column holding an element.
// The text form works on both jsonb and SQLite JSON columns.
func jsonArrayContains(column string) string {
	return "CAST(" + column + " AS TEXT) LIKE ?"
}

func jsonElementPattern(v string) string {
	b, _ := json.Marshal(v)
	return "%" + string(b) + "%"
}
