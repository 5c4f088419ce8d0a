// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Models is a top-level container that groups all repositories together.
// It is passed around the application via applicationDependencies so every
// service has access to the database without importing sql directly.
type Models struct {
	Persons PersonModel // Handles all database operations for the persons table
	Books   BookModel   // Handles all database operations for the books table
}

// NewModels constructs a Models value wired up to the given connection pool.
// The dialect decides placeholder syntax and how dates travel to the driver.
func NewModels(db *sql.DB, dialect Dialect) Models {
	return Models{
		Persons: PersonModel{DB: db, Dialect: dialect},
		Books:   BookModel{DB: db, Dialect: dialect},
	}
}

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// Repository is the persistence gateway shared by every entity type.
// Implementations key rows by an int64 identity assigned by the store.
type Repository[T any] interface {
	// FindAll returns the rows selected by f. A zero Filters returns every
	// row ordered by id.
	FindAll(ctx context.Context, f Filters) ([]*T, error)
	// FindByID returns ErrRecordNotFound if no row has the given id.
	FindByID(ctx context.Context, id int64) (*T, error)
	// Save inserts the entity when its id is zero, writing the new id back,
	// and otherwise overwrites the row with the same id.
	Save(ctx context.Context, entity *T) error
	// Delete removes the row matching the entity's id.
	Delete(ctx context.Context, entity *T) error
	// Count returns the number of stored rows.
	Count(ctx context.Context) (int, error)
}

// Filters holds pagination and sorting parameters extracted from URL query strings.
type Filters struct {
	Page         int      `json:"page"      validate:"omitempty,min=1,max=10000"` // Current page number (1-indexed)
	PageSize     int      `json:"page_size" validate:"omitempty,min=1,max=100"`   // Records per page; zero disables paging
	Sort         string   `json:"sort"`                                           // Column name to sort by (prefix with "-" for DESC)
	SortSafeList []string `json:"-"`                                              // Allowed sort values to prevent SQL injection
}

// SortAllowed reports whether Sort is empty or one of the safe-listed values.
func (f Filters) SortAllowed() bool {
	if f.Sort == "" {
		return true
	}
	for _, safe := range f.SortSafeList {
		if f.Sort == safe {
			return true
		}
	}
	return false
}

// sortColumn returns the validated column name for ORDER BY, defaulting to id.
func (f Filters) sortColumn() string {
	for _, safe := range f.SortSafeList {
		if f.Sort == safe {
			return strings.TrimPrefix(f.Sort, "-")
		}
	}
	return "id" // safe fallback
}

// sortDirection returns "ASC" or "DESC" based on the Sort prefix.
func (f Filters) sortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}
	return "ASC"
}

// paged reports whether a LIMIT/OFFSET clause should be applied.
func (f Filters) paged() bool { return f.PageSize > 0 }

// limit returns the SQL LIMIT value derived from PageSize.
func (f Filters) limit() int { return f.PageSize }

// offset returns the SQL OFFSET value derived from Page and PageSize.
func (f Filters) offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// orderAndPage renders the ORDER BY and optional LIMIT/OFFSET tail of a
// list query together with its arguments.
func (f Filters) orderAndPage() (string, []any) {
	clause := "ORDER BY " + f.sortColumn() + " " + f.sortDirection() + ", id ASC"
	if !f.paged() {
		return clause, nil
	}
	return clause + " LIMIT ? OFFSET ?", []any{f.limit(), f.offset()}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
