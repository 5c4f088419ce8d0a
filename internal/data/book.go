// Package data provides the entities and database interaction logic for
// the person and book resources.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID         int64     // Unique identifier assigned by the database
	Title      string    // Title of the book
	Author     string    // Author name
	Price      float64   // Sale price
	LaunchDate time.Time // Date the book was launched
}

// BookSortSafeList lists the sort values accepted for book listings.
var BookSortSafeList = []string{
	"id", "title", "author", "price", "launch_date",
	"-id", "-title", "-author", "-price", "-launch_date",
}

// BookModel wraps a *sql.DB connection and provides methods for
// creating, reading, updating, and deleting book records.
type BookModel struct {
	DB      *sql.DB // Shared database connection pool
	Dialect Dialect // SQL flavour of DB
}

var _ Repository[Book] = BookModel{}

const bookColumns = `id, title, author, price, launch_date`

func scanBook(row rowScanner) (*Book, error) {
	var (
		b      Book
		title  sql.NullString
		author sql.NullString
	)
	err := row.Scan(&b.ID, &title, &author, &b.Price, scanTime(&b.LaunchDate))
	if err != nil {
		return nil, err
	}
	b.Title = title.String
	b.Author = author.String
	return &b, nil
}

// FindAll retrieves books ordered and paged according to f.
func (m BookModel) FindAll(ctx context.Context, f Filters) ([]*Book, error) {
	tail, args := f.orderAndPage()
	query := m.Dialect.rebind(`SELECT ` + bookColumns + ` FROM books ` + tail)

	// Execute the SELECT and get a result set (rows).
	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	// Always close the result set when we are done to free the database connection.
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}

	// Check for any error that occurred while iterating the rows.
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// FindByID retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) FindByID(ctx context.Context, id int64) (*Book, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := m.Dialect.rebind(`SELECT ` + bookColumns + ` FROM books WHERE id = ?`)

	b, err := scanBook(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, fmt.Errorf("get book %d: %w", id, err)
		}
	}
	return b, nil
}

// Save inserts b when b.ID is zero, writing the database-assigned id back
// into the struct, and otherwise overwrites the row with the same id.
func (m BookModel) Save(ctx context.Context, b *Book) error {
	if b.ID == 0 {
		query := m.Dialect.rebind(`
			INSERT INTO books (title, author, price, launch_date)
			VALUES (?, ?, ?, ?)
			RETURNING id`)

		err := m.DB.QueryRowContext(ctx, query,
			b.Title,
			b.Author,
			b.Price,
			m.Dialect.timeArg(b.LaunchDate),
		).Scan(&b.ID)
		if err != nil {
			return fmt.Errorf("insert book: %w", err)
		}
		return nil
	}

	query := m.Dialect.rebind(`
		UPDATE books
		SET title = ?, author = ?, price = ?, launch_date = ?
		WHERE id = ?`)

	// Collect all arguments in order matching the placeholders above.
	args := []any{
		b.Title,
		b.Author,
		b.Price,
		m.Dialect.timeArg(b.LaunchDate),
		b.ID,
	}

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update book %d: %w", b.ID, err)
	}
	return expectOneRow(result)
}

// Delete removes the book with b.ID from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(ctx context.Context, b *Book) error {
	// Guard against obviously bad IDs before touching the database.
	if b.ID < 1 {
		return ErrRecordNotFound
	}

	result, err := m.DB.ExecContext(ctx, m.Dialect.rebind(`DELETE FROM books WHERE id = ?`), b.ID)
	if err != nil {
		return fmt.Errorf("delete book %d: %w", b.ID, err)
	}
	return expectOneRow(result)
}

// Count returns the number of stored books.
func (m BookModel) Count(ctx context.Context) (int, error) {
	var n int
	if err := m.DB.QueryRowContext(ctx, `SELECT count(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}
