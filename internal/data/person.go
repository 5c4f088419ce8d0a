package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Person represents a single row of the "persons" table.
type Person struct {
	ID        int64  // Unique identifier assigned by the database
	FirstName string // Given name
	LastName  string // Family name
	Address   string // Postal address, free text
	Gender    string // Gender as supplied by the client
}

// PersonSortSafeList lists the sort values accepted for person listings.
var PersonSortSafeList = []string{"id", "first_name", "last_name", "-id", "-first_name", "-last_name"}

// PersonModel wraps a *sql.DB connection and implements Repository[Person].
type PersonModel struct {
	DB      *sql.DB // Shared database connection pool
	Dialect Dialect // SQL flavour of DB
}

var _ Repository[Person] = PersonModel{}

const personColumns = `id, first_name, last_name, address, gender`

func scanPerson(row rowScanner) (*Person, error) {
	var p Person
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Address, &p.Gender)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAll returns persons ordered and paged according to f.
func (m PersonModel) FindAll(ctx context.Context, f Filters) ([]*Person, error) {
	tail, args := f.orderAndPage()
	query := m.Dialect.rebind(`SELECT ` + personColumns + ` FROM persons ` + tail)

	rows, err := m.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}
	defer rows.Close()

	persons := []*Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return persons, nil
}

// FindByID retrieves a single person by primary key.
// Returns ErrRecordNotFound if no person with the given id exists.
func (m PersonModel) FindByID(ctx context.Context, id int64) (*Person, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := m.Dialect.rebind(`SELECT ` + personColumns + ` FROM persons WHERE id = ?`)

	p, err := scanPerson(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("get person %d: %w", id, err)
	}
	return p, nil
}

// Save inserts p when p.ID is zero and updates the existing row otherwise.
// On insert the database-assigned id is written back into p.
func (m PersonModel) Save(ctx context.Context, p *Person) error {
	if p.ID == 0 {
		query := m.Dialect.rebind(`
			INSERT INTO persons (first_name, last_name, address, gender)
			VALUES (?, ?, ?, ?)
			RETURNING id`)

		err := m.DB.QueryRowContext(ctx, query, p.FirstName, p.LastName, p.Address, p.Gender).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert person: %w", err)
		}
		return nil
	}

	query := m.Dialect.rebind(`
		UPDATE persons
		SET first_name = ?, last_name = ?, address = ?, gender = ?
		WHERE id = ?`)

	result, err := m.DB.ExecContext(ctx, query, p.FirstName, p.LastName, p.Address, p.Gender, p.ID)
	if err != nil {
		return fmt.Errorf("update person %d: %w", p.ID, err)
	}
	return expectOneRow(result)
}

// Delete removes the row matching p.ID.
func (m PersonModel) Delete(ctx context.Context, p *Person) error {
	if p.ID < 1 {
		return ErrRecordNotFound
	}

	result, err := m.DB.ExecContext(ctx, m.Dialect.rebind(`DELETE FROM persons WHERE id = ?`), p.ID)
	if err != nil {
		return fmt.Errorf("delete person %d: %w", p.ID, err)
	}
	return expectOneRow(result)
}

// Count returns the number of stored persons.
func (m PersonModel) Count(ctx context.Context) (int, error) {
	var n int
	if err := m.DB.QueryRowContext(ctx, `SELECT count(*) FROM persons`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return n, nil
}

// expectOneRow maps a write that touched no rows to ErrRecordNotFound.
func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
