package dto

import (
	"time"

	"github.com/aoideee/people-books-api/internal/data"
)

// BookDTO is the JSON shape of a book.
type BookDTO struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Price      float64   `json:"price"       validate:"gte=0"`
	LaunchDate time.Time `json:"launch_date"`
	Links      Links     `json:"links,omitempty"`
}

// NewBookDTO copies b into a new DTO.
func NewBookDTO(b *data.Book) *BookDTO {
	return &BookDTO{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Price:      b.Price,
		LaunchDate: b.LaunchDate,
	}
}

// NewBookDTOs maps books in order.
func NewBookDTOs(books []*data.Book) []*BookDTO {
	out := make([]*BookDTO, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookDTO(b))
	}
	return out
}

// Entity returns the persistable part of d.
func (d *BookDTO) Entity() *data.Book {
	return &data.Book{
		ID:         d.ID,
		Title:      d.Title,
		Author:     d.Author,
		Price:      d.Price,
		LaunchDate: d.LaunchDate,
	}
}
