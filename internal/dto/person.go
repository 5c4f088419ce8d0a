package dto

import (
	"time"

	"github.com/aoideee/people-books-api/internal/data"
)

// PersonDTO is the JSON shape of a person.
type PersonDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"max=80"`
	LastName  string `json:"last_name"  validate:"max=80"`
	Address   string `json:"address"    validate:"max=100"`
	Gender    string `json:"gender"     validate:"max=6"`

	// Display-only fields; never persisted.
	BirthDay      *time.Time `json:"birth_day,omitempty"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	SensitiveData string     `json:"sensitive_data,omitempty"`

	Links Links `json:"links,omitempty"`
}

// NewPersonDTO copies the persisted fields of p into a new DTO.
func NewPersonDTO(p *data.Person) *PersonDTO {
	return &PersonDTO{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Address:   p.Address,
		Gender:    p.Gender,
	}
}

// NewPersonDTOs maps persons in order.
func NewPersonDTOs(persons []*data.Person) []*PersonDTO {
	out := make([]*PersonDTO, 0, len(persons))
	for _, p := range persons {
		out = append(out, NewPersonDTO(p))
	}
	return out
}

// Entity returns the persistable part of d.
func (d *PersonDTO) Entity() *data.Person {
	return &data.Person{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Address:   d.Address,
		Gender:    d.Gender,
	}
}
