package service

import (
	"context"
	"log/slog"

	"github.com/aoideee/people-books-api/internal/data"
	"github.com/aoideee/people-books-api/internal/dto"
	domainerrors "github.com/aoideee/people-books-api/internal/errors"
)

// PersonService implements the person operations on top of a repository.
type PersonService struct {
	repo    data.Repository[data.Person]
	logger  *slog.Logger
	baseURL string
}

// NewPersonService creates a PersonService. baseURL prefixes every link href.
func NewPersonService(repo data.Repository[data.Person], logger *slog.Logger, baseURL string) *PersonService {
	return &PersonService{repo: repo, logger: logger, baseURL: baseURL}
}

// FindAll returns every person selected by f.
func (s *PersonService) FindAll(ctx context.Context, f data.Filters) ([]*dto.PersonDTO, error) {
	s.logger.Info("finding all persons")

	persons, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, storeError(err)
	}

	dtos := dto.NewPersonDTOs(persons)
	for _, d := range dtos {
		s.addLinks(d)
	}
	return dtos, nil
}

// Count returns the number of stored persons.
func (s *PersonService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, storeError(err)
	}
	return n, nil
}

// FindByID returns the person with the given id.
func (s *PersonService) FindByID(ctx context.Context, id int64) (*dto.PersonDTO, error) {
	s.logger.Info("finding one person", "id", id)

	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	d := dto.NewPersonDTO(person)
	s.addLinks(d)
	return d, nil
}

// Create persists a new person with a store-assigned id.
func (s *PersonService) Create(ctx context.Context, person *dto.PersonDTO) (*dto.PersonDTO, error) {
	if person == nil {
		return nil, domainerrors.RequiredObjectIsNull()
	}

	s.logger.Info("creating one person")

	entity := person.Entity()
	entity.ID = 0
	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, storeError(err)
	}

	d := dto.NewPersonDTO(entity)
	s.addLinks(d)
	return d, nil
}

// Update overwrites first name, last name, address and gender of the
// stored person with person.ID.
func (s *PersonService) Update(ctx context.Context, person *dto.PersonDTO) (*dto.PersonDTO, error) {
	if person == nil {
		return nil, domainerrors.RequiredObjectIsNull()
	}

	s.logger.Info("updating one person", "id", person.ID)

	entity, err := s.repo.FindByID(ctx, person.ID)
	if err != nil {
		return nil, storeError(err)
	}

	entity.FirstName = person.FirstName
	entity.LastName = person.LastName
	entity.Address = person.Address
	entity.Gender = person.Gender

	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, storeError(err)
	}

	d := dto.NewPersonDTO(entity)
	s.addLinks(d)
	return d, nil
}

// Delete removes the person with the given id.
func (s *PersonService) Delete(ctx context.Context, id int64) error {
	s.logger.Info("deleting one person", "id", id)

	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeError(err)
	}
	return storeError(s.repo.Delete(ctx, entity))
}

func (s *PersonService) addLinks(d *dto.PersonDTO) {
	d.Links = dto.BuildLinks(s.baseURL, dto.PersonBasePath, d.ID)
}
