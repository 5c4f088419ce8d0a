package service

import (
	"context"
	"log/slog"

	"github.com/aoideee/people-books-api/internal/data"
	"github.com/aoideee/people-books-api/internal/dto"
	domainerrors "github.com/aoideee/people-books-api/internal/errors"
)

// BookService implements the book operations on top of a repository.
type BookService struct {
	repo    data.Repository[data.Book]
	logger  *slog.Logger
	baseURL string
}

// NewBookService creates a BookService. baseURL prefixes every link href.
func NewBookService(repo data.Repository[data.Book], logger *slog.Logger, baseURL string) *BookService {
	return &BookService{repo: repo, logger: logger, baseURL: baseURL}
}

// FindAll returns every book selected by f, each with its link set.
func (s *BookService) FindAll(ctx context.Context, f data.Filters) ([]*dto.BookDTO, error) {
	s.logger.Info("finding all books")

	books, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, storeError(err)
	}

	dtos := dto.NewBookDTOs(books)
	for _, d := range dtos {
		s.addLinks(d)
	}
	return dtos, nil
}

// Count returns the number of stored books.
func (s *BookService) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, storeError(err)
	}
	return n, nil
}

// FindByID returns the book with the given id.
func (s *BookService) FindByID(ctx context.Context, id int64) (*dto.BookDTO, error) {
	s.logger.Info("finding one book", "id", id)

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	d := dto.NewBookDTO(book)
	s.addLinks(d)
	return d, nil
}

// Create persists a new book. Any id on the payload is ignored; the store
// assigns one.
func (s *BookService) Create(ctx context.Context, book *dto.BookDTO) (*dto.BookDTO, error) {
	if book == nil {
		return nil, domainerrors.RequiredObjectIsNull()
	}

	s.logger.Info("creating one book", "title", book.Title, "launch_date", book.LaunchDate)

	entity := book.Entity()
	entity.ID = 0
	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, storeError(err)
	}

	d := dto.NewBookDTO(entity)
	s.addLinks(d)
	return d, nil
}

// Update overwrites the mutable fields of the stored book with book.ID.
func (s *BookService) Update(ctx context.Context, book *dto.BookDTO) (*dto.BookDTO, error) {
	if book == nil {
		return nil, domainerrors.RequiredObjectIsNull()
	}

	s.logger.Info("updating one book", "id", book.ID)

	entity, err := s.repo.FindByID(ctx, book.ID)
	if err != nil {
		return nil, storeError(err)
	}

	entity.Title = book.Title
	entity.Author = book.Author
	entity.Price = book.Price
	entity.LaunchDate = book.LaunchDate

	if err := s.repo.Save(ctx, entity); err != nil {
		return nil, storeError(err)
	}

	d := dto.NewBookDTO(entity)
	s.addLinks(d)
	return d, nil
}

// Delete removes the book with the given id.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	s.logger.Info("deleting one book", "id", id)

	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeError(err)
	}
	return storeError(s.repo.Delete(ctx, entity))
}

func (s *BookService) addLinks(d *dto.BookDTO) {
	d.Links = dto.BuildLinks(s.baseURL, dto.BookBasePath, d.ID)
}
