package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aoideee/people-books-api/internal/data"
	"github.com/aoideee/people-books-api/internal/dto"
	domainerrors "github.com/aoideee/people-books-api/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8080"

func mockBook(n int) *data.Book {
	return &data.Book{
		ID:         int64(n),
		Title:      fmt.Sprintf("Title Test%d", n),
		Author:     fmt.Sprintf("Author Test%d", n),
		Price:      25,
		LaunchDate: time.Date(2017, 11, 29, 13, 50, 5, 0, time.UTC),
	}
}

func newBookFixture() (*BookService, *fakeRepo[data.Book]) {
	repo := newFakeRepo(func(b *data.Book) *int64 { return &b.ID })
	return NewBookService(repo, discardLogger(), testBaseURL), repo
}

// assertBookLinks checks the full five-entry link set of a book DTO.
func assertBookLinks(t *testing.T, d *dto.BookDTO) {
	t.Helper()
	require.Len(t, d.Links, 5)

	item := fmt.Sprintf("/api/book/v1/%d", d.ID)
	want := map[string]struct{ suffix, verb string }{
		dto.RelSelf:    {item, http.MethodGet},
		dto.RelFindAll: {"/api/book/v1", http.MethodGet},
		dto.RelCreate:  {"/api/book/v1", http.MethodPost},
		dto.RelUpdate:  {"/api/book/v1", http.MethodPut},
		dto.RelDelete:  {item, http.MethodDelete},
	}
	for rel, w := range want {
		link, ok := d.Links.Find(rel)
		require.True(t, ok, "missing %q link", rel)
		assert.True(t, strings.HasSuffix(link.Href, w.suffix), "%s href %q", rel, link.Href)
		assert.True(t, strings.HasPrefix(link.Href, testBaseURL), "%s href %q", rel, link.Href)
		assert.Equal(t, w.verb, link.Type, rel)
	}
}

func TestBookService_FindByID(t *testing.T) {
	svc, repo := newBookFixture()
	repo.put(mockBook(1))

	result, err := svc.FindByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "Title Test1", result.Title)
	assert.Equal(t, "Author Test1", result.Author)
	assert.Equal(t, 25.0, result.Price)
	assert.False(t, result.LaunchDate.IsZero())
	assertBookLinks(t, result)

	self, _ := result.Links.Find(dto.RelSelf)
	assert.Equal(t, "http://localhost:8080/api/book/v1/1", self.Href)
}

func TestBookService_FindByIDNotFound(t *testing.T) {
	svc, _ := newBookFixture()

	_, err := svc.FindByID(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrResourceNotFound))
	assert.ErrorIs(t, err, data.ErrRecordNotFound)
}

func TestBookService_FindAll(t *testing.T) {
	svc, repo := newBookFixture()
	for i := 1; i <= 14; i++ {
		repo.put(mockBook(i))
	}

	books, err := svc.FindAll(context.Background(), data.Filters{})
	require.NoError(t, err)
	require.Len(t, books, 14)

	for i, b := range books {
		n := i + 1
		assert.Equal(t, int64(n), b.ID)
		assert.Equal(t, fmt.Sprintf("Title Test%d", n), b.Title)
		assert.Equal(t, fmt.Sprintf("Author Test%d", n), b.Author)
		assertBookLinks(t, b)
	}

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 14, count)
}

func TestBookService_FindAllStoreError(t *testing.T) {
	svc, repo := newBookFixture()
	repo.err = errors.New("connection refused")

	_, err := svc.FindAll(context.Background(), data.Filters{})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInternal))
	assert.ErrorContains(t, err, "connection refused")

	_, err = svc.Count(context.Background())
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInternal))

	err = svc.Delete(context.Background(), 1)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInternal))
	assert.False(t, domainerrors.Is(err, domainerrors.ErrResourceNotFound))
}

func TestBookService_Create(t *testing.T) {
	svc, repo := newBookFixture()

	input := dto.NewBookDTO(mockBook(1))
	input.ID = 0

	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "Title Test1", result.Title)
	assert.Equal(t, "Author Test1", result.Author)
	assert.Equal(t, 25.0, result.Price)
	assertBookLinks(t, result)
	assert.Equal(t, []string{"Save"}, repo.calls)
}

func TestBookService_CreateIgnoresClientID(t *testing.T) {
	svc, repo := newBookFixture()
	repo.put(mockBook(5))

	input := dto.NewBookDTO(mockBook(5))
	input.Title = "Another"

	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, int64(6), result.ID)
	assert.Equal(t, "Title Test5", repo.rows[5].Title)
}

func TestBookService_CreateWithNullBook(t *testing.T) {
	svc, repo := newBookFixture()

	_, err := svc.Create(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrRequiredObjectIsNull))
	assert.Contains(t, err.Error(), "It is not allowed to persist a null object!")
	assert.Empty(t, repo.calls)
}

func TestBookService_Update(t *testing.T) {
	svc, repo := newBookFixture()
	repo.put(mockBook(1))

	input := dto.NewBookDTO(mockBook(1))
	input.Title = "Updated Title"
	input.Price = 30

	result, err := svc.Update(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "Updated Title", result.Title)
	assert.Equal(t, 30.0, result.Price)
	assertBookLinks(t, result)
	assert.Equal(t, "Updated Title", repo.rows[1].Title)
	assert.Equal(t, []string{"FindByID", "Save"}, repo.calls)
}

func TestBookService_UpdateWithNullBook(t *testing.T) {
	svc, _ := newBookFixture()

	_, err := svc.Update(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "It is not allowed to persist a null object!")
}

func TestBookService_UpdateNotFound(t *testing.T) {
	svc, repo := newBookFixture()

	_, err := svc.Update(context.Background(), dto.NewBookDTO(mockBook(3)))
	assert.True(t, domainerrors.Is(err, domainerrors.ErrResourceNotFound))
	assert.Equal(t, []string{"FindByID"}, repo.calls)
}

func TestBookService_Delete(t *testing.T) {
	svc, repo := newBookFixture()
	repo.put(mockBook(1))

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []string{"FindByID", "Delete"}, repo.calls)
	assert.Empty(t, repo.rows)
}

func TestBookService_DeleteNotFound(t *testing.T) {
	svc, repo := newBookFixture()
	repo.put(mockBook(1))

	err := svc.Delete(context.Background(), 2)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrResourceNotFound))
	assert.Equal(t, []string{"FindByID"}, repo.calls)
	assert.Len(t, repo.rows, 1)
}
