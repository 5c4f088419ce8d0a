package service

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/aoideee/people-books-api/internal/data"
)

// fakeRepo is an in-memory data.Repository that records every call.
type fakeRepo[T any] struct {
	rows   map[int64]*T
	nextID int64
	id     func(*T) *int64
	calls  []string
	err    error // returned by every call when set
}

func newFakeRepo[T any](id func(*T) *int64) *fakeRepo[T] {
	return &fakeRepo[T]{rows: make(map[int64]*T), id: id}
}

func (f *fakeRepo[T]) put(row *T) {
	id := *f.id(row)
	if id > f.nextID {
		f.nextID = id
	}
	c := *row
	f.rows[id] = &c
}

func (f *fakeRepo[T]) FindAll(_ context.Context, _ data.Filters) ([]*T, error) {
	f.calls = append(f.calls, "FindAll")
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		c := *f.rows[id]
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeRepo[T]) FindByID(_ context.Context, id int64) (*T, error) {
	f.calls = append(f.calls, "FindByID")
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[id]
	if !ok {
		return nil, data.ErrRecordNotFound
	}
	c := *row
	return &c, nil
}

func (f *fakeRepo[T]) Save(_ context.Context, entity *T) error {
	f.calls = append(f.calls, "Save")
	if f.err != nil {
		return f.err
	}
	id := f.id(entity)
	if *id == 0 {
		f.nextID++
		*id = f.nextID
	} else if _, ok := f.rows[*id]; !ok {
		return data.ErrRecordNotFound
	}
	c := *entity
	f.rows[*id] = &c
	return nil
}

func (f *fakeRepo[T]) Delete(_ context.Context, entity *T) error {
	f.calls = append(f.calls, "Delete")
	if f.err != nil {
		return f.err
	}
	id := *f.id(entity)
	if _, ok := f.rows[id]; !ok {
		return data.ErrRecordNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo[T]) Count(_ context.Context) (int, error) {
	f.calls = append(f.calls, "Count")
	return len(f.rows), f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
