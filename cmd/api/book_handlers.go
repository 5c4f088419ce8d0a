// cmd/api/book_handlers.go
// This file contains the HTTP handlers for the book resource. Each handler
// translates the request into a BookService call and the result into a
// response.
package main

import (
	"net/http"

	"github.com/aoideee/people-books-api/internal/data"
	"github.com/aoideee/people-books-api/internal/dto"
)

// listBooksHandler handles GET /api/book/v1.
// It returns every book as a JSON array, optionally sorted and paged.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	filters, errs := app.readFilters(r.URL.Query(), data.BookSortSafeList)
	if errs != nil {
		app.failedValidationResponse(w, r, errs)
		return
	}

	books, err := app.books.FindAll(r.Context(), filters)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	total, err := app.books.Count(r.Context())
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, books, totalCountHeader(total))
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /api/book/v1/:id.
// Responds 404 if no book with that id exists.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	book, err := app.books.FindByID(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /api/book/v1.
// It responds with the stored book, including its database-assigned id and
// links, and a 201 Created status. A JSON null body is rejected by the
// service with a 400.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	var input *dto.BookDTO
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if input != nil {
		if err := app.validator.Validate(input); err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
	}

	book, err := app.books.Create(r.Context(), input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	self, _ := book.Links.Find(dto.RelSelf)
	err = app.writeJSON(w, http.StatusCreated, book, locationHeader(self.Href))
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /api/book/v1.
// The body carries the id of the book to update and its new field values.
// Responds 404 if the book does not exist.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	var input *dto.BookDTO
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if input != nil {
		if err := app.validator.Validate(input); err != nil {
			app.serviceErrorResponse(w, r, err)
			return
		}
	}

	book, err := app.books.Update(r.Context(), input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /api/book/v1/:id.
// Responds 204 No Content, or 404 if no book with that id exists.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.books.Delete(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
