// cmd/api/routes.go
package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/people-books-api/internal/dto"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in the middleware chain. Background work started by the chain
// stops when ctx is done.
//
// Current endpoints:
//
//	GET    /v1/healthcheck        – service status
//	GET    /api/person/v1         – list persons
//	GET    /api/person/v1/:id     – retrieve a single person
//	POST   /api/person/v1         – create a person
//	PUT    /api/person/v1         – update a person (id in body)
//	DELETE /api/person/v1/:id     – delete a person
//	GET    /api/book/v1           – list books
//	GET    /api/book/v1/:id       – retrieve a single book
//	POST   /api/book/v1           – create a book
//	PUT    /api/book/v1           – update a book (id in body)
//	DELETE /api/book/v1/:id       – delete a book
func (app *applicationDependencies) routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	// Override the default httprouter error handlers to return JSON responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	// Person routes
	router.HandlerFunc(http.MethodGet, dto.PersonBasePath, app.listPersonsHandler)
	router.HandlerFunc(http.MethodGet, dto.PersonBasePath+"/:id", app.showPersonHandler)
	router.HandlerFunc(http.MethodPost, dto.PersonBasePath, app.createPersonHandler)
	router.HandlerFunc(http.MethodPut, dto.PersonBasePath, app.updatePersonHandler)
	router.HandlerFunc(http.MethodDelete, dto.PersonBasePath+"/:id", app.deletePersonHandler)

	// Book routes
	router.HandlerFunc(http.MethodGet, dto.BookBasePath, app.listBooksHandler)
	router.HandlerFunc(http.MethodGet, dto.BookBasePath+"/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPost, dto.BookBasePath, app.createBookHandler)
	router.HandlerFunc(http.MethodPut, dto.BookBasePath, app.updateBookHandler)
	router.HandlerFunc(http.MethodDelete, dto.BookBasePath+"/:id", app.deleteBookHandler)

	return app.middleware(ctx, router)
}

// middleware wraps next in the shared chain (outermost → innermost):
//
//	requestID → recoverPanic → RealIP → logRequest → enableCORS → rateLimit → next
//
// requestID runs first so a recovered panic is logged with its request id.
func (app *applicationDependencies) middleware(ctx context.Context, next http.Handler) http.Handler {
	return app.requestID(app.recoverPanic(middleware.RealIP(app.logRequest(app.enableCORS(app.rateLimit(ctx, next))))))
}
