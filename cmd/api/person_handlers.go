// cmd/api/person_handlers.go
// This file contains the HTTP handlers for the person resource.
package main

import (
	"net/http"
	"time"

	"github.com/aoideee/people-books-api/internal/data"
	"github.com/aoideee/people-books-api/internal/dto"
)

// personDisplay is the single-person response when demo_person_fields is
// on. Its LastName shadows the embedded one so it renders as null.
type personDisplay struct {
	*dto.PersonDTO
	LastName *string `json:"last_name"`
}

// listPersonsHandler handles GET /api/person/v1.
func (app *applicationDependencies) listPersonsHandler(w http.ResponseWriter, r *http.Request) {
	filters, errs := app.readFilters(r.URL.Query(), data.PersonSortSafeList)
	if errs != nil {
		app.failedValidationResponse(w, r, errs)
		return
	}

	persons, err := app.persons.FindAll(r.Context(), filters)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	total, err := app.persons.Count(r.Context())
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, persons, totalCountHeader(total))
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showPersonHandler handles GET /api/person/v1/:id.
// With demo_person_fields enabled the response also carries the current
// time as birth_day, an empty phone number, placeholder sensitive data and
// a null last name. None of it is persisted.
func (app *applicationDependencies) showPersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	person, err := app.persons.FindByID(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	var body any = person
	if app.config.demoPersonFields {
		now := time.Now()
		person.BirthDay = &now
		person.PhoneNumber = ""
		person.SensitiveData = "Foo Bar"
		body = personDisplay{PersonDTO: person}
	}

	err = app.writeJSON(w, http.StatusOK, body, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createPersonHandler handles POST /api/person/v1.
func (app *applicationDependencies) createPersonHandler(w http.ResponseWriter, r *http.Request) {
	var input *dto.PersonDTO
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

	person, err := app.persons.Create(r.Context(), input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	self, _ := person.Links.Find(dto.RelSelf)
	err = app.writeJSON(w, http.StatusCreated, person, locationHeader(self.Href))
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updatePersonHandler handles PUT /api/person/v1.
func (app *applicationDependencies) updatePersonHandler(w http.ResponseWriter, r *http.Request) {
	var input *dto.PersonDTO
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

	person, err := app.persons.Update(r.Context(), input)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, person, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deletePersonHandler handles DELETE /api/person/v1/:id.
func (app *applicationDependencies) deletePersonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.persons.Delete(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
