// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/people-books-api/internal/data"
	"github.com/aoideee/people-books-api/internal/validator"
)

// maxBodyBytes caps request bodies at 1 MB.
const maxBodyBytes = 1_048_576

// envelope is the JSON wrapper used for error and status responses,
// e.g. {"error": "..."}. Resource responses are written bare.
type envelope map[string]any

// readIDParam extracts and validates the ":id" URL parameter added by httprouter.
// Returns an error if the value is missing, non-numeric, or less than 1.
func (app *applicationDependencies) readIDParam(r *http.Request) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// readString reads a string query parameter from qs, returning defaultValue
// if the key is absent or empty.
func (app *applicationDependencies) readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// readInt reads an integer query parameter from qs, returning defaultValue if
// the key is absent. A value that is not an integer is reported in errs.
func (app *applicationDependencies) readInt(qs url.Values, key string, defaultValue int, errs map[string]string) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		errs[key] = "must be an integer value"
		return defaultValue
	}
	return i
}

// readFilters builds list filters from the sort, page and page_size query
// parameters. Field problems are returned as a map ready for
// failedValidationResponse.
func (app *applicationDependencies) readFilters(qs url.Values, safeList []string) (data.Filters, map[string]string) {
	errs := make(map[string]string)

	f := data.Filters{
		Sort:         app.readString(qs, "sort", ""),
		Page:         app.readInt(qs, "page", 0, errs),
		PageSize:     app.readInt(qs, "page_size", 0, errs),
		SortSafeList: safeList,
	}
	if f.Page > 0 && f.PageSize == 0 {
		errs["page_size"] = "must be provided with page"
	}
	if !f.SortAllowed() {
		errs["sort"] = "invalid sort value"
	}
	if len(errs) > 0 {
		return f, errs
	}

	if err := app.validator.Validate(f); err != nil {
		if fields, ok := validator.Fields(err); ok {
			return f, fields
		}
		return f, map[string]string{"filters": err.Error()}
	}
	return f, nil
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n') // Trailing newline makes curl output nicer.

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value (no trailing data). The literal
// null leaves a pointer dst untouched.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields() // Reject fields not present in dst.

	err := dec.Decode(dst)
	if err != nil {
		var (
			syntaxError           *json.SyntaxError
			unmarshalTypeError    *json.UnmarshalTypeError
			maxBytesError         *http.MaxBytesError
			invalidUnmarshalError *json.InvalidUnmarshalError
		)

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
