// cmd/api/handlers.go
// This file contains the handlers shared by every resource.
package main

import (
	"net/http"
	"strconv"
)

// healthcheckHandler handles GET /v1/healthcheck.
// It reports that the service is up together with its environment and version.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.environment,
			"version":     appVersion,
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// totalCountHeader returns the X-Total-Count header sent with list responses.
func totalCountHeader(total int) http.Header {
	headers := make(http.Header)
	headers.Set("X-Total-Count", strconv.Itoa(total))
	return headers
}

// locationHeader returns a Location header pointing at href.
func locationHeader(href string) http.Header {
	headers := make(http.Header)
	if href != "" {
		headers.Set("Location", href)
	}
	return headers
}
