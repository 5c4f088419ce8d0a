// Package dto holds the API-facing transfer objects, their conversions to
// and from the data entities, and the hypermedia links attached to them.
package dto

import (
	"net/http"
	"strconv"
	"strings"
)

// Base paths of the two resources. Item routes append "/{id}".
const (
	PersonBasePath = "/api/person/v1"
	BookBasePath   = "/api/book/v1"
)

// Relation names of the link set attached to every resource.
const (
	RelSelf    = "self"
	RelFindAll = "findAll"
	RelCreate  = "create"
	RelUpdate  = "update"
	RelDelete  = "delete"
)

// Link advertises a follow-up action on a resource.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
	Type string `json:"type"` // HTTP verb
}

// Links is the ordered link set of a DTO.
type Links []Link

// Find returns the link with the given relation.
func (l Links) Find(rel string) (Link, bool) {
	for _, link := range l {
		if link.Rel == rel {
			return link, true
		}
	}
	return Link{}, false
}

// BuildLinks returns the five-entry link set for the resource with the
// given id. baseURL is the public origin, for example
// "http://localhost:8080", and may be empty for relative links.
func BuildLinks(baseURL, basePath string, id int64) Links {
	collection := strings.TrimRight(baseURL, "/") + basePath
	item := collection + "/" + strconv.FormatInt(id, 10)

	return Links{
		{Rel: RelSelf, Href: item, Type: http.MethodGet},
		{Rel: RelFindAll, Href: collection, Type: http.MethodGet},
		{Rel: RelCreate, Href: collection, Type: http.MethodPost},
		{Rel: RelUpdate, Href: collection, Type: http.MethodPut},
		{Rel: RelDelete, Href: item, Type: http.MethodDelete},
	}
}
