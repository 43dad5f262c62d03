package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// pathID parses the {id} URL parameter as a positive integer.
func pathID(r *http.Request) (int64, error) {
	return parsePositiveID(chi.URLParam(r, "id"), "id")
}

func parsePositiveID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

func listInputFromQuery(r *http.Request) appsvcs.ListItemsInput {
	q := r.URL.Query()
	return appsvcs.ListItemsInput{
		Search:    q.Get("search"),
		Location:  q.Get("location"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}
