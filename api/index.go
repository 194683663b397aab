package api

import "net/http"

// Index endpoint
func (a *API) Index(w http.ResponseWriter, r *http.Request) error {
	return sendJSON(w, http.StatusOK, map[string]string{
		"version":     a.version,
		"name":        "MediaCommerce",
		"description": "MediaCommerce sells time-boxed download access to media collections",
	})
}
