package api

import (
	"net/http"

	"github.com/go-chi/chi"
)

// apiHandler is an http handler that pushes its error to the boundary,
// where it is mapped onto the error taxonomy and rendered as JSON.
type apiHandler func(w http.ResponseWriter, r *http.Request) error

func (h apiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h(w, r); err != nil {
		handleError(err, w, r)
	}
}

type router struct {
	chi chi.Router
}

func newRouter() *router {
	return &router{chi: chi.NewRouter()}
}

func (r *router) Route(pattern string, fn func(*router)) {
	r.chi.Route(pattern, func(c chi.Router) {
		fn(&router{chi: c})
	})
}

func (r *router) Get(pattern string, fn apiHandler) {
	r.chi.Get(pattern, fn.ServeHTTP)
}

func (r *router) Post(pattern string, fn apiHandler) {
	r.chi.Post(pattern, fn.ServeHTTP)
}

func (r *router) Use(fn func(http.Handler) http.Handler) {
	r.chi.Use(fn)
}

func (r *router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.chi.ServeHTTP(w, req)
}
