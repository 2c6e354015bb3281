// internal/api/handlers.go
//
// HTTP handlers for the five record operations.
//
// Context
// -------
// The handlers do edge validation only: lang membership, integer
// parsing, page/limit bounds.  Everything else goes to the record
// service.  Body-schema problems and bad path parameters answer with
// InvalidParameterFormat; the service owns the domain error mapping.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/mobilepost/internal/apierr"
	"github.com/yanizio/mobilepost/internal/post"
)

// Handler binds the record service to the router.
type Handler struct {
	svc *post.Service
	log *zap.SugaredLogger
}

func NewHandler(svc *post.Service, log *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes mounts the record API under /api/mobileposts.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestLogger(h.log), Recover(h.log))

	r.Route("/api/mobileposts", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.remove)
	})
	return r
}

// intParam parses an optional integer query value.
func intParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apierr.New(apierr.CodeInvalidParameterFormat,
			fmt.Sprintf("%s must be an integer", name))
	}
	return &v, nil
}

// idParam parses the {id} path segment.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apierr.New(apierr.CodeInvalidParameterFormat, "id must be an integer")
	}
	return id, nil
}

// listParams validates the full filter/sort/pagination surface.
func listParams(r *http.Request) (post.Params, error) {
	q := r.URL.Query()
	p := post.Params{
		Search:     q.Get("search"),
		District:   q.Get("district"),
		OpenAt:     q.Get("openAt"),
		MobileCode: q.Get("mobileCode"),
		SortBy:     q.Get("sortBy"),
		SortDir:    q.Get("sortDir"),
	}

	lang, err := post.ParseLang(q.Get("lang"))
	if err != nil {
		return post.Params{}, err
	}
	p.Lang = lang

	if p.DayOfWeek, err = intParam(r, "dayOfWeek"); err != nil {
		return post.Params{}, err
	}
	if p.DayOfWeek != nil && (*p.DayOfWeek < 1 || *p.DayOfWeek > 7) {
		return post.Params{}, apierr.New(apierr.CodeInvalidParameterFormat,
			"dayOfWeek must be between 1 and 7")
	}
	if p.Seq, err = intParam(r, "seq"); err != nil {
		return post.Params{}, err
	}

	page, err := intParam(r, "page")
	if err != nil {
		return post.Params{}, err
	}
	if page != nil {
		if *page < 1 {
			return post.Params{}, apierr.New(apierr.CodeInvalidParameterFormat,
				"page must be a positive integer")
		}
		p.Page = *page
	}

	limit, err := intParam(r, "limit")
	if err != nil {
		return post.Params{}, err
	}
	if limit != nil {
		if *limit < 1 || *limit > 200 {
			return post.Params{}, apierr.New(apierr.CodeInvalidParameterFormat,
				"limit must be between 1 and 200")
		}
		p.Limit = *limit
	}

	p.Defaults()
	return p, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p, err := listParams(r)
	if err != nil {
		fail(w, err)
		return
	}
	rows, meta, err := h.svc.List(r.Context(), p)
	if err != nil {
		fail(w, err)
		return
	}
	okPage(w, fmt.Sprintf("%d records retrieved", meta.Total), rows, meta)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, err)
		return
	}
	lang, err := post.ParseLang(r.URL.Query().Get("lang"))
	if err != nil {
		fail(w, err)
		return
	}
	view, err := h.svc.Get(r.Context(), id, lang)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, "record found", view)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in post.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, apierr.New(apierr.CodeInvalidParameterFormat, "request body is not valid JSON"))
		return
	}
	created, err := h.svc.Create(r.Context(), in)
	if err != nil {
		fail(w, err)
		return
	}
	ok(w, "created", map[string]int64{"id": created.ID})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, err)
		return
	}
	var in post.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		fail(w, apierr.New(apierr.CodeInvalidParameterFormat, "request body is not valid JSON"))
		return
	}
	if _, err := h.svc.Update(r.Context(), id, in); err != nil {
		fail(w, err)
		return
	}
	ok(w, "updated", map[string]int64{"id": id})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		fail(w, err)
		return
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	ok(w, "deleted", nil)
}
