package app

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/meadowlark"
	"github.com/xy-planning-network/meadowlark/http/resp"
)

const (
	addAttractionErrMsg = "Unable to add attraction."
	getAttractionErrMsg = "Unable to retrieve attraction."
	internalErrMsg      = "Internal error."
	listAttractionsMsg  = "Unable to list attractions."
)

// attractionForm is the form a visitor submits to suggest an attraction.
// It arrives form-encoded from the page or as JSON from API clients.
type attractionForm struct {
	Name        string  `json:"name" schema:"name" validate:"required"`
	Description string  `json:"description" schema:"description" validate:"required"`
	Lat         float64 `json:"lat" schema:"lat" validate:"gte=-90,lte=90"`
	Lng         float64 `json:"lng" schema:"lng" validate:"gte=-180,lte=180"`
	Email       string  `json:"email" schema:"email" validate:"required,email"`
}

// attractionsQuery narrows the attractions listed.
// A zero Limit lists them all.
type attractionsQuery struct {
	Limit int `schema:"limit" validate:"gte=0,lte=100"`
}

func errBody(msg string) map[string]string { return map[string]string{"error": msg} }

func (a *App) home(w http.ResponseWriter, r *http.Request) {
	a.d.Html(w, r, resp.Tmpls("home.tmpl"))
}

func (a *App) vacations(w http.ResponseWriter, r *http.Request) {
	vs, err := a.store.Vacations(r.Context())
	if err != nil {
		if err := a.d.Redirect(w, r, resp.GenericErr(err)); err != nil {
			a.d.Err(w, r, err)
		}

		return
	}

	a.d.Html(w, r, resp.Tmpls("vacations.tmpl"), resp.Data(vs))
}

// attractions lists approved attractions.
func (a *App) attractions(w http.ResponseWriter, r *http.Request) {
	var q attractionsQuery
	if err := a.parser.ParseQueryParams(r.URL.Query(), &q); err != nil {
		a.d.Json(w, r, resp.Code(http.StatusBadRequest), resp.Data(errBody(listAttractionsMsg)))
		return
	}

	as, err := a.store.Attractions(r.Context())
	if err != nil {
		a.d.Json(w, r, resp.Err(err), resp.Data(errBody(internalErrMsg)))
		return
	}

	if q.Limit > 0 && len(as) > q.Limit {
		as = as[:q.Limit]
	}

	out := make([]meadowlark.AttractionSummary, 0, len(as))
	for _, at := range as {
		out = append(out, at.Summary())
	}

	a.d.Json(w, r, resp.Data(out))
}

// createAttraction records an attraction suggested by a visitor, pending approval.
func (a *App) createAttraction(w http.ResponseWriter, r *http.Request) {
	var (
		form attractionForm
		err  error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err = a.parser.ParseBody(r.Body, &form)
	} else {
		err = a.parser.ParseForm(r, &form)
	}

	if err != nil {
		a.d.Json(w, r, resp.Code(http.StatusBadRequest), resp.Data(errBody(addAttractionErrMsg)))
		return
	}

	at := meadowlark.NewAttraction(
		form.Name,
		form.Description,
		meadowlark.Location{Lat: form.Lat, Lng: form.Lng},
		form.Email,
		a.clock(),
	)

	id, err := a.store.CreateAttraction(r.Context(), at)
	if errors.Is(err, meadowlark.ErrMissingData) || errors.Is(err, meadowlark.ErrNotValid) {
		a.d.Json(w, r, resp.Code(http.StatusBadRequest), resp.Data(errBody(addAttractionErrMsg)))
		return
	}

	if err != nil {
		a.d.Json(w, r, resp.Err(err), resp.Data(errBody(addAttractionErrMsg)))
		return
	}

	a.d.Json(w, r, resp.Data(map[string]uint{"id": id}))
}

// attraction shows one attraction.
func (a *App) attraction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 0)
	if err != nil {
		a.d.Json(w, r, resp.Code(http.StatusNotFound), resp.Data(errBody(getAttractionErrMsg)))
		return
	}

	at, err := a.store.Attraction(r.Context(), uint(id))
	if errors.Is(err, meadowlark.ErrNotExist) {
		a.d.Json(w, r, resp.Code(http.StatusNotFound), resp.Data(errBody(getAttractionErrMsg)))
		return
	}

	if err != nil {
		a.d.Json(w, r, resp.Err(err), resp.Data(errBody(getAttractionErrMsg)))
		return
	}

	a.d.Json(w, r, resp.Data(at.Summary()))
}

func (a *App) unauthorized(w http.ResponseWriter, r *http.Request) {
	a.d.Html(w, r, resp.Code(http.StatusForbidden), resp.Tmpls("unauthorized.tmpl"))
}

// account greets the signed in user.
func (a *App) account(w http.ResponseWriter, r *http.Request) {
	u, err := a.d.CurrentUser(r.Context())
	if err != nil {
		a.d.Err(w, r, err)
		return
	}

	a.d.Html(w, r, resp.Tmpls("account.tmpl"), resp.User(u), resp.Data(map[string]string{"Username": u.Name}))
}

// users lists everyone who has signed in, newest first.
func (a *App) users(w http.ResponseWriter, r *http.Request) {
	us, err := a.store.Users(r.Context())
	if err != nil {
		a.d.Err(w, r, err)
		return
	}

	a.d.Html(w, r, resp.Tmpls("admin/users.tmpl"), resp.Data(us))
}

func (a *App) notFound(w http.ResponseWriter, r *http.Request) {
	a.d.NotFound(w, r)
}
