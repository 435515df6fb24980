package main

import (
	"cmp"
	"net/http"
	"slices"
	"sync"

	"github.com/gorilla/mux"

	"github.com/crypticorn-ai/apiutils/pkg/apierrors"
	"github.com/crypticorn-ai/apiutils/pkg/auth"
	"github.com/crypticorn-ai/apiutils/pkg/deprecation"
	"github.com/crypticorn-ai/apiutils/pkg/httputil"
	"github.com/crypticorn-ai/apiutils/pkg/middleware"
	"github.com/crypticorn-ai/apiutils/pkg/pagination"
)

const (
	scopeRead  auth.Scope = "items:read"
	scopeWrite auth.Scope = "items:write"
)

// Item is an economic calendar entry
type Item struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Impact   *string  `json:"impact" enum:"Low,Medium,High"`
	Previous *float64 `json:"previous"`
	Active   bool     `json:"active"`
}

// field returns the value of the named field in the form filter values are coerced to
func (i Item) field(name string) any {
	switch name {
	case "id":
		return i.ID
	case "name":
		return i.Name
	case "impact":
		if i.Impact == nil {
			return nil
		}
		return *i.Impact
	case "previous":
		if i.Previous == nil {
			return nil
		}
		return *i.Previous
	case "active":
		return i.Active
	}
	return nil
}

// CreateItemRequest is the body of POST /items
type CreateItemRequest struct {
	Name     string   `json:"name" validate:"required,max=128"`
	Impact   *string  `json:"impact" validate:"omitempty,oneof=Low Medium High"`
	Previous *float64 `json:"previous"`
	Active   bool     `json:"active"`
}

type itemStore struct {
	mu     sync.RWMutex
	items  []Item
	nextID int64
}

func newItemStore(seed ...Item) *itemStore {
	s := &itemStore{nextID: 1}
	for _, item := range seed {
		s.add(item)
	}
	return s
}

func (s *itemStore) add(item Item) Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextID
	s.nextID++
	s.items = append(s.items, item)
	return item
}

func (s *itemStore) get(id int64) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// query returns the items matching the filter, ordered by the sort
func (s *itemStore) query(sort pagination.Sort, filter pagination.Filter) []Item {
	s.mu.RLock()
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if !filter.IsSet() || item.field(filter.By) == filter.Value {
			out = append(out, item)
		}
	}
	s.mu.RUnlock()

	if sort.IsSet() {
		slices.SortStableFunc(out, func(a, b Item) int {
			c := compareValues(a.field(sort.By), b.field(sort.By))
			if sort.Order == pagination.Desc {
				return -c
			}
			return c
		})
	}
	return out
}

// compareValues orders nil before every other value
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case int64:
		return cmp.Compare(av, b.(int64))
	case float64:
		return cmp.Compare(av, b.(float64))
	case string:
		return cmp.Compare(av, b.(string))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	}
	return 0
}

type itemsAPI struct {
	store  *itemStore
	params *pagination.Validator
	errors *httputil.ErrorWriter
}

func newItemsAPI(store *itemStore, errs *httputil.ErrorWriter) *itemsAPI {
	return &itemsAPI{
		store:  store,
		params: pagination.For[Item](),
		errors: errs,
	}
}

// register mounts the item routes. Reads need items:read, writes items:write.
// /v1/items is a deprecated alias of the list endpoint.
func (a *itemsAPI) register(router *mux.Router, authn *middleware.AuthMiddleware) {
	read := middleware.RequireScope(scopeRead, a.errors)
	write := middleware.RequireScope(scopeWrite, a.errors)
	legacy := deprecation.New("Use /items instead.", deprecation.V(1, 4)).RemovedIn(deprecation.V(2, 0))

	api := router.NewRoute().Subrouter()
	api.Use(authn.Handler)
	api.Handle("/items", read(http.HandlerFunc(a.list))).Methods(http.MethodGet)
	api.Handle("/items", write(http.HandlerFunc(a.create))).Methods(http.MethodPost)
	api.Handle("/items/{id}", read(http.HandlerFunc(a.get))).Methods(http.MethodGet)
	api.Handle("/v1/items", read(deprecation.Middleware(legacy, nil)(http.HandlerFunc(a.list)))).Methods(http.MethodGet)
}

func (a *itemsAPI) list(w http.ResponseWriter, r *http.Request) {
	params, ok := httputil.ParseParamsOrError(a.errors, w, r, a.params.PageSortFilter)
	if !ok {
		return
	}
	items := a.store.query(params.Sort, params.Filter)
	httputil.WriteJSONOrError(w, r, http.StatusOK, pagination.Paginate(items, params.Pagination))
}

func (a *itemsAPI) get(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.ParsePathInt(r, "id")
	if err != nil {
		a.errors.Write(w, r, err)
		return
	}
	item, ok := a.store.get(int64(id))
	if !ok {
		a.errors.WriteCode(w, r, apierrors.CodeObjectNotFound, "item not found")
		return
	}
	httputil.WriteJSONOrError(w, r, http.StatusOK, item)
}

func (a *itemsAPI) create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := httputil.ParseJSON(r, &req); err != nil {
		a.errors.Write(w, r, err)
		return
	}
	item := a.store.add(Item{
		Name:     req.Name,
		Impact:   req.Impact,
		Previous: req.Previous,
		Active:   req.Active,
	})
	httputil.WriteJSONOrError(w, r, http.StatusCreated, item)
}

func ptr[T any](v T) *T { return &v }

func seedItems() []Item {
	return []Item{
		{Name: "CPI", Impact: ptr("High"), Previous: ptr(3.2), Active: true},
		{Name: "Retail Sales", Impact: ptr("Medium"), Previous: ptr(0.4), Active: true},
		{Name: "Jobless Claims", Impact: ptr("Low"), Previous: ptr(231.0)},
		{Name: "Fed Minutes", Active: true},
		{Name: "GDP", Impact: ptr("High"), Previous: ptr(1.6), Active: true},
	}
}
