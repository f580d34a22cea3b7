package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/expirytracker/expirytracker-backend/api/responses"
	"github.com/expirytracker/expirytracker-backend/api/validators"
	"github.com/expirytracker/expirytracker-backend/internal/consumable"
	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
	"github.com/expirytracker/expirytracker-backend/pkg/logger"
)

// Flusher triggers a persistence save; satisfied by the storage gateway.
type Flusher interface {
	Save(ctx context.Context) error
}

// ListItems serves one of the four filtered views of the inventory. The body
// is the bare encoded item array the legacy client expects.
func ListItems(store *consumable.Store, logg *logger.Logger, criterion consumable.Filter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeItemList(w, r, logg, store.FilterItems(criterion), http.StatusOK)
	}
}

// AddItem creates a food or drink item. The variant comes from the path, the
// fields from the body; the id is assigned server-side. Responds with the
// updated full list.
func AddItem(store *consumable.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := payload.toItem(chi.URLParam(r, "kind"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list := store.Add(item)
		writeItemList(w, r, logg, list, http.StatusCreated)
	}
}

// RemoveItem deletes an item by id and responds with the updated full list.
// A missing id is a client error, not a server fault.
func RemoveItem(store *consumable.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		list, err := store.Remove(id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// The original server answered removals with 201 and the legacy
		// client checks for it.
		writeItemList(w, r, logg, list, http.StatusCreated)
	}
}

// FlushItems writes the current inventory to the persistence file. The
// legacy client calls this as /exit before quitting.
func FlushItems(flusher Flusher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := flusher.Save(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func writeItemList(w http.ResponseWriter, r *http.Request, logg *logger.Logger, items []consumable.Item, status int) {
	data, err := consumable.EncodeItems(items)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding item list"))
		return
	}
	responses.WriteRaw(w, status, data)
}

type addItemRequest struct {
	Name   string  `json:"name" validate:"required"`
	Notes  string  `json:"notes"`
	Price  float64 `json:"price" validate:"gte=0"`
	Matter float64 `json:"matter" validate:"gte=0"`
	Expiry string  `json:"expiry" validate:"required"`
}

func (p addItemRequest) toItem(kind string) (consumable.Item, error) {
	// The legacy client posts to /addItem/Food and /addItem/Drink.
	kind = strings.ToLower(kind)
	expiry, err := consumable.ParseExpiry(p.Expiry)
	if err != nil {
		return consumable.Item{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid expiry date").
			WithDetails(map[string]string{"expiry": p.Expiry})
	}
	return consumable.New(kind, p.Name, p.Notes, p.Price, p.Matter, expiry)
}
