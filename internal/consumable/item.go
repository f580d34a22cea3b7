// Package consumable holds the inventory domain: the item model, the JSON
// codec shared with the desktop client, and the in-memory store.
package consumable

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/expirytracker/expirytracker-backend/pkg/enums"
	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
)

// Item is a tracked perishable good. The two variants share every field;
// Kind decides how Matter is read (weight for food, volume for drink).
type Item struct {
	ID     uuid.UUID
	Name   string
	Notes  string
	Price  float64
	Matter float64
	Expiry time.Time
	Kind   enums.Kind
}

// New builds an Item from raw input. The id is assigned later by the store.
func New(kind, name, notes string, price, matter float64, expiry time.Time) (Item, error) {
	parsed, err := enums.ParseKind(kind)
	if err != nil {
		return Item{}, pkgerrors.Wrap(pkgerrors.CodeInvalidVariant, err, "unrecognized consumable variant").
			WithDetails(map[string]string{"kind": kind})
	}
	if strings.TrimSpace(name) == "" {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
	}
	if price < 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if matter < 0 {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "matter must not be negative")
	}
	if expiry.IsZero() {
		return Item{}, pkgerrors.New(pkgerrors.CodeValidation, "expiry date is required")
	}
	return Item{
		Name:   name,
		Notes:  notes,
		Price:  price,
		Matter: matter,
		Expiry: expiry,
		Kind:   parsed,
	}, nil
}

// dateOf truncates a moment to its calendar date. Expiry comparisons are
// date-granular; time-of-day never influences ordering or filtering.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysUntilExpiry returns the whole-day distance from today to the item's
// expiry date. Negative when the item is already expired.
func (i Item) DaysUntilExpiry(today time.Time) int {
	diff := dateOf(i.Expiry).Sub(dateOf(today))
	return int(math.Round(diff.Hours() / 24))
}

// Less orders items by descending expiry date: the item expiring later sorts
// first. Same-day expiries compare equal and may land in either order.
func (i Item) Less(other Item) bool {
	return dateOf(i.Expiry).After(dateOf(other.Expiry))
}

var displayPrinter = message.NewPrinter(language.English)

// Render produces the human-readable card for the item relative to the given
// day. Numbers carry two decimals with thousands separators; this formatting
// never reaches disk or wire.
func (i Item) Render(today time.Time) string {
	matterLabel := "Weight"
	if i.Kind == enums.KindDrink {
		matterLabel = "Volume"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", i.Name)
	fmt.Fprintf(&b, "Notes: %s\n", i.Notes)
	fmt.Fprintf(&b, "Price: %s\n", displayPrinter.Sprintf("%.2f", i.Price))
	fmt.Fprintf(&b, "%s: %s\n", matterLabel, displayPrinter.Sprintf("%.2f", i.Matter))
	fmt.Fprintf(&b, "Expiry Date: %s\n", i.Expiry.Format("2006-01-02"))
	b.WriteString(i.expiryStatus(today))
	return b.String()
}

// String implements fmt.Stringer against the current system date.
func (i Item) String() string {
	return i.Render(time.Now())
}

func (i Item) expiryStatus(today time.Time) string {
	days := i.DaysUntilExpiry(today)
	switch {
	case days < 0:
		return fmt.Sprintf("This %s is expired for %d day(s).", i.Kind, -days)
	case days > 0:
		return fmt.Sprintf("This %s expires in %d day(s).", i.Kind, days)
	default:
		return fmt.Sprintf("This %s expires today.", i.Kind)
	}
}
