package consumable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expirytracker/expirytracker-backend/pkg/enums"
	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
)

// expiryLayout is the format written to disk and wire. It matches what the
// legacy Gson adapter produced via LocalDateTime.toString(), minus the
// quirk of dropping zero seconds, so files sort and round-trip cleanly.
const expiryLayout = "2006-01-02T15:04:05"

// expiryLayouts lists the accepted inputs. Legacy files omit the seconds
// when the time-of-day is the date-picker default of 23:59.
var expiryLayouts = []string{
	expiryLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999",
}

// legacyKinds maps the Java class-name discriminators written by the two
// original codebases onto the canonical vocabulary. Decode-only; nothing
// emits these spellings anymore.
var legacyKinds = map[string]enums.Kind{
	"expiryTracker.webappserver.model.Food":  enums.KindFood,
	"expiryTracker.webappserver.model.Drink": enums.KindDrink,
	"expiryTracker.client.model.Food":        enums.KindFood,
	"expiryTracker.client.model.Drink":       enums.KindDrink,
	"ca.cmpt213.a4.client.model.Food":        enums.KindFood,
	"ca.cmpt213.a4.client.model.Drink":       enums.KindDrink,
}

type itemRecord struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Notes  string    `json:"notes"`
	Price  float64   `json:"price"`
	Matter float64   `json:"matter"`
	Expiry string    `json:"expiry"`
	Kind   string    `json:"kind"`
}

// EncodeItems serializes the items as one JSON array of flat records with
// canonical kind tags. Numeric fields keep full precision; the display
// formatting from Render never appears here.
func EncodeItems(items []Item) ([]byte, error) {
	records := make([]itemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, itemRecord{
			ID:     item.ID,
			Name:   item.Name,
			Notes:  item.Notes,
			Price:  item.Price,
			Matter: item.Matter,
			Expiry: item.Expiry.Format(expiryLayout),
			Kind:   item.Kind.String(),
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding item list: %w", err)
	}
	return data, nil
}

// DecodeItems parses a JSON array of flat records into items. Every record's
// kind is normalized to the canonical vocabulary before being returned. A
// single unrecognized tag or malformed record fails the whole batch; no
// partial result is ever produced.
func DecodeItems(data []byte) ([]Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Item{}, nil
	}

	var records []itemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding item list: %w", err)
	}

	items := make([]Item, 0, len(records))
	for idx, record := range records {
		kind, err := resolveKind(record.Kind)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeUnknownVariant, err, "unknown variant tag").
				WithDetails(map[string]any{"index": idx, "kind": record.Kind})
		}
		expiry, err := ParseExpiry(record.Expiry)
		if err != nil {
			return nil, fmt.Errorf("decoding item %d: %w", idx, err)
		}
		items = append(items, Item{
			ID:     record.ID,
			Name:   record.Name,
			Notes:  record.Notes,
			Price:  record.Price,
			Matter: record.Matter,
			Expiry: expiry,
			Kind:   kind,
		})
	}
	return items, nil
}

func resolveKind(raw string) (enums.Kind, error) {
	if kind, err := enums.ParseKind(raw); err == nil {
		return kind, nil
	}
	if kind, ok := legacyKinds[raw]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("tag %q is outside every known vocabulary", raw)
}

// ParseExpiry reads an expiry date-time in any accepted wire spelling.
func ParseExpiry(raw string) (time.Time, error) {
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable expiry %q", raw)
}
