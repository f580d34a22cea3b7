package consumable

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/expirytracker/expirytracker-backend/pkg/enums"
	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 0, 0, time.Local)
}

func TestNewValidItem(t *testing.T) {
	item, err := New("food", "Milk", "2L carton", 3.5, 1.0, date(2024, time.January, 10))
	require.NoError(t, err)
	require.Equal(t, enums.KindFood, item.Kind)
	require.Equal(t, "Milk", item.Name)
	require.Equal(t, uuid.Nil, item.ID, "id must not be assigned by the constructor")
}

func TestNewRejectsBadInput(t *testing.T) {
	expiry := date(2024, time.January, 10)

	cases := []struct {
		name string
		err  error
		code pkgerrors.Code
	}{
		{"empty variant", func() error { _, err := New("", "Milk", "", 1, 1, expiry); return err }(), pkgerrors.CodeInvalidVariant},
		{"unknown variant", func() error { _, err := New("snack", "Milk", "", 1, 1, expiry); return err }(), pkgerrors.CodeInvalidVariant},
		{"empty name", func() error { _, err := New("food", "  ", "", 1, 1, expiry); return err }(), pkgerrors.CodeValidation},
		{"negative price", func() error { _, err := New("food", "Milk", "", -1, 1, expiry); return err }(), pkgerrors.CodeValidation},
		{"negative matter", func() error { _, err := New("drink", "Juice", "", 1, -1, expiry); return err }(), pkgerrors.CodeValidation},
		{"zero expiry", func() error { _, err := New("food", "Milk", "", 1, 1, time.Time{}); return err }(), pkgerrors.CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.err)
			require.True(t, pkgerrors.Is(tc.err, tc.code), "expected %s, got %v", tc.code, tc.err)
		})
	}
}

func TestDaysUntilExpiryIgnoresTimeOfDay(t *testing.T) {
	item := Item{Expiry: time.Date(2024, time.January, 10, 23, 59, 0, 0, time.Local)}
	today := time.Date(2024, time.January, 8, 1, 0, 0, 0, time.Local)
	require.Equal(t, 2, item.DaysUntilExpiry(today))

	require.Equal(t, 0, item.DaysUntilExpiry(time.Date(2024, time.January, 10, 0, 0, 1, 0, time.Local)))
	require.Equal(t, -3, item.DaysUntilExpiry(time.Date(2024, time.January, 13, 12, 0, 0, 0, time.Local)))
}

func TestLessOrdersLaterExpiryFirst(t *testing.T) {
	earlier := Item{Expiry: date(2024, time.January, 5)}
	later := Item{Expiry: date(2024, time.January, 10)}

	require.True(t, later.Less(earlier))
	require.False(t, earlier.Less(later))

	// Same-day expiries compare equal regardless of time-of-day.
	morning := Item{Expiry: time.Date(2024, time.January, 5, 8, 0, 0, 0, time.Local)}
	require.False(t, earlier.Less(morning))
	require.False(t, morning.Less(earlier))
}

func TestRenderFormatsFieldsAndStatus(t *testing.T) {
	today := date(2024, time.January, 8)

	food := Item{
		Name:   "Wagyu Beef",
		Notes:  "freezer",
		Price:  1234.5,
		Matter: 2500.0,
		Expiry: date(2024, time.January, 10),
		Kind:   enums.KindFood,
	}
	out := food.Render(today)
	require.Contains(t, out, "Name: Wagyu Beef\n")
	require.Contains(t, out, "Price: 1,234.50\n")
	require.Contains(t, out, "Weight: 2,500.00\n")
	require.Contains(t, out, "Expiry Date: 2024-01-10\n")
	require.True(t, strings.HasSuffix(out, "This food expires in 2 day(s)."), "got %q", out)

	drink := Item{Name: "Juice", Price: 4, Matter: 2, Expiry: date(2024, time.January, 5), Kind: enums.KindDrink}
	out = drink.Render(today)
	require.Contains(t, out, "Volume: 2.00\n")
	require.True(t, strings.HasSuffix(out, "This drink is expired for 3 day(s)."), "got %q", out)

	sameDay := Item{Name: "Yogurt", Expiry: date(2024, time.January, 8), Kind: enums.KindFood}
	require.True(t, strings.HasSuffix(sameDay.Render(today), "This food expires today."))
}
