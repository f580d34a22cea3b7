package enums

import "fmt"

// Kind is the canonical discriminator for the two consumable variants. It is
// the single vocabulary used in memory, on disk and on the wire; the legacy
// Java class-name spellings are accepted on decode only.
type Kind string

const (
	KindFood  Kind = "food"
	KindDrink Kind = "drink"
)

var validKinds = []Kind{
	KindFood,
	KindDrink,
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known Kind.
func (k Kind) IsValid() bool {
	for _, candidate := range validKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseKind converts raw input into a Kind.
func ParseKind(value string) (Kind, error) {
	for _, candidate := range validKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid consumable kind %q", value)
}
