package mapping

import "fmt"

// Scheme is a naming scheme tag found in tiny mapping files.
type Scheme string

const (
	Official     Scheme = "official"
	Intermediary Scheme = "intermediary"
	Named        Scheme = "named"
)

var schemes = []Scheme{Official, Intermediary, Named}

// ParseScheme converts a user supplied tag into a Scheme.
func ParseScheme(s string) (Scheme, error) {
	for _, sc := range schemes {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %v)", ErrUnknownScheme, s, schemes)
}

// ParseTarget is like ParseScheme but only accepts schemes a conversion can target.
// The canonical scheme cannot be a target as it is the chaining key.
func ParseTarget(s string) (Scheme, error) {
	sc, err := ParseScheme(s)
	if err != nil {
		return "", err
	}
	if sc == Official {
		return "", fmt.Errorf("%w: %q is the canonical scheme and cannot be a conversion target", ErrUnknownScheme, s)
	}
	return sc, nil
}
