package dex

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyToken is returned for blank search input; no lookup should run.
var ErrEmptyToken = errors.New("empty search token")

// Locator identifies the pokemon a lookup fetches.
type Locator struct {
	// Key is the path segment sent to the API: an id verbatim or a
	// lowercased name.
	Key     string
	Numeric bool
}

func (l Locator) String() string {
	return l.Key
}

// Resolve classifies a raw search token. A token that parses as a number
// is used verbatim, anything else is lowercased and treated as a name.
// The remote service decides whether the id or name exists.
func Resolve(token string) (Locator, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Locator{}, ErrEmptyToken
	}

	if isNumber(token) {
		return Locator{Key: token, Numeric: true}, nil
	}
	return Locator{Key: strings.ToLower(token)}, nil
}

// LocatorForID builds the locator for a national dex number.
func LocatorForID(id int) Locator {
	return Locator{Key: strconv.Itoa(id), Numeric: true}
}

func isNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	// "nan" and "inf" parse but are words, not ids.
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
