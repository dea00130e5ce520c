package domain

import (
	"fmt"
	"strconv"
)

// ID is the canonical identifier for users, pages and products. Every id that
// crosses a trust boundary (path parameter, session subject, database key) is
// parsed into an ID before it is compared.
type ID int64

// ParseID accepts only the canonical decimal form of a positive int64, so
// "12" parses while "012", "+12", " 12" and "12.0" are rejected.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 || strconv.FormatInt(n, 10) != s {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return ID(n), nil
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// MarshalText renders the id as a JSON string.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
