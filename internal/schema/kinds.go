package schema

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind is the semantic constraint attached to a declared field. Empty
// reports whether a supplied value is the kind-appropriate empty value;
// Validate checks the kind's constraint and returns a ValidationError on
// violation.
type Kind interface {
	Empty(v any) bool
	Validate(v any) error
}

// DateLayout is the wire format for date fields.
const DateLayout = "02.01.2006"

// Genders enumerates the accepted gender codes.
var Genders = map[int64]string{
	0: "unknown",
	1: "male",
	2: "female",
}

// IntValue coerces a decoded JSON value to an integer. json.Number is the
// common case since request bodies are decoded with UseNumber.
func IntValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// DecimalString renders a string or integer value in its decimal-string
// form, as phone validation is defined over it.
func DecimalString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if i, ok := IntValue(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	return "", false
}

// Char accepts any string.
type Char struct{}

func (Char) Empty(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}

func (Char) Validate(v any) error {
	if _, ok := v.(string); !ok {
		return invalid("value must be a string")
	}
	return nil
}

// Arguments accepts a key/value mapping.
type Arguments struct{}

func (Arguments) Empty(v any) bool {
	m, ok := v.(map[string]any)
	return ok && len(m) == 0
}

func (Arguments) Validate(v any) error {
	if _, ok := v.(map[string]any); !ok {
		return invalid("value must be an object")
	}
	return nil
}

// Email accepts a string containing "@".
type Email struct {
	Char
}

func (e Email) Validate(v any) error {
	if err := e.Char.Validate(v); err != nil {
		return err
	}
	if !strings.Contains(v.(string), "@") {
		return invalid("value must be an email address")
	}
	return nil
}

// Phone accepts a string or integer whose decimal form is exactly 11
// characters and starts with "7".
type Phone struct{}

func (Phone) Empty(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}

func (Phone) Validate(v any) error {
	s, ok := DecimalString(v)
	if !ok {
		return invalid("value must be a string or an integer")
	}
	if !strings.HasPrefix(s, "7") || len(s) != 11 {
		return invalid(`phone number must be 11 characters and begin with "7"`)
	}
	return nil
}

// Date accepts a string in DD.MM.YYYY form naming a real calendar date.
type Date struct {
	Char
}

func (d Date) Validate(v any) error {
	_, err := d.parse(v)
	return err
}

func (d Date) parse(v any) (time.Time, error) {
	if err := d.Char.Validate(v); err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(DateLayout, v.(string))
	if err != nil {
		return time.Time{}, invalid(`date must be a string in "DD.MM.YYYY" format`)
	}
	return t, nil
}

// BirthDay is a Date that must not lie in the future and must be no more
// than 70 years before today.
type BirthDay struct {
	Date

	// Now is overridable for tests; zero means time.Now.
	Now func() time.Time
}

func (b BirthDay) Validate(v any) error {
	t, err := b.parse(v)
	if err != nil {
		return err
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	y, m, d := now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if t.After(today) {
		return invalid("birth date must not be in the future")
	}
	if t.Before(today.AddDate(-70, 0, 0)) {
		return invalid("birth date must be no more than 70 years ago")
	}
	return nil
}

// Gender accepts one of the enumerated integer codes.
type Gender struct{}

func (Gender) Empty(v any) bool { return false }

func (Gender) Validate(v any) error {
	i, ok := IntValue(v)
	if !ok {
		return invalid("value must be an integer")
	}
	if _, ok := Genders[i]; !ok {
		return invalid("gender must be 0, 1 or 2")
	}
	return nil
}

// ClientIDs accepts a sequence of non-negative integers.
type ClientIDs struct{}

func (ClientIDs) Empty(v any) bool {
	l, ok := v.([]any)
	return ok && len(l) == 0
}

func (ClientIDs) Validate(v any) error {
	l, ok := v.([]any)
	if !ok {
		return invalid("value must be a list")
	}
	for _, el := range l {
		i, ok := IntValue(el)
		if !ok {
			return invalid("client ids must be integers")
		}
		if i < 0 {
			return invalid("client ids must be non-negative")
		}
	}
	return nil
}
