package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Birthday is a calendar date accepted as "YYYY-MM-DD" or an RFC 3339 timestamp.
// It is normalized to midnight UTC.
type Birthday struct {
	time.Time
}

// NewBirthday returns the Birthday for the given calendar day.
func NewBirthday(year int, month time.Month, day int) Birthday {
	return Birthday{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Birthday) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("birthday must be a date string: %w", err)
	}

	for _, layout := range []string{dateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			*b = NewBirthday(y, m, d)
			return nil
		}
	}
	return fmt.Errorf("birthday %q is not a valid date", raw)
}

// Ptr returns the date as a *time.Time, nil for a nil Birthday.
func (b *Birthday) Ptr() *time.Time {
	if b == nil {
		return nil
	}
	t := b.Time
	return &t
}
