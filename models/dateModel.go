package models

import (
	"fmt"
	"strings"
	"time"
)

// FlexDate is a request-side date that accepts both plain YYYY-MM-DD and
// full RFC 3339 timestamps. Stored documents always carry time.Time.
type FlexDate struct {
	time.Time
}

func (d *FlexDate) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			d.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", raw)
}

func (d FlexDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(time.RFC3339) + `"`), nil
}

// TimePtr converts to the storage representation. Safe on a nil receiver.
func (d *FlexDate) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
