package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crimsondominion/crimson-go/internal/model"
)

// timeLayout is the textual timestamp format written to both dialects.
// Fixed-width fractions keep lexical and chronological order aligned.
const timeLayout = "2006-01-02 15:04:05.000000"

func timeValue(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullTimeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timeValue(*t)
}

// dbTime scans timestamps stored as text or returned as time.Time by the driver.
type dbTime struct {
	Time  time.Time
	Valid bool
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

func (t dbTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// jsonPayload scans a JSON object column.
type jsonPayload struct {
	Payload model.Payload
}

func (p *jsonPayload) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		p.Payload = model.Payload{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into json payload", src)
	}

	payload := model.Payload{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("decoding json payload: %w", err)
	}
	if payload == nil {
		payload = model.Payload{}
	}
	p.Payload = payload
	return nil
}

func payloadValue(p model.Payload) (driver.Value, error) {
	if p == nil {
		p = model.Payload{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding json payload: %w", err)
	}
	return string(b), nil
}
