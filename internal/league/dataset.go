// Package league loads the league-wide attribute dataset used by the
// comprehensive scorer and resolves drafted players to its records.
package league

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ErrEmpty is returned when a dataset parses but holds no usable records.
var ErrEmpty = errors.New("league dataset is empty")

// identityFields are record keys that never count as attributes.
var identityFields = map[string]bool{
	"name":      true,
	"team":      true,
	"id":        true,
	"player_id": true,
}

// Record is one player's league-wide attribute values.
type Record struct {
	Name   string             `json:"name"`
	Team   string             `json:"team,omitempty"`
	Values map[string]float64 `json:"values"`

	key string
}

// Value returns the attribute value, zero when absent.
func (r Record) Value(attr string) float64 {
	return r.Values[attr]
}

// Dataset is a validated, ordered set of records sharing one attribute set.
type Dataset struct {
	Attributes []string
	Records    []Record
}

// Len reports the record count; a nil dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

var fold = cases.Fold()

func normalizeName(name string) string {
	return fold.String(strings.Join(strings.Fields(name), " "))
}

// Parse decodes a JSON dataset. The body is either an array of records or an
// object with a "data" array. The attribute set is taken from the first
// record and every attribute must hold a number (or a numeric string).
func Parse(raw []byte) (*Dataset, error) {
	rows, err := decodeRows(raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	attrs := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		if !identityFields[k] {
			attrs = append(attrs, k)
		}
	}
	sort.Strings(attrs)

	ds := &Dataset{Attributes: attrs, Records: make([]Record, 0, len(rows))}
	for i, row := range rows {
		rec, err := buildRecord(row, attrs)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func decodeRows(raw []byte) ([]map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	if trimmed[0] == '{' {
		var env struct {
			Data []map[string]json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode league dataset: %w", err)
		}
		return env.Data, nil
	}
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("decode league dataset: %w", err)
	}
	return rows, nil
}

func buildRecord(row map[string]json.RawMessage, attrs []string) (Record, error) {
	var rec Record
	if v, ok := row["name"]; ok {
		if err := json.Unmarshal(v, &rec.Name); err != nil {
			return Record{}, fmt.Errorf("name: %w", err)
		}
	}
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		return Record{}, errors.New("name is required")
	}
	if v, ok := row["team"]; ok {
		// Team is informational; a non-string team is ignored.
		_ = json.Unmarshal(v, &rec.Team)
	}
	rec.key = normalizeName(rec.Name)

	rec.Values = make(map[string]float64, len(attrs))
	for _, attr := range attrs {
		v, ok := row[attr]
		if !ok {
			continue
		}
		f, err := parseNumber(v)
		if err != nil {
			return Record{}, fmt.Errorf("attribute %q: %w", attr, err)
		}
		rec.Values[attr] = f
	}
	return rec, nil
}

func parseNumber(v json.RawMessage) (float64, error) {
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return finite(f)
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return 0, fmt.Errorf("not a number: %s", string(v))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return finite(f)
}

// finite rejects NaN and infinities; they cannot be compared or encoded.
func finite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", f)
	}
	return f, nil
}
