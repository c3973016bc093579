package league

import (
	"encoding/json"
	"sort"
	"time"
)

// Field is one record key seen in a raw dataset.
type Field struct {
	Key       string   `json:"key"`
	Types     []string `json:"types"`
	Present   int      `json:"present"`
	Attribute bool     `json:"attribute"`
}

// Inventory describes the shape of a raw dataset: which keys appear, with
// what JSON types, and in how many records. Uniform is false when any
// attribute key is missing from some record.
type Inventory struct {
	GeneratedAtUTC string  `json:"generated_at_utc"`
	Records        int     `json:"records"`
	Uniform        bool    `json:"uniform"`
	Fields         []Field `json:"fields"`
}

// BuildInventory scans the same array or {"data": [...]} shapes Parse accepts.
func BuildInventory(raw []byte) (*Inventory, error) {
	rows, err := decodeRows(raw)
	if err != nil {
		return nil, err
	}
	inv := &Inventory{
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Records:        len(rows),
		Uniform:        true,
		Fields:         []Field{},
	}
	if len(rows) == 0 {
		return inv, nil
	}

	types := make(map[string]map[string]struct{})
	present := make(map[string]int)
	for _, row := range rows {
		for k, v := range row {
			set, ok := types[k]
			if !ok {
				set = make(map[string]struct{})
				types[k] = set
			}
			set[jsonType(v)] = struct{}{}
			present[k]++
		}
	}

	keys := make([]string, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ts := make([]string, 0, len(types[k]))
		for t := range types[k] {
			ts = append(ts, t)
		}
		sort.Strings(ts)
		_, first := rows[0][k]
		attr := first && !identityFields[k]
		if attr && present[k] < len(rows) {
			inv.Uniform = false
		}
		inv.Fields = append(inv.Fields, Field{Key: k, Types: ts, Present: present[k], Attribute: attr})
	}
	return inv, nil
}

func jsonType(v json.RawMessage) string {
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return "invalid"
	}
	switch x.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64:
		return "number"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
