package league

import "strings"

// Resolve finds the record for a player name: the first exact match
// (case-insensitive, whitespace-trimmed) in dataset order, otherwise the
// first record whose name contains, or is contained by, the query.
//
// Substring matching is ambiguous when names overlap ("James" matches
// "LeBron James"); callers get whichever record comes first.
func (d *Dataset) Resolve(name string) (Record, bool) {
	if d == nil {
		return Record{}, false
	}
	q := normalizeName(name)
	if q == "" {
		return Record{}, false
	}
	for _, r := range d.Records {
		if r.key == q {
			return r, true
		}
	}
	for _, r := range d.Records {
		if strings.Contains(r.key, q) || strings.Contains(q, r.key) {
			return r, true
		}
	}
	return Record{}, false
}
