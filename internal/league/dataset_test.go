package league

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatrey56/hoops-draft/internal/store"
)

const sample = `[
  {"name": "LeBron James", "team": "LAL", "points": 1708, "assists": "589", "rebounds": 546},
  {"name": "Bronny James", "team": "LAL", "points": 52, "assists": 18, "rebounds": 20},
  {"name": "Stephen Curry", "team": "GSW", "points": 1718, "rebounds": 309}
]`

func TestParse_AttributesFromFirstRecord(t *testing.T) {
	ds, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"assists", "points", "rebounds"}, ds.Attributes)
	require.Len(t, ds.Records, 3)
	assert.Equal(t, 589.0, ds.Records[0].Value("assists"), "numeric strings are accepted")
	assert.Equal(t, "LAL", ds.Records[0].Team)
	assert.Equal(t, 0.0, ds.Records[2].Value("assists"), "missing attribute is zero")
}

func TestParse_DataEnvelope(t *testing.T) {
	ds, err := Parse([]byte(`{"data": [{"name": "A", "points": 3}], "pagination": {"pages": 1}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"points"}, ds.Attributes)
	assert.Equal(t, 1, ds.Len())
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty body":       "",
		"empty array":      "[]",
		"garbage":          "{{",
		"missing name":     `[{"points": 1}]`,
		"non numeric":      `[{"name": "A", "points": "lots"}]`,
		"bool attribute":   `[{"name": "A", "points": 1}, {"name": "B", "points": true}]`,
		"empty data field": `{"data": []}`,
		"nan string":       `[{"name": "A", "points": "NaN"}]`,
		"inf string":       `[{"name": "A", "points": "Inf"}]`,
		"negative inf":     `[{"name": "A", "points": 1}, {"name": "B", "points": "-Infinity"}]`,
		"out of range":     `[{"name": "A", "points": 1e400}]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyIsErrEmpty(t *testing.T) {
	_, err := Parse([]byte("[]"))
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestResolve(t *testing.T) {
	ds, err := Parse([]byte(sample))
	require.NoError(t, err)

	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{"LeBron James", "LeBron James", true},
		{"  lebron   JAMES ", "LeBron James", true},
		{"bronny james", "Bronny James", true},
		{"Curry", "Stephen Curry", true},
		// Query containing a record name also matches.
		{"Stephen Curry Jr", "Stephen Curry", true},
		// Overlapping names resolve to the first record in dataset order.
		{"James", "LeBron James", true},
		{"Nikola Jokic", "", false},
		{"   ", "", false},
	}
	for _, c := range cases {
		rec, ok := ds.Resolve(c.query)
		assert.Equal(t, c.ok, ok, c.query)
		assert.Equal(t, c.want, rec.Name, c.query)
	}
}

func TestResolve_NilDataset(t *testing.T) {
	var ds *Dataset
	_, ok := ds.Resolve("anyone")
	assert.False(t, ok)
	assert.Equal(t, 0, ds.Len())
}

func TestFileSource(t *testing.T) {
	st := store.NewJSONStore(t.TempDir())
	src := NewFileSource(st, "league/dataset.json")

	_, err := src.Load()
	require.Error(t, err, "missing file")

	require.NoError(t, st.WriteRaw("league/dataset.json", []byte(sample), true))
	ds, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
}
