package store

import (
	"errors"
	"os"
	"strings"
	"testing"
)

func TestWriteRaw_PrettyIndentsValidJSON(t *testing.T) {
	st := NewJSONStore(t.TempDir())

	if err := st.WriteRaw("league/dataset.json", []byte(`[{"name":"A","points":1}]`), true); err != nil {
		t.Fatalf("WriteRaw error: %v", err)
	}
	b, err := st.ReadRaw("league/dataset.json")
	if err != nil {
		t.Fatalf("ReadRaw error: %v", err)
	}
	if !strings.Contains(string(b), "\n  {") {
		t.Errorf("expected indented output, got %q", string(b))
	}
	if !st.Exists("league/dataset.json") {
		t.Error("Exists = false after write")
	}
}

func TestWriteRaw_InvalidJSONKeptVerbatim(t *testing.T) {
	st := NewJSONStore(t.TempDir())

	if err := st.WriteRaw("x.json", []byte("not json"), true); err != nil {
		t.Fatalf("WriteRaw error: %v", err)
	}
	b, _ := st.ReadRaw("x.json")
	if string(b) != "not json" {
		t.Errorf("body = %q, want verbatim", string(b))
	}
}

func TestWriteJSON(t *testing.T) {
	st := NewJSONStore(t.TempDir())

	if err := st.WriteJSON("ledger/abc.json", map[string]int{"rounds": 5}); err != nil {
		t.Fatalf("WriteJSON error: %v", err)
	}
	b, _ := st.ReadRaw("ledger/abc.json")
	if !strings.Contains(string(b), `"rounds": 5`) {
		t.Errorf("unexpected body %q", string(b))
	}
}

func TestReadRaw_Missing(t *testing.T) {
	st := NewJSONStore(t.TempDir())

	_, err := st.ReadRaw("nope.json")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
	if st.Exists("nope.json") {
		t.Error("Exists = true for missing file")
	}
}
