package league

import (
	"fmt"

	"github.com/aatrey56/hoops-draft/internal/store"
)

// FileSource reads the dataset from a JSON store path on every Load, so a
// freshly fetched dataset is picked up by the next scoring pass.
type FileSource struct {
	Store *store.JSONStore
	Rel   string
}

func NewFileSource(st *store.JSONStore, rel string) *FileSource {
	return &FileSource{Store: st, Rel: rel}
}

func (s *FileSource) Load() (*Dataset, error) {
	raw, err := s.Store.ReadRaw(s.Rel)
	if err != nil {
		return nil, fmt.Errorf("read league dataset %s: %w", s.Rel, err)
	}
	ds, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse league dataset %s: %w", s.Rel, err)
	}
	return ds, nil
}
