package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Dump maps app keys to the JSON stored under them. Its encoding matches a
// JSON object copied out of the browser's local storage, so a web app export
// can be loaded directly.
type Dump map[string]json.RawMessage

// Export collects every app key currently holding a value
func (s *Store) Export(ctx context.Context) (Dump, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}

	dump := make(Dump, len(keys))
	for _, key := range keys {
		if !IsAppKey(key) {
			continue
		}
		if raw := s.ReadRaw(ctx, key); raw != nil {
			dump[key] = raw
		}
	}
	return dump, nil
}

// Import writes every app key in dump and returns the keys written in sorted
// order. Foreign keys are skipped. A value that is not valid JSON or fails a
// write check aborts the import before anything is written.
func (s *Store) Import(ctx context.Context, dump Dump) ([]string, error) {
	keys := make([]string, 0, len(dump))
	for key, raw := range dump {
		if !IsAppKey(key) {
			continue
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("value for %s is not valid JSON", key)
		}
		if err := s.check(key, raw); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		if err := s.WriteRaw(ctx, key, dump[key]); err != nil {
			return keys[:i], err
		}
	}
	return keys, nil
}
