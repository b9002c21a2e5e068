package database

import (
	"context"
	"fmt"
	"sort"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB stores each key as a record in the kv table
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates a new SurrealDB instance
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// Connect establishes a connection to SurrealDB
func (s *SurrealDB) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Get returns the value stored under key
func (s *SurrealDB) Get(ctx context.Context, key string) (string, error) {
	records, err := s.query(ctx, "SELECT value FROM type::thing('kv', $key)", map[string]interface{}{
		"key": key,
	})
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", ErrNotFound
	}
	value, ok := records[0]["value"].(string)
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key
func (s *SurrealDB) Set(ctx context.Context, key, value string) error {
	_, err := s.query(ctx, "UPSERT type::thing('kv', $key) SET key = $key, value = $value", map[string]interface{}{
		"key":   key,
		"value": value,
	})
	return err
}

// Remove deletes key
func (s *SurrealDB) Remove(ctx context.Context, key string) error {
	_, err := s.query(ctx, "DELETE type::thing('kv', $key)", map[string]interface{}{
		"key": key,
	})
	return err
}

// Keys lists all keys in lexical order
func (s *SurrealDB) Keys(ctx context.Context) ([]string, error) {
	records, err := s.query(ctx, "SELECT key FROM kv", nil)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(records))
	for _, r := range records {
		if k, ok := r["key"].(string); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// query runs a single statement and returns the records of its first result
func (s *SurrealDB) query(ctx context.Context, query string, vars map[string]interface{}) ([]map[string]interface{}, error) {
	if s.db == nil {
		return nil, ErrUnavailable
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil || len(*results) == 0 {
		return nil, nil
	}

	first := (*results)[0]
	if first.Status != "OK" {
		if first.Error != nil {
			return nil, fmt.Errorf("%w: %s", ErrQuery, first.Error.Message)
		}
		return nil, ErrQuery
	}

	var records []map[string]interface{}
	switch result := first.Result.(type) {
	case []interface{}:
		for _, item := range result {
			if m, ok := item.(map[string]interface{}); ok {
				records = append(records, m)
			}
		}
	case map[string]interface{}:
		records = append(records, result)
	}
	return records, nil
}

var _ Database = (*SurrealDB)(nil)
