package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/johndoniego/erudite/internal/view"
)

// ErrMembershipLimitReached is matched by every *LimitError
var ErrMembershipLimitReached = errors.New("membership limit reached")

// LimitError rejects a membership set larger than Limit. Current is the size
// already held, or for a rejected write the size that was attempted.
type LimitError struct {
	Limit   int
	Current int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %d of %d communities joined", ErrMembershipLimitReached, e.Current, e.Limit)
}

func (e *LimitError) Unwrap() error {
	return ErrMembershipLimitReached
}

// WriteCheck inspects a value about to be persisted under its key. A non-nil
// error rejects the write before the medium is touched.
type WriteCheck func(raw []byte) error

// WithWriteCheck runs check on every write to key, whichever path the write
// takes: typed collections, raw writes and dump imports.
func WithWriteCheck(key string, check WriteCheck) Option {
	return func(s *Store) {
		if s.checks == nil {
			s.checks = make(map[string][]WriteCheck)
		}
		s.checks[key] = append(s.checks[key], check)
	}
}

// WithMembershipLimit rejects joined-community sets holding more than limit ids
func WithMembershipLimit(limit int) Option {
	return WithWriteCheck(KeyJoinedCommunities, func(raw []byte) error {
		var ids []string
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &ids); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrMalformedValue, KeyJoinedCommunities, err)
			}
		}
		if view.CheckMembershipSet(ids, limit) == view.LimitExceeded {
			return &LimitError{Limit: limit, Current: len(ids)}
		}
		return nil
	})
}

// check runs the write checks registered for key
func (s *Store) check(key string, raw []byte) error {
	for _, c := range s.checks[key] {
		if err := c(raw); err != nil {
			return err
		}
	}
	return nil
}
