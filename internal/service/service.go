package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/johndoniego/erudite/internal/model"
)

// Catalog provides the static communities and people directory
type Catalog interface {
	Communities() []model.Community
	Community(id string) (model.Community, bool)
	People() []model.Person
	Person(id string) (model.Person, bool)
}

// Clock returns the current time
type Clock func() time.Time

// IDFunc returns a new unique identifier
type IDFunc func() string

func clockOrNow(c Clock) Clock {
	if c != nil {
		return c
	}
	return func() time.Time { return time.Now().UTC() }
}

func idOrUUID(f IDFunc) IDFunc {
	if f != nil {
		return f
	}
	return uuid.NewString
}
