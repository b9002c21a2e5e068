// Package model defines the records kept in the local collection store and
// the request types that produce them.
//
// Every persisted collection holds one of these shapes, serialised with
// encoding/json under a fixed key (see internal/store).
//
// # Domain Entities
//
//   - Community: a catalog or user-created learning community
//   - Post, Comment: content scoped to a community or a skill
//   - SavedPost: a denormalised snapshot of a bookmarked post
//   - ScheduledSession: a teaching or learning session with another person
//   - Profile, Skill: the single local user and their teach/learn skills
//   - Person, Connection: the people directory and the user's connections
//
// # Validation
//
// Request types expose Validate, which returns ValidationErrors keyed by form
// field. A nil result means the request is valid:
//
//	req := &CreateCommunityRequest{Name: "Go Programmers!"}
//	if errs := req.Validate(); errs != nil {
//	    // errs["description"] == "Description is required"
//	}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go and written by the
// HTTP layer.
package model
