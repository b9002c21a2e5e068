// Package service implements the application's operations on top of the
// collection store: community membership and creation, scoped posts with
// likes and comments, saved posts, scheduled sessions, the profile and its
// skills, people discovery and connections.
//
// Services hold no state of their own. Every read goes to the store, so a
// change made in another tab is visible on the next call.
package service
