// Package handler provides the HTTP surface of the local app host.
//
// Each handler struct wraps one service. Handlers decode the request, call
// the service and write either a DataResponse or an RFC 9457 Problem Details
// error produced by MapServiceError.
//
// # Routes
//
// NewRouter mounts everything under /api:
//
//	GET    /api/events                      change stream (SSE)
//	GET    /api/collections/{key}           raw collection value
//	GET    /api/communities                 merged catalog
//	POST   /api/communities/{id}/join       join, 409 when the limit is reached
//	GET    /api/communities/{id}/posts      community posts
//	GET    /api/skills/{slug}/posts         skill posts
//	GET    /api/saved                       saved posts
//	GET    /api/sessions                    scheduled sessions
//	GET    /api/profile                     profile
//	GET    /api/people                      people ranked by match
//
// See router.go for the complete table.
package handler
