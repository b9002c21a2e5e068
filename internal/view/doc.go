// Package view holds pure functions that derive display values from
// collection snapshots: match scores, filtering, sorting, membership limits,
// displayed like counts and the merged community catalog.
//
// Nothing here reads or writes storage; callers pass the values in.
package view
