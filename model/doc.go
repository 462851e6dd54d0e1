// Package model defines the domain types shared by every maitre service:
// requests, receptionist statuses, group lifecycle phases and the journaled
// state snapshot.
package model
