// Package restaurant holds the shared mutable record of the simulation (the
// table assignment map, waiting counter, request slot and receptionist
// status) together with the exclusive-access guard that is the only way to
// reach it.
package restaurant
