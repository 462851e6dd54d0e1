// Package journal declares the observability sink for receptionist state
// transitions. journal/memory keeps entries in process for tests and
// inspection; journal/fs persists one JSON document per transition through
// the abstract file storage layer.
package journal
