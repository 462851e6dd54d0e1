// Package fabric declares the synchronization transport consumed by the
// receptionist and the groups: a set of named binary semaphores plus the
// mutual-exclusion gate over the shared restaurant record. Implementations
// live in sub-packages; fabric/memory provides the in-process one.
package fabric
