// Package receptionist implements the coordinating actor of the restaurant
// simulation. It is the only writer of the table assignment record: it waits
// for group requests, assigns tables or parks groups in the waiting room,
// settles bills and hands vacated tables to the longest-waiting group, all
// under the single mutual-exclusion gate provided by the fabric.
package receptionist
