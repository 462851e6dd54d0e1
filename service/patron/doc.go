// Package patron implements the group side of the front-desk protocol. A
// patron requests a table, waits for its grant signal, occupies the table
// and finally requests its bill. The receptionist core treats patrons as
// external collaborators; this package exists so simulations and tests have
// a well-behaved producer.
package patron
