// Package maitre simulates a restaurant front desk: one receptionist actor
// serialises access to a small table inventory while independent group
// clients request tables and later request their bills.
//
// The engine is assembled from pluggable service layers:
//
//   - service/fabric       – named binary semaphores and the mutual-exclusion gate
//   - restaurant           – the shared record behind an exclusive-access guard
//   - service/receptionist – the coordinating actor and its allocation policy
//   - service/patron       – the group-side client of the protocol
//   - service/journal      – the state log appended on every status change
//
// End-users typically interact with the high-level Service façade exposed by
// the root package:
//
//	srv := maitre.New()
//	rt := srv.Runtime()
//	go rt.Run(ctx)
//	table, _ := rt.Patron(0).RequestTable(ctx)
//	_ = rt.Patron(0).RequestBill(ctx)
//
// For more details see the individual sub-packages.
package maitre
