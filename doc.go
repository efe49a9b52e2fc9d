// Package pinstack is the Composition Root for the pinstack application.
//
// pinstack is a local-first board keeper: a small collection of boards
// (styled notes with attached images and links) whose state is persisted
// automatically so no work is lost across restarts or crashes.
//
// Architecture:
//
//   - pkg/core holds the domain: the board Collection with its invariants
//     (never empty, active pointer always resolves) and the Service facade.
//   - pkg/dual is the durable-store adapter: every record is written to a
//     primary and a secondary key-value store, reads fall back and
//     self-heal, and no persistence failure ever reaches the caller.
//   - pkg/sched schedules flushes: debounced on mutation, immediate on
//     active-board changes, periodic as a safety net, and synchronous on
//     suspend/teardown.
//   - pkg/adapters provides the stores: filesystem (default primary, atomic
//     writes, watchable), SQLite (alternative primary), Redis
//     (session-scoped secondary) and an in-process map.
//
// Usage:
//
//	svc, err := pinstack.New("./data",
//		pinstack.WithLogger(logger),
//	)
//	defer svc.Close(ctx) // final flush
//
//	b := svc.CreateBoard()
//	svc.UpdateContent(b.ID, "groceries: oat milk")
package pinstack
