// Package repositories implements SQLite persistence for the local activity journal.
//
// Key Implementations:
//   - [ActivityRepository] : Append-only journal of tracker operation outcomes
//   - [JournalAdapter] : Adapts the repository to the tracker's journal callback
//
// Sequence numbers provide stable, human-readable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
