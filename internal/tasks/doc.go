// Package tasks runs long-running watchlist operations with real-time progress reporting.
//
// # Bulk Import
//
// [ImportEngine.BulkImport] creates movies from parsed CSV rows:
//
//  1. Validate : every row is checked locally; invalid rows are reported and never sent
//  2. Dedupe   : optionally fetches the collection and skips rows already present
//  3. Create   : a worker pool issues create requests through a shared rate limiter
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
