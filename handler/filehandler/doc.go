// Package filehandler provides a file handler that appends formatted log
// lines to <Dir>/<name>.log and rotates by size.
//
// When the active file grows past SizeLimit it is renamed to <name>.log.1
// and the existing backups shift up one slot, the oldest (.BackupCount)
// being dropped. At most BackupCount+1 files exist at any time.
//
// Every write goes straight to the file without buffering. A file deleted
// from under the handler is recreated on the next write. Storage failures
// are never returned to the caller: they are counted, reported to the
// diagnostics logger and, when a fresh file cannot be opened, leave the
// handler inert.
package filehandler
