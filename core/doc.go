// Package core defines the shared types used across sinklog.
//
// It provides the Level type for severity filtering, the Entry type that
// represents a single log event, the Field type carrying the optional
// event attributes (system, context, error code) and the Registry that
// maps system and error identifiers to their labels.
//
// Severities follow the syslog ordering: 0 (Emergency) is the most severe
// and 7 (Debug) the least. The extra value Disable (8) is only meaningful
// as a handler threshold and switches the handler off.
//
// Entry objects are pooled via sync.Pool. The dispatcher takes one Entry
// per call, stamps it with a single timestamp, hands the same Entry to
// every handler and returns it to the pool once all handlers returned.
// Handlers must not retain an Entry after Handle returns.
//
// The Registry is owned explicitly by the application: it is created once
// at start-up, shared by every formatter that needs label lookups and only
// ever grows. Unknown identifiers are reported as lookup failures, which
// formatters treat as a reason to drop the event.
package core
