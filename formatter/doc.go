// Package formatter turns accepted log entries into text lines.
//
// A Template is compiled once, at handler construction, from a pattern
// such as DefaultTemplate. Placeholders are resolved per entry:
//
//	{timestamp}  entry time in the formatter's layout
//	{level}      severity name (EMERGENCY .. DEBUG)
//	{priority}   severity number, for syslog framing
//	{sys}        system label, GENERAL when the entry has none
//	{context}    "@" + context with spaces replaced by "_", or nothing
//	{err_title}  "<description>(#<id>): " or nothing
//	{msg}        the message
//
// Line is the only built-in Formatter. It fails closed: an entry naming a
// system or error code that is not in the Registry renders nothing, and
// the handler drops it.
//
// Rendering appends straight into a caller-provided bytes.Buffer and uses
// Append-style functions (time.AppendFormat, strconv.AppendInt) so the hot
// path does not allocate. Buffers are pooled; buffers larger than 64 KiB
// are not returned to the pool.
package formatter
