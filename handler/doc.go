// Package handler provides the Handler interface shared by every log
// destination and the building blocks used to implement it.
//
// A handler has a unique name, a severity threshold that can be changed at
// runtime, and a line template fixed at construction. An entry is emitted
// only if the handler is not disabled and the entry's severity is between
// Emergency and the threshold; everything else is dropped silently. Base
// implements that filtering once, so concrete handlers only deal with
// their transport or storage.
//
// Built-in handlers live in subpackages:
//
//   - consolehandler writes lines to stdout or any io.Writer.
//   - filehandler appends to a local file with size-triggered rotation and
//     numbered backups.
//   - sysloghandler sends RFC3164 or RFC5424 framed datagrams over UDP.
//
// Handlers are synchronous. The file and syslog handlers absorb failures
// that only affect one event, such as a lost datagram or a failed rename
// during rotation: they are reported to the diagnostics logger and counted
// in Stats. The console handler returns write errors. MultiHandler keeps handlers in registration
// order and delivers every entry to all of them even when one fails.
package handler
