// Package sysloghandler provides a handler that forwards entries to a
// remote syslog server, one UDP datagram per entry.
//
// Two framings are supported. With FormatRFC3164 a line looks like
//
//	<3>Jan 15 12:00:00 dev1 app: NETWORK@eth0 Connection timeout(#10): link lost
//
// and with FormatRFC5424
//
//	<3>1 2026-01-15T12:00:00 dev1 app - - - BOMNETWORK@eth0 Connection timeout(#10): link lost
//
// The PRI value is the bare severity; no facility is added. Hostname and
// appname are fixed when the handler is built.
//
// The server address is resolved on first use and cached for CacheTTL.
// Delivery is best effort: resolution and send errors are counted and
// reported to the diagnostics logger, never returned.
package sysloghandler
