// Package consolehandler provides the console handler, which writes one
// formatted line per accepted entry to an io.Writer (default: os.Stdout).
//
// It is the baseline handler: beyond its name and threshold it keeps no
// state. Writes are serialized with a mutex so lines from concurrent
// callers never interleave.
package consolehandler
