// Package singer writes SCHEMA, RECORD and STATE messages as JSON lines.
//
// Each message is a single JSON object terminated by a newline. Consumers
// read the stream line by line, so a message is never split across writes.
package singer
