// Package metrics counts sync activity with Prometheus collectors.
//
// A tap is a short-lived process with nothing to scrape, so collectors live
// in a private registry and are written once, at exit, to a file in the
// node-exporter textfile format.
package metrics
