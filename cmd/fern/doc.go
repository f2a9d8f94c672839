// Command fern extracts typed IMDb records from page documents.
//
// It parses saved documents offline, looks titles and people up on the live
// site, serves the lookups over HTTP and runs the Kafka parsing worker.
package main
