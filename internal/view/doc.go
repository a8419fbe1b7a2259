// Package view provides output formatting and logging for the eligibility CLI.
//
// Commands render through a Viewer: the human view prints colored tables, the
// JSON and YAML views encode the same results for machines. Every view writes
// results to its Stream and logs to a separate writer.
package view
