// Package decklist parses card lists and expands them into render jobs.
//
// A decklist is a comma-separated file of `quantity,name,set,collector_number`
// rows. The parser normalizes quantities, applies an optional exact-match name
// filter, and tolerates malformed rows; expansion resolves artwork assets and
// assigns each physical copy a deterministic, collision-free output filename.
package decklist
