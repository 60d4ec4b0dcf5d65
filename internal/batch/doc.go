// Package batch runs the decklist-to-order pipeline end to end: it parses the
// decklist, expands card quantities into render jobs, drives the editor once
// per job, and writes the vendor order manifest. One browser serves the whole
// run; a lock file keeps concurrent runs from interleaving downloads.
package batch
