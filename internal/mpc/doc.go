// Package mpc builds MakePlayingCards order documents.
//
// An order aggregates every rendered card front into the vendor's XML format:
// run-level details with the print-run bracket, one front entry per physical
// copy (slot index, filename, vendor re-match query), and empty back
// placeholders.
package mpc
