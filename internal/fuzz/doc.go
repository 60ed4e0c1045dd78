// Package fuzztests houses Go fuzz harnesses for the line scanner and the
// lint engine. They guard against panics and broken position invariants on
// arbitrary input.
//
// Purpose: feed arbitrary bytes through scan.Scanner and lint.Engine in every mode.
//
// Out of scope: corpus generation, file output and the CLI.
package fuzztests
