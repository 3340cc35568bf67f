// Package verify decodes and replays proofs against a built db.Database: a
// small interpreter that processes a flat stream of proof steps over an
// operand stack of typed symbol sequences.
//
// Decoding a compressed proof's letter run requires the target assertion's
// MandatoryFrame, which is only available once the whole database has been
// built, so decoding lives here rather than in package parse.
package verify
