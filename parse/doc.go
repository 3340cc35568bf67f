// Package parse implements the Metamath tokenizer/parser: a hand-written
// byte-level scanner that walks a source buffer, skipping whitespace and
// (non-nesting) comments, recognizing the statement introducers $c $v $d
// $f $e $a $p ${ $} $[ $], and mutating a db.Database and its scope stack
// directly as it goes.
//
// The scanner hand-rolls its byte classification instead of riding
// text/scanner: the grammar here is specified at the byte level, and a
// rune-oriented scanner would only get in the way of the inclusion
// bookkeeping, which must splice raw file bytes into the token stream
// mid-scan.
//
// File inclusion is handled with an explicit stack of source frames
// (buffer + position + directory), not native recursion, so that deeply
// nested $[ ... $] directives don't consume Go call-stack depth — this is
// the one place the Design Notes' "use an explicit stack, not recursion"
// guidance applies; block nesting (${ ... $}) recurses through the Go call
// stack instead, since blocks nest shallowly in practice.
package parse
