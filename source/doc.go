// Package source resolves Metamath file-inclusion directives ($[ path $])
// into byte content, relative to the including file's directory, with
// include-once semantics: a path already resolved anywhere in the current
// load is substituted with nothing on subsequent encounters.
//
// The package only reads bytes and tracks which paths it has already
// served. It has no notion of scopes or grammar — the parse package
// enforces that $[ only appears at the outermost scope, since that is a
// property of the parse, not of file resolution.
package source
