package parse

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mm-verify/mm/db"
	"github.com/mm-verify/mm/source"
)

// maxErrors bounds how many non-fatal, declaration-level errors a parse
// accumulates before giving up.
const maxErrors = 10

// Parser walks a Metamath source file (and any files it includes) and
// populates a db.Database. A Parser is single-use: construct one with New
// per file.
type Parser struct {
	loader   *source.Loader
	database *db.Database
	scopes   []*db.Scope
	frames   []*frame
	errs     []error
}

// New returns a Parser ready to parse a single source, writing into
// database.
func New(database *db.Database) *Parser {
	return &Parser{
		loader:   source.NewLoader(),
		database: database,
		scopes:   []*db.Scope{db.NewScope()},
	}
}

// ParseFile reads path as the root source file and parses it (including
// any files it transitively $[ includes $]) into a fresh Database.
func ParseFile(path string) (*db.Database, error) {
	database := db.New()
	p := New(database)
	content, dir, err := p.loader.ReadRoot(path)
	if err != nil {
		return nil, err
	}
	p.pushFrame(path, dir, content)
	if err := p.run(true); err != nil {
		return nil, err
	}
	return database, p.finish()
}

// ParseBytes parses content as a complete source into a fresh Database.
// There is no including file's directory, so any $[ includes $] in content
// resolve against the process's working directory. It exists for tests that would rather not touch
// the filesystem.
func ParseBytes(name string, content []byte) (*db.Database, error) {
	database := db.New()
	p := New(database)
	p.pushFrame(name, "", content)
	if err := p.run(true); err != nil {
		return nil, err
	}
	return database, p.finish()
}

func (p *Parser) curScope() *db.Scope { return p.scopes[len(p.scopes)-1] }

func (p *Parser) pushScope() {
	p.scopes = append(p.scopes, p.curScope().Clone())
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

// fatal builds a ParseError marked Fatal, anchored at the current read
// position.
func (p *Parser) fatal(reason string) error {
	file, off := p.position()
	return &ParseError{File: file, Offset: off, Reason: reason, Fatal: true}
}

// recordError wraps err as a non-fatal ParseError (unless it already is a
// ParseError) and appends it to the accumulated error list. It reports
// whether the parse should abort: a Fatal error aborts at once, and once
// maxErrors is reached, there is nothing more to learn by continuing.
func (p *Parser) recordError(err error) (abort bool) {
	if err == nil {
		return false
	}
	var pe *ParseError
	if perr, ok := err.(*ParseError); ok {
		pe = perr
	} else {
		file, off := p.position()
		pe = &ParseError{File: file, Offset: off, Reason: err.Error()}
	}
	p.errs = append(p.errs, pe)
	return pe.Fatal || len(p.errs) >= maxErrors
}

// finish joins every accumulated non-fatal error into one.
func (p *Parser) finish() error {
	if len(p.errs) == 0 {
		return nil
	}
	var merr *multierror.Error
	for _, e := range p.errs {
		merr = multierror.Append(merr, e)
	}
	return merr.ErrorOrNil()
}

// run is the statement dispatch loop. At top level it stops at true EOF;
// inside a ${ block it stops at the matching $}.
func (p *Parser) run(topLevel bool) error {
	for {
		if err := p.skipWhitespaceAndComments(); err != nil {
			return err
		}
		if p.eof() {
			if !topLevel {
				return p.fatal("unterminated block: missing $}")
			}
			return nil
		}
		b0, _ := p.peekAt(0)
		if b0 == '$' {
			b1, _ := p.peekAt(1)
			switch b1 {
			case 'c':
				p.advance()
				p.advance()
				if p.recordError(p.parseConstants()) {
					return p.finish()
				}
				continue
			case 'v':
				p.advance()
				p.advance()
				if p.recordError(p.parseVariables()) {
					return p.finish()
				}
				continue
			case 'd':
				p.advance()
				p.advance()
				if p.recordError(p.parseDisjoint()) {
					return p.finish()
				}
				continue
			case '[':
				p.advance()
				p.advance()
				if err := p.parseInclude(); err != nil {
					return err
				}
				continue
			case '{':
				p.advance()
				p.advance()
				p.pushScope()
				if err := p.run(false); err != nil {
					return err
				}
				p.popScope()
				continue
			case '}':
				if topLevel {
					return p.fatal("unmatched $}")
				}
				p.advance()
				p.advance()
				return nil
			case ']':
				return p.fatal("unmatched $]")
			default:
				return p.fatal("unknown statement introducer")
			}
		}
		if isLabelByte(b0) {
			label, err := p.readLabel()
			if err != nil {
				return err
			}
			if err := p.skipWhitespaceAndComments(); err != nil {
				return err
			}
			if !p.peekIntroducer() {
				return p.fatal("expected a statement introducer after label")
			}
			b1, _ := p.peekAt(1)
			p.advance()
			p.advance()
			switch b1 {
			case 'f':
				if p.recordError(p.parseFloating(label)) {
					return p.finish()
				}
			case 'e':
				if p.recordError(p.parseEssential(label)) {
					return p.finish()
				}
			case 'a':
				if p.recordError(p.parseAxiom(label)) {
					return p.finish()
				}
			case 'p':
				if p.recordError(p.parseProvable(label)) {
					return p.finish()
				}
			default:
				return p.fatal("a label may only introduce $f, $e, $a, or $p")
			}
			continue
		}
		return p.fatal("expected a label or statement introducer")
	}
}

func (p *Parser) peekIntroducer() bool {
	b0, ok0 := p.peekAt(0)
	_, ok1 := p.peekAt(1)
	return ok0 && ok1 && b0 == '$'
}

// readSymbolList reads whitespace-separated symbols up to the statement
// terminator $., without consuming the terminator.
func (p *Parser) readSymbolList() ([]string, error) {
	var out []string
	for {
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.fatal("missing $. terminator")
		}
		if p.atTerminator() {
			return out, nil
		}
		if b0, _ := p.peekAt(0); b0 == '$' {
			return nil, p.fatal("missing $. terminator")
		}
		sym, err := p.readSymbol()
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
}

// expectTerminator consumes the statement's closing $., resynchronizing by
// scanning forward to the next $. if the cursor isn't already on one —
// this is what lets a non-fatal error keep the whole parse alive.
func (p *Parser) expectTerminator() error {
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	if p.atTerminator() {
		p.consumeTerminator()
		return nil
	}
	for !p.eof() {
		if err := p.skipWhitespaceAndComments(); err != nil {
			return err
		}
		if p.eof() {
			break
		}
		if p.atTerminator() {
			p.consumeTerminator()
			return nil
		}
		p.advance()
	}
	return p.fatal("missing $. terminator")
}

func (p *Parser) parseConstants() error {
	names, err := p.readSymbolList()
	if err != nil {
		return err
	}
	if len(p.scopes) != 1 {
		return p.termWrap(errors.New("$c is only allowed at the outermost scope"))
	}
	var first error
	for _, name := range names {
		if _, err := p.database.AddConstant(name); err != nil && first == nil {
			first = err
		}
	}
	return p.termWrap(first)
}

func (p *Parser) parseVariables() error {
	names, err := p.readSymbolList()
	if err != nil {
		return err
	}
	var first error
	for _, name := range names {
		if _, err := p.database.AddVariable(p.curScope(), name); err != nil && first == nil {
			first = err
		}
	}
	return p.termWrap(first)
}

func (p *Parser) parseDisjoint() error {
	names, err := p.readSymbolList()
	if err != nil {
		return err
	}
	return p.termWrap(p.database.DisjointStmt(p.curScope(), names))
}

// termWrap consumes the terminator regardless of whether declErr is set,
// so a declaration-level error still leaves the scanner resynchronized at
// the next statement.
func (p *Parser) termWrap(declErr error) error {
	if err := p.expectTerminator(); err != nil {
		return err
	}
	return declErr
}

func (p *Parser) parseInclude() error {
	if len(p.scopes) != 1 {
		return p.fatal("$[ inclusion is only allowed at the outermost scope")
	}
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	path, err := p.readFileSpec()
	if err != nil {
		return err
	}
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	if !p.atIntroducer(']') {
		return p.fatal("missing $] after included file name")
	}
	p.advance()
	p.advance()

	curDir := p.top().dir
	content, idir, skip, err := p.loader.Resolve(curDir, path)
	if err != nil {
		return p.fatal(err.Error())
	}
	if skip {
		return nil
	}
	p.pushFrame(path, idir, content)
	return nil
}

// readFileSpec reads the bare file name token of a $[ ... $] directive:
// any run of non-whitespace bytes up to but not including '$'.
func (p *Parser) readFileSpec() (string, error) {
	var buf []byte
	for {
		b, ok := p.peekAt(0)
		if !ok {
			return "", p.fatal("missing $] after included file name")
		}
		if isSpace(b) || b == '$' {
			break
		}
		buf = append(buf, b)
		p.advance()
	}
	if len(buf) == 0 {
		return "", p.fatal("expected an included file name")
	}
	return string(buf), nil
}

func (p *Parser) parseFloating(label string) error {
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	typecode, err := p.readSymbol()
	if err != nil {
		return err
	}
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	v, err := p.readSymbol()
	if err != nil {
		return err
	}
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	if !p.atTerminator() {
		return p.fatal("missing $. terminator")
	}
	_, err = p.database.FloatingStmt(p.curScope(), label, typecode, v)
	return p.termWrap(err)
}

func (p *Parser) parseEssential(label string) error {
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	typecode, err := p.readSymbol()
	if err != nil {
		return err
	}
	syms, err := p.readSymbolList()
	if err != nil {
		return err
	}
	_, declErr := p.database.EssentialStmt(p.curScope(), label, typecode, syms)
	return p.termWrap(declErr)
}

func (p *Parser) parseAxiom(label string) error {
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	typecode, err := p.readSymbol()
	if err != nil {
		return err
	}
	syms, err := p.readSymbolList()
	if err != nil {
		return err
	}
	_, declErr := p.database.AxiomStmt(p.curScope(), label, typecode, syms)
	return p.termWrap(declErr)
}

func (p *Parser) parseProvable(label string) error {
	if err := p.skipWhitespaceAndComments(); err != nil {
		return err
	}
	typecode, err := p.readSymbol()
	if err != nil {
		return err
	}
	syms, err := p.readSymbolListUntilProofMarker()
	if err != nil {
		return err
	}
	proof, err := p.parseProof()
	if err != nil {
		return err
	}
	_, declErr := p.database.ProvableStmt(p.curScope(), label, typecode, syms, proof)
	return p.termWrap(declErr)
}

// readSymbolListUntilProofMarker reads the conclusion symbols of a $p
// statement, stopping at the $= proof marker instead of $.
func (p *Parser) readSymbolListUntilProofMarker() ([]string, error) {
	var out []string
	for {
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.fatal("missing $= in $p statement")
		}
		if p.atIntroducer('=') {
			return out, nil
		}
		if b0, _ := p.peekAt(0); b0 == '$' {
			return nil, p.fatal("missing $= in $p statement")
		}
		sym, err := p.readSymbol()
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
}
