package parse

// frame is one buffer on the parser's explicit inclusion stack: the bytes
// of a single file (root or included), the current read position within
// it, and the directory sibling includes should resolve against.
type frame struct {
	name string
	dir  string
	buf  []byte
	pos  int
}

// normalize pops exhausted frames off the inclusion stack, except the
// last one: a fully-consumed root frame IS end of input, and must remain
// on the stack for eof()/position() to observe it.
func (p *Parser) normalize() {
	for len(p.frames) > 1 && p.top().pos >= len(p.top().buf) {
		p.frames = p.frames[:len(p.frames)-1]
	}
}

func (p *Parser) top() *frame { return p.frames[len(p.frames)-1] }

func (p *Parser) pushFrame(name, dir string, content []byte) {
	p.frames = append(p.frames, &frame{name: name, dir: dir, buf: content})
}

// eof reports whether the whole inclusion stack (not just the current
// frame) is exhausted.
func (p *Parser) eof() bool {
	p.normalize()
	return p.top().pos >= len(p.top().buf)
}

// peekAt returns the byte n positions ahead of the current read position
// within the current frame. It never looks across a frame boundary: a
// multi-byte token split across an include boundary is not valid input,
// and treating the lookahead as "not present" lets callers fail cleanly
// instead of needing cross-frame bounds logic.
func (p *Parser) peekAt(n int) (byte, bool) {
	p.normalize()
	f := p.top()
	if f.pos+n >= len(f.buf) {
		return 0, false
	}
	return f.buf[f.pos+n], true
}

func (p *Parser) advance() {
	p.normalize()
	f := p.top()
	if f.pos < len(f.buf) {
		f.pos++
	}
}

// position returns the file name and byte offset of the current read
// position, for error reporting.
func (p *Parser) position() (string, int) {
	p.normalize()
	f := p.top()
	return f.name, f.pos
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isSymbolByte reports whether b may appear in a Metamath symbol: printable
// ASCII (0x21-0x7e) excluding '$' (0x24).
func isSymbolByte(b byte) bool {
	return b >= 0x21 && b <= 0x7e && b != '$'
}

// skipWhitespaceAndComments advances past whitespace and $( ... $) comment
// regions. Comments may not nest; an unterminated comment at EOF is fatal.
func (p *Parser) skipWhitespaceAndComments() error {
	for {
		b, ok := p.peekAt(0)
		if !ok {
			return nil
		}
		if isSpace(b) {
			p.advance()
			continue
		}
		if b == '$' {
			if b2, ok2 := p.peekAt(1); ok2 && b2 == '(' {
				p.advance()
				p.advance()
				if err := p.skipComment(); err != nil {
					return err
				}
				continue
			}
		}
		return nil
	}
}

// skipComment consumes up to and including the closing $), assuming the
// opening $( has already been consumed.
func (p *Parser) skipComment() error {
	for {
		b, ok := p.peekAt(0)
		if !ok {
			return p.fatal("malformed comment")
		}
		if b == '$' {
			if b2, ok2 := p.peekAt(1); ok2 {
				if b2 == ')' {
					p.advance()
					p.advance()
					return nil
				}
				if b2 == '(' {
					return p.fatal("comments may not be nested")
				}
			}
		}
		p.advance()
	}
}

// readSymbol consumes a maximal run of symbol bytes. Callers are expected
// to have already skipped whitespace/comments.
func (p *Parser) readSymbol() (string, error) {
	var buf []byte
	for {
		b, ok := p.peekAt(0)
		if !ok || !isSymbolByte(b) {
			break
		}
		buf = append(buf, b)
		p.advance()
	}
	if len(buf) == 0 {
		return "", p.fatal("expected a symbol")
	}
	return string(buf), nil
}

// isLabelByte reports whether b may appear in a label: [A-Za-z0-9._-].
func isLabelByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') ||
		b == '.' || b == '_' || b == '-'
}

// readLabel consumes a maximal run of label bytes.
func (p *Parser) readLabel() (string, error) {
	var buf []byte
	for {
		b, ok := p.peekAt(0)
		if !ok || !isLabelByte(b) {
			break
		}
		buf = append(buf, b)
		p.advance()
	}
	if len(buf) == 0 {
		return "", p.fatal("expected a label")
	}
	return string(buf), nil
}

// atIntroducer reports whether the scanner sits at "$" followed by c.
func (p *Parser) atIntroducer(c byte) bool {
	b0, ok0 := p.peekAt(0)
	b1, ok1 := p.peekAt(1)
	return ok0 && ok1 && b0 == '$' && b1 == c
}

func (p *Parser) atTerminator() bool { return p.atIntroducer('.') }

func (p *Parser) consumeTerminator() { p.advance(); p.advance() }
