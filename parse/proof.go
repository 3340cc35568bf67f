package parse

import "github.com/mm-verify/mm/db"

// parseProof parses the proof of a $p statement. The cursor is expected to
// sit at the $= marker; on return it sits at the statement's closing $.,
// which the caller (parseProvable, via termWrap) consumes.
//
// Decoding a compressed proof's letter run into step indices happens in
// the verify package, once the assertion's MandatoryFrame is known; this
// package only separates the two proof encodings and extracts their raw
// pieces.
func (p *Parser) parseProof() (*db.RawProof, error) {
	// consume $=
	p.advance()
	p.advance()

	if err := p.skipWhitespaceAndComments(); err != nil {
		return nil, err
	}
	if b0, _ := p.peekAt(0); b0 == '(' {
		return p.parseCompressedProof()
	}
	return p.parseUncompressedProof()
}

func (p *Parser) parseUncompressedProof() (*db.RawProof, error) {
	var tokens []db.ProofToken
	for {
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.fatal("missing $. terminator in proof")
		}
		if p.atTerminator() {
			return &db.RawProof{Tokens: tokens}, nil
		}
		b0, _ := p.peekAt(0)
		if b0 == '$' {
			return nil, p.fatal("missing $. terminator in proof")
		}
		if b0 == '?' {
			p.advance()
			tokens = append(tokens, db.ProofToken{Unknown: true})
			continue
		}
		label, err := p.readLabel()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, db.ProofToken{Label: label})
	}
}

func (p *Parser) parseCompressedProof() (*db.RawProof, error) {
	// consume '('
	p.advance()

	var extra []string
	for {
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.fatal("missing ) in compressed proof")
		}
		if b0, _ := p.peekAt(0); b0 == ')' {
			p.advance()
			break
		}
		label, err := p.readLabel()
		if err != nil {
			return nil, err
		}
		extra = append(extra, label)
	}

	var chars []byte
	for {
		if err := p.skipWhitespaceAndComments(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.fatal("missing $. terminator in proof")
		}
		if p.atTerminator() {
			break
		}
		b0, _ := p.peekAt(0)
		if b0 == '$' {
			return nil, p.fatal("missing $. terminator in proof")
		}
		if (b0 < 'A' || b0 > 'Z') && b0 != '?' {
			return nil, p.fatal("invalid character in compressed proof")
		}
		chars = append(chars, b0)
		p.advance()
	}

	return &db.RawProof{Compressed: true, Extra: extra, Chars: string(chars)}, nil
}
