package path

import (
	"fmt"
	"strings"
)

// Parse parses query text into a filter. Alternative patterns are
// separated by '|'; within a pattern, key segments are dot-separated and
// index segments bracketed:
//
//	Processes[0].Threads[*].Stack
//	Sessions[*].Attributes | Sessions[*].Environment
//	Memory[0..15]
//	'weird key'.value
//
// Empty pattern text denotes the root pattern, so Parse("") yields a
// filter matching only the root. A malformed query returns a
// *SyntaxError.
func Parse(text string) (Filter, error) {
	p := &parser{text: text}
	var pats []Pattern
	for {
		pat, err := p.pattern()
		if err != nil {
			return None, err
		}
		pats = append(pats, pat)
		p.skipSpace()
		if p.eof() {
			break
		}
		if p.text[p.i] != '|' {
			return None, p.errf("expected '|' or end of query")
		}
		p.i++
	}
	return MakeFilter(pats...), nil
}

// ParsePattern parses a single pattern, rejecting alternation.
func ParsePattern(text string) (Pattern, error) {
	p := &parser{text: text}
	pat, err := p.pattern()
	if err != nil {
		return Pattern{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return Pattern{}, p.errf("expected end of pattern")
	}
	return pat, nil
}

// ParseKeyPath parses a single path. Wildcard segments are permitted;
// they parse to the empty-text sentinel segments.
func ParseKeyPath(text string) (KeyPath, error) {
	pat, err := ParsePattern(text)
	if err != nil {
		return Root, err
	}
	return pat.AsPath(), nil
}

const nameStops = ".[]{}|*'\" \t\n"

type parser struct {
	text string
	i    int
}

func (p *parser) eof() bool {
	return p.i >= len(p.text)
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.text[p.i] == ' ' || p.text[p.i] == '\t' || p.text[p.i] == '\n') {
		p.i++
	}
}

func (p *parser) errf(format string, args ...any) error {
	return &SyntaxError{
		Query: p.text,
		Off:   p.i,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (p *parser) pattern() (Pattern, error) {
	p.skipSpace()
	kp := Root
	first := true
	for !p.eof() {
		c := p.text[p.i]
		if c == '|' || c == ' ' || c == '\t' || c == '\n' {
			break
		}
		switch {
		case c == '[':
			seg, err := p.index()
			if err != nil {
				return Pattern{}, err
			}
			kp = kp.Extend(seg)
		case c == '.':
			if first {
				return Pattern{}, p.errf("unexpected '.' at start of pattern")
			}
			p.i++
			seg, err := p.key()
			if err != nil {
				return Pattern{}, err
			}
			kp = kp.Extend(seg)
		default:
			if !first {
				return Pattern{}, p.errf("expected '.' or '[' between segments")
			}
			seg, err := p.key()
			if err != nil {
				return Pattern{}, err
			}
			kp = kp.Extend(seg)
		}
		first = false
	}
	return MakePattern(kp), nil
}

func (p *parser) key() (Segment, error) {
	if p.eof() {
		return Segment{}, p.errf("expected key segment")
	}
	c := p.text[p.i]
	if c == '*' {
		p.i++
		if !p.eof() {
			n := p.text[p.i]
			if n != '.' && n != '[' && n != '|' && n != ' ' && n != '\t' && n != '\n' {
				return Segment{}, p.errf("unexpected %q after '*'", n)
			}
		}
		return KeySeg(""), nil
	}
	if c == '\'' || c == '"' {
		name, err := p.quoted()
		if err != nil {
			return Segment{}, err
		}
		return KeySeg(name), nil
	}
	start := p.i
	for !p.eof() && !strings.ContainsRune(nameStops, rune(p.text[p.i])) {
		p.i++
	}
	if p.i == start {
		return Segment{}, p.errf("expected key segment")
	}
	return KeySeg(p.text[start:p.i]), nil
}

func (p *parser) index() (Segment, error) {
	p.i++ // consume '['
	start := p.i
	for !p.eof() && p.text[p.i] != ']' {
		p.i++
	}
	if p.eof() {
		p.i = start - 1
		return Segment{}, p.errf("unterminated index segment")
	}
	text := p.text[start:p.i]
	p.i++ // consume ']'
	if text == "" {
		p.i = start - 1
		return Segment{}, p.errf("empty index segment")
	}
	if text == "*" {
		return IndexSeg(""), nil
	}
	return IndexSeg(text), nil
}

func (p *parser) quoted() (string, error) {
	q := p.text[p.i]
	at := p.i
	p.i++
	var b strings.Builder
	for !p.eof() {
		c := p.text[p.i]
		if c == '\\' {
			p.i++
			if p.eof() {
				break
			}
			b.WriteByte(p.text[p.i])
			p.i++
			continue
		}
		if c == q {
			p.i++
			return b.String(), nil
		}
		b.WriteByte(c)
		p.i++
	}
	p.i = at
	return "", p.errf("unterminated quoted key")
}
