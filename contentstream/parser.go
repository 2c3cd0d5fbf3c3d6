package contentstream

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrSyntax is wrapped by every tokenizer error.
var ErrSyntax = errors.New("contentstream: syntax error")

// Operation represents a single content stream operation consisting of an
// operator and the operands that precede it.
type Operation struct {
	Operator string
	Operands []Operand

	// Start is the offset of the first operand, or of the operator when it
	// has none. End is the offset just past the operator.
	Start, End int

	// At is the offset of the operator token
	At int
}

// Span returns the bytes of the operation within data
func (op Operation) Span(data []byte) []byte {
	return data[op.Start:op.End]
}

// Parser tokenizes a content stream into operations.
type Parser struct {
	data  []byte
	pos   int
	ops   []Operation
	stack []Operand
	first int

	// Tolerant makes the parser skip bytes it cannot tokenize up to the
	// next whitespace instead of failing.
	Tolerant bool

	// Skipped counts the tokens dropped in tolerant mode
	Skipped int
}

// NewParser creates a strict parser for the given data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// NewTolerantParser creates a parser that never fails.
func NewTolerantParser(data []byte) *Parser {
	return &Parser{data: data, Tolerant: true}
}

// Parse parses the content stream and returns all operations in order.
// Operands left without an operator at the end are discarded.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			break
		}

		start := p.pos
		if err := p.parseNext(); err != nil {
			if !p.Tolerant {
				return nil, err
			}
			p.pos = start
			p.skipToken()
			p.Skipped++
		}
	}
	return p.ops, nil
}

// parseNext parses the next token: an operand is pushed onto the stack, an
// operator consumes the stack.
func (p *Parser) parseNext() error {
	start := p.pos
	c := p.data[p.pos]

	if isLetter(c) || c == '\'' || c == '"' {
		return p.parseOperator()
	}

	operand, err := p.parseOperand()
	if err != nil {
		return fmt.Errorf("%w at offset %d: %v", ErrSyntax, start, err)
	}
	p.push(operand, start)
	return nil
}

func (p *Parser) push(o Operand, start int) {
	if len(p.stack) == 0 {
		p.first = start
	}
	p.stack = append(p.stack, o)
}

// parseOperator reads an operator token and emits an operation with the
// current operand stack. The keywords true, false and null are operands.
func (p *Parser) parseOperator() error {
	start := p.pos
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		p.pos++
	}
	operator := string(p.data[start:p.pos])

	switch operator {
	case "true":
		p.push(Bool(true), start)
		return nil
	case "false":
		p.push(Bool(false), start)
		return nil
	case "null":
		p.push(Null{}, start)
		return nil
	}

	op := Operation{
		Operator: operator,
		Operands: p.stack,
		Start:    start,
		End:      p.pos,
		At:       start,
	}
	if len(p.stack) > 0 {
		op.Start = p.first
	}
	p.ops = append(p.ops, op)
	p.stack = nil

	if operator == "ID" {
		p.skipInlineImage()
	}
	return nil
}

// skipInlineImage moves past the binary data of an inline image and emits
// the closing EI operator.
func (p *Parser) skipInlineImage() {
	// a single whitespace byte separates ID from the data
	if p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}
	for i := p.pos; i+1 < len(p.data); i++ {
		if p.data[i] != 'E' || p.data[i+1] != 'I' {
			continue
		}
		before := i == 0 || isWhitespace(p.data[i-1])
		after := i+2 >= len(p.data) || isWhitespace(p.data[i+2])
		if before && after {
			p.ops = append(p.ops, Operation{Operator: "EI", Start: i, End: i + 2, At: i})
			p.pos = i + 2
			return
		}
	}
	p.pos = len(p.data)
}

// parseOperand parses a single operand: a number, string, name, array or
// dictionary.
func (p *Parser) parseOperand() (Operand, error) {
	p.skipSpaceAndComments()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("unexpected end of stream")
	}

	c := p.data[p.pos]
	switch {
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.peek(1) == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName(), nil
	case c == '[':
		return p.parseArray()
	case isLetter(c):
		// keywords inside arrays and dictionaries
		start := p.pos
		for p.pos < len(p.data) && !isWhitespace(p.data[p.pos]) && !isDelimiter(p.data[p.pos]) {
			p.pos++
		}
		switch word := string(p.data[start:p.pos]); word {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		case "null":
			return Null{}, nil
		default:
			return nil, fmt.Errorf("unexpected keyword %q", word)
		}
	}
	return nil, fmt.Errorf("unexpected character %q", c)
}

func (p *Parser) peek(n int) byte {
	if p.pos+n < len(p.data) {
		return p.data[p.pos+n]
	}
	return 0
}

// parseNumber parses an integer or real number operand.
func (p *Parser) parseNumber() (Operand, error) {
	start := p.pos
	if p.data[p.pos] == '+' || p.data[p.pos] == '-' {
		p.pos++
	}
	dot := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isDigit(c) {
			p.pos++
			continue
		}
		if c == '.' && !dot {
			dot = true
			p.pos++
			continue
		}
		break
	}

	s := string(p.data[start:p.pos])
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return Number(v), nil
}

// parseString parses a literal string (...) with escape sequences and
// balanced parentheses.
func (p *Parser) parseString() (Operand, error) {
	p.pos++ // (

	var out bytes.Buffer
	depth := 1
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++

		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return Text(out.String()), nil
			}
		case '\\':
			p.parseEscape(&out)
			continue
		}
		out.WriteByte(c)
	}
	return nil, fmt.Errorf("unclosed string")
}

// parseEscape decodes the escape sequence following a backslash.
func (p *Parser) parseEscape(out *bytes.Buffer) {
	if p.pos >= len(p.data) {
		return
	}
	c := p.data[p.pos]
	p.pos++

	switch c {
	case 'n':
		out.WriteByte('\n')
	case 'r':
		out.WriteByte('\r')
	case 't':
		out.WriteByte('\t')
	case 'b':
		out.WriteByte('\b')
	case 'f':
		out.WriteByte('\f')
	case '\r':
		// line continuation
		if p.pos < len(p.data) && p.data[p.pos] == '\n' {
			p.pos++
		}
	case '\n':
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(c - '0')
		for i := 0; i < 2 && p.pos < len(p.data); i++ {
			d := p.data[p.pos]
			if d < '0' || d > '7' {
				break
			}
			v = v*8 + int(d-'0')
			p.pos++
		}
		out.WriteByte(byte(v))
	default:
		// \( \) \\ and unknown escapes keep the character
		out.WriteByte(c)
	}
}

// parseHexString parses a hexadecimal string <...>. An odd final digit is
// padded with zero.
func (p *Parser) parseHexString() (Operand, error) {
	p.pos++ // <

	var digits []byte
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch {
		case c == '>':
			if len(digits)%2 == 1 {
				digits = append(digits, '0')
			}
			out := make([]byte, len(digits)/2)
			for i := range out {
				out[i] = hexValue(digits[2*i])<<4 | hexValue(digits[2*i+1])
			}
			return Text(out), nil
		case isWhitespace(c):
		case isHexDigit(c):
			digits = append(digits, c)
		default:
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return nil, fmt.Errorf("unclosed hex string")
}

// parseName parses a name object /Name with # escapes.
func (p *Parser) parseName() Operand {
	p.pos++ // /

	var out bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			out.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		out.WriteByte(c)
		p.pos++
	}
	return Name(out.String())
}

// parseArray parses an array [...] of operands.
func (p *Parser) parseArray() (Operand, error) {
	p.pos++ // [

	arr := Array{}
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		o, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		arr = append(arr, o)
	}
}

// parseDict parses a dictionary <<...>>.
func (p *Parser) parseDict() (Operand, error) {
	p.pos += 2 // <<

	dict := Dict{}
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}
		if p.data[p.pos] == '>' && p.peek(1) == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key must be a name")
		}
		key := p.parseName().(Name)

		value, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		dict[string(key)] = value
	}
}

// skipSpaceAndComments advances past whitespace and % comments.
func (p *Parser) skipSpaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		return
	}
}

// skipToken advances at least one byte and up to the next whitespace.
func (p *Parser) skipToken() {
	p.pos++
	for p.pos < len(p.data) && !isWhitespace(p.data[p.pos]) {
		p.pos++
	}
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isDelimiter reports whether c is a PDF delimiter character.
func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
func hexValue(c byte) byte {
	switch {
	case isDigit(c):
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
