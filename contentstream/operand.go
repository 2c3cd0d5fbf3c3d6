package contentstream

import (
	"sort"
	"strconv"
	"strings"
)

// Operand is a value pushed before an operator.
type Operand interface {
	String() string
}

// Number is an integer or real operand
type Number float64

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'f', -1, 64) }

// Name is a /Name operand without its slash
type Name string

func (n Name) String() string { return "/" + string(n) }

// Text is a literal or hex string operand holding raw bytes
type Text string

func (t Text) String() string { return "(" + string(t) + ")" }

// Bool is a boolean operand
type Bool bool

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Null is the null operand
type Null struct{}

func (Null) String() string { return "null" }

// Array is an [ ... ] operand
type Array []Operand

func (a Array) String() string {
	parts := make([]string, len(a))
	for i, o := range a {
		parts[i] = o.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Dict is a << ... >> operand, found in marked-content and inline image
// operators.
type Dict map[string]Operand

func (d Dict) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString("<<")
	for _, k := range keys {
		sb.WriteString(" /" + k + " " + d[k].String())
	}
	sb.WriteString(" >>")
	return sb.String()
}
