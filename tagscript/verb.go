package tagscript

import "strings"

// Verb is one parsed tag block of the form {declaration(parameter):payload}.
// The parameter and payload are both optional; HasParameter and HasPayload
// distinguish an empty value from an absent one.
type Verb struct {
	// Declaration is the block name.
	Declaration string
	// Parameter is the text inside the parentheses, if any.
	Parameter string
	// Payload is the text after the colon, if any.
	Payload string

	HasParameter bool
	HasPayload   bool

	// Raw is the block's inner text with braces stripped, as parsed.
	Raw string
}

// String reassembles the verb into block syntax.
func (v *Verb) String() string {
	var b strings.Builder
	b.WriteByte('{')
	b.WriteString(v.Declaration)
	if v.HasParameter {
		b.WriteByte('(')
		b.WriteString(v.Parameter)
		b.WriteByte(')')
	}
	if v.HasPayload {
		b.WriteByte(':')
		b.WriteString(v.Payload)
	}
	b.WriteByte('}')
	return b.String()
}

// parseVerb parses the text of a bracketed block, braces included, into a
// Verb. At most limit bytes of the inner text are considered. A colon
// outside parentheses begins the payload; parentheses nest, and a backslash
// escapes the character after it.
func parseVerb(s string, limit int) *Verb {
	v := &Verb{}
	inner := s
	if len(inner) >= 2 && inner[0] == '{' && inner[len(inner)-1] == '}' {
		inner = inner[1 : len(inner)-1]
	}
	if limit > 0 && len(inner) > limit {
		inner = inner[:limit]
	}
	v.Raw = inner

	depth := 0
	start := 0
	skip := false
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case skip:
			skip = false
			continue
		case c == '\\':
			skip = true
			continue
		}
		switch {
		case c == ':' && depth == 0:
			v.Declaration = inner[:i]
			v.Payload = inner[i+1:]
			v.HasPayload = true
			return v
		case c == '(':
			depth++
			if start == 0 {
				start = i
				v.Declaration = inner[:i]
			}
		case c == ')' && depth > 0:
			depth--
			if depth == 0 {
				v.Parameter = inner[start+1 : i]
				v.HasParameter = true
				if i+1 < len(inner) && inner[i+1] == ':' {
					v.Payload = inner[i+2:]
					v.HasPayload = true
				}
				return v
			}
		}
	}
	// No parameter closed and no top-level colon. An unbalanced block like
	// {a(b:c} still splits on the first colon anywhere.
	if d, p, ok := strings.Cut(inner, ":"); ok {
		v.Declaration = d
		v.Payload = p
		v.HasPayload = true
	} else {
		v.Declaration = inner
	}
	return v
}
