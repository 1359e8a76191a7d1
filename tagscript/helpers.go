package tagscript

import (
	"regexp"
	"strconv"
	"strings"
)

// splitter divides alternatives on || or && with surrounding space eaten.
var splitter = regexp.MustCompile(`\s*(?:\|\||&&)\s*`)

// split divides s on || or && delimiters. When easy is true it additionally
// falls back to ~ and then , delimiters. It returns nil when no delimiter is
// present.
func split(s string, easy bool) []string {
	if strings.Contains(s, "|") || strings.Contains(s, "&&") {
		return splitter.Split(s, -1)
	}
	if easy {
		if strings.Contains(s, "~") {
			return strings.Split(s, "~")
		}
		if strings.Contains(s, ",") {
			return strings.Split(s, ",")
		}
	}
	return nil
}

// implicitBool parses "true" or "false" in any case.
func implicitBool(s string) (value, ok bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// resolve looks an operand up in the evaluation's variables, returning the
// operand itself when it names no variable.
func resolve(r *Response, s string) string {
	if v, ok := r.Variables[s]; ok {
		return v
	}
	return s
}

// parseIf evaluates a comparison expression like "a==b" or "2 < 3". Each
// operand resolves through the response variables when it names one, and
// otherwise compares as a literal. Equality compares strings; the ordering
// operators compare numbers, and fail to parse when an operand is not
// numeric. ok is false when s is not a recognizable expression.
func parseIf(r *Response, s string) (value, ok bool) {
	if v, ok := implicitBool(s); ok {
		return v, true
	}
	for _, op := range [...]string{"!=", "==", ">=", "<=", ">", "<"} {
		l, rhs, found := strings.Cut(s, op)
		if !found {
			continue
		}
		l = resolve(r, strings.TrimSpace(l))
		rhs = resolve(r, strings.TrimSpace(rhs))
		switch op {
		case "!=":
			return l != rhs, true
		case "==":
			return l == rhs, true
		}
		a, err1 := strconv.ParseFloat(l, 64)
		b, err2 := strconv.ParseFloat(rhs, 64)
		if err1 != nil || err2 != nil {
			return false, false
		}
		switch op {
		case ">=":
			return a >= b, true
		case "<=":
			return a <= b, true
		case ">":
			return a > b, true
		case "<":
			return a < b, true
		}
	}
	return false, false
}

// parseListIf evaluates each ||- or &&-delimited condition in s. Conditions
// that fail to parse evaluate false.
func parseListIf(r *Response, s string) []bool {
	parts := split(s, false)
	if parts == nil {
		parts = []string{s}
	}
	out := make([]bool, len(parts))
	for i, p := range parts {
		v, ok := parseIf(r, p)
		out[i] = v && ok
	}
	return out
}

// pickOutput selects the then or else partition of a payload by a condition
// result. A payload split into exactly two alternatives chooses by result;
// otherwise a true result emits the whole payload and a false one emits
// nothing.
func pickOutput(payload string, result, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	parts := split(payload, false)
	if len(parts) == 2 {
		if result {
			return parts[0], true
		}
		return parts[1], true
	}
	if result {
		return payload, true
	}
	return "", true
}
