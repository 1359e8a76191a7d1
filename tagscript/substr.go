package tagscript

import "strings"

// SubstringBlock slices its payload by character positions given in its
// parameter, either "start" or "start-end". Out-of-range positions clamp to
// the payload's bounds, and negative positions count from the end:
//
//	{substr(0-3):Sable}
type SubstringBlock struct{}

func (SubstringBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, true, false) && accepts(ctx.Verb, "substr", "substring")
}

func (SubstringBlock) Process(ctx *Context) (string, bool, error) {
	if !ctx.Verb.HasPayload {
		return "", false, nil
	}
	r := []rune(ctx.Verb.Payload)
	lo, hi, found := strings.Cut(ctx.Verb.Parameter, "-")
	start, err := atoi(lo)
	if err != nil {
		return "", false, nil
	}
	a := clamp(start, len(r))
	if !found {
		return string(r[a:]), true, nil
	}
	end, err := atoi(hi)
	if err != nil {
		return "", false, nil
	}
	b := clamp(end, len(r))
	if b < a {
		return "", true, nil
	}
	return string(r[a:b]), true, nil
}

// clamp resolves a slice position against a length, counting negative
// positions from the end.
func clamp(i int64, n int) int {
	if i < 0 {
		i += int64(n)
	}
	if i < 0 {
		return 0
	}
	if i > int64(n) {
		return n
	}
	return int(i)
}
