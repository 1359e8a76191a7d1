package tagscript

import (
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"

	"gitlab.com/zephyrtronium/pick"
)

// rng returns a random source for a block. An empty seed gives the shared
// non-deterministic source; any other seed gives a source that always
// produces the same sequence for that seed.
func rng(seed string) func() uint32 {
	if seed == "" {
		return rand.Uint32
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	u := h.Sum64()
	r := rand.New(rand.NewPCG(u, u))
	return r.Uint32
}

// RandomBlock picks one alternative from its payload uniformly at random.
// Alternatives are delimited by &&, then ~, then newline, then comma,
// whichever appears first in that order of preference. An alternative may
// carry a weight as a "weight|choice" prefix. A parameter seeds the choice
// so the same seed always picks the same alternative:
//
//	{random:Ann,Bee,Cal} rolled the dice!
type RandomBlock struct{}

func (RandomBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, false, true) && accepts(ctx.Verb, "random", "#", "rand")
}

func (RandomBlock) Process(ctx *Context) (string, bool, error) {
	payload := ctx.Verb.Payload
	var items []string
	switch {
	case strings.Contains(payload, "&&"):
		items = strings.Split(payload, "&&")
	case strings.Contains(payload, "~"):
		items = strings.Split(payload, "~")
	case strings.Contains(payload, "\n"):
		items = strings.Split(payload, "\n")
	default:
		items = strings.Split(payload, ",")
	}
	cases := make([]pick.Case[string], 0, len(items))
	for _, it := range items {
		w := 1
		e := it
		if ws, rest, found := strings.Cut(it, "|"); found {
			if n, err := strconv.Atoi(strings.TrimSpace(ws)); err == nil && n > 0 {
				w, e = n, rest
			}
		}
		cases = append(cases, pick.Case[string]{E: e, W: w})
	}
	p := pick.New(cases)
	return p.Pick(rng(ctx.Verb.Parameter)()), true, nil
}

// FiftyFiftyBlock emits its payload half the time and nothing otherwise:
//
//	I pick {if({5050:.}!=):heads&&tails}
type FiftyFiftyBlock struct{}

func (FiftyFiftyBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, false, true) && accepts(ctx.Verb, "5050", "50", "?")
}

func (FiftyFiftyBlock) Process(ctx *Context) (string, bool, error) {
	if rand.IntN(2) == 0 {
		return "", true, nil
	}
	return ctx.Verb.Payload, true, nil
}

// RangeBlock emits a random integer from the inclusive range given as
// "min-max" in its parameter; rangef does the same with decimals. A payload
// seeds the choice. A missing or malformed range emits 0.
//
//	You drew the number {range(1-10)}.
type RangeBlock struct{}

func (RangeBlock) WillAccept(ctx *Context) bool {
	return accepts(ctx.Verb, "range", "rangef")
}

func (RangeBlock) Process(ctx *Context) (string, bool, error) {
	lo, hi, found := strings.Cut(ctx.Verb.Parameter, "-")
	if !found {
		return "0", true, nil
	}
	u := rng(ctx.Verb.Payload)
	if strings.EqualFold(ctx.Verb.Declaration, "rangef") {
		a, err1 := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		b, err2 := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if err1 != nil || err2 != nil || b < a {
			return "0", true, nil
		}
		x := a + float64(u())/(1<<32)*(b-a)
		return strconv.FormatFloat(x, 'f', 2, 64), true, nil
	}
	a, err1 := atoi(lo)
	b, err2 := atoi(hi)
	if err1 != nil || err2 != nil || b < a {
		return "0", true, nil
	}
	n := a + int64(u())%(b-a+1)
	return strconv.FormatInt(n, 10), true, nil
}

// atoi parses an integer, tolerating a decimal form like "3.0".
func atoi(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	return int64(f), err
}
