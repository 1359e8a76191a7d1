package tagscript

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// ReplaceBlock replaces every occurrence of a string in its payload. The
// parameter holds the text to find and its replacement, separated by the
// first comma:
//
//	{replace(o,i):welcome to the server}
type ReplaceBlock struct{}

func (ReplaceBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, true, true) && accepts(ctx.Verb, "replace")
}

func (ReplaceBlock) Process(ctx *Context) (string, bool, error) {
	before, after, found := strings.Cut(ctx.Verb.Parameter, ",")
	if !found {
		return "", false, nil
	}
	return strings.ReplaceAll(ctx.Verb.Payload, before, after), true, nil
}

// InBlock answers substring and word queries about its payload. The in
// alias tests whether the parameter occurs anywhere in the payload,
// contains tests whether it is one of the payload's space-separated words,
// and index reports the word position of the parameter, or -1:
//
//	{in(apple pie):banana pie apple pie}
//	{contains(mute):How does it feel to be muted?}
//	{index(food):I love to eat food.}
type InBlock struct{}

func (InBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, true, true) && accepts(ctx.Verb, "in", "contains", "index")
}

func (InBlock) Process(ctx *Context) (string, bool, error) {
	param, payload := ctx.Verb.Parameter, ctx.Verb.Payload
	switch strings.ToLower(ctx.Verb.Declaration) {
	case "contains":
		return strconv.FormatBool(slices.Contains(strings.Fields(payload), param)), true, nil
	case "in":
		return strconv.FormatBool(strings.Contains(payload, param)), true, nil
	default: // index
		return strconv.Itoa(slices.Index(strings.Fields(strings.TrimSpace(payload)), param)), true, nil
	}
}

// URLEncodeBlock escapes its payload for use in a URL. A parameter of "+"
// encodes spaces as plus signs rather than percent escapes:
//
//	{urlencode:{user} says hi}
type URLEncodeBlock struct{}

func (URLEncodeBlock) WillAccept(ctx *Context) bool {
	return need(ctx.Verb, true, false, true) && accepts(ctx.Verb, "urlencode")
}

func (URLEncodeBlock) Process(ctx *Context) (string, bool, error) {
	q := url.QueryEscape(ctx.Verb.Payload)
	if ctx.Verb.Parameter != "+" {
		q = strings.ReplaceAll(q, "+", "%20")
	}
	return q, true, nil
}
