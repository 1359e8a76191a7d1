package tagscript

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/sablebot/scripting/message"
)

// EmbedBlock builds embeds as a side effect of evaluation. Embeds collect
// in the response's "embeds" action rather than the text body.
//
// Attributes can be set one block at a time, with either a bare attribute
// declaration or an embed() parameter:
//
//	{title: Rules}
//	{embed(color):#37b2cb}
//	{embed(field):Rule 1&&Respect everyone.&&false}
//
// A bare {embed} starts a new embed, {embed(timestamp)} stamps the current
// one, and {embed(<json>)} constructs a whole embed from JSON.
type EmbedBlock struct{}

// embedAttrs maps attribute names to their update functions.
var embedAttrs = map[string]func(*message.Embed, string){
	"title":       func(e *message.Embed, v string) { e.Title = v },
	"description": func(e *message.Embed, v string) { e.Description = v },
	"url":         func(e *message.Embed, v string) { e.URL = v },
	"color":       setEmbedColor,
	"colour":      setEmbedColor,
	"thumbnail":   func(e *message.Embed, v string) { e.Thumbnail = &message.Media{URL: v} },
	"image":       func(e *message.Embed, v string) { e.Image = &message.Media{URL: v} },
	"field":       addEmbedField,
	"footer":      setEmbedFooter,
}

func (EmbedBlock) WillAccept(ctx *Context) bool {
	d := strings.ToLower(ctx.Verb.Declaration)
	if d == "embed" {
		return true
	}
	if _, ok := embedAttrs[strings.TrimPrefix(d, "embed.")]; ok {
		return true
	}
	return false
}

func (EmbedBlock) Process(ctx *Context) (string, bool, error) {
	d := strings.ToLower(ctx.Verb.Declaration)
	if d != "embed" {
		attr := strings.TrimPrefix(d, "embed.")
		if v := strings.TrimLeft(ctx.Verb.Payload, " "); v != "" {
			embedAttrs[attr](currentEmbed(ctx.Response), v)
		}
		return "", true, nil
	}
	switch p := ctx.Verb.Parameter; {
	case !ctx.Verb.HasParameter:
		appendEmbed(ctx.Response, &message.Embed{})
	case p == "timestamp":
		currentEmbed(ctx.Response).Timestamp = time.Now().UTC()
	case strings.HasPrefix(strings.TrimSpace(p), "{"):
		var e message.Embed
		if err := json.Unmarshal([]byte(p), &e); err == nil {
			appendEmbed(ctx.Response, &e)
		}
		// Bad JSON is inert; the block still consumes its text.
	default:
		if f, ok := embedAttrs[strings.ToLower(p)]; ok && ctx.Verb.HasPayload {
			f(currentEmbed(ctx.Response), strings.TrimLeft(ctx.Verb.Payload, " "))
		}
	}
	return "", true, nil
}

// currentEmbed returns the embed under construction, creating the first one
// on demand.
func currentEmbed(r *Response) *message.Embed {
	es, _ := r.Actions["embeds"].([]*message.Embed)
	if len(es) == 0 {
		es = append(es, &message.Embed{})
		r.Actions["embeds"] = es
	}
	return es[len(es)-1]
}

func appendEmbed(r *Response, e *message.Embed) {
	es, _ := r.Actions["embeds"].([]*message.Embed)
	r.Actions["embeds"] = append(es, e)
}

func setEmbedColor(e *message.Embed, v string) {
	if c, ok := parseColor(v); ok {
		e.Color = c
	}
}

func addEmbedField(e *message.Embed, v string) {
	parts := split(v, true)
	if len(parts) < 2 {
		return
	}
	f := message.Field{Name: strings.TrimSpace(parts[0]), Value: strings.TrimSpace(parts[1])}
	if len(parts) >= 3 {
		f.Inline, _ = implicitBool(strings.TrimSpace(parts[2]))
	}
	e.Fields = append(e.Fields, f)
}

func setEmbedFooter(e *message.Embed, v string) {
	parts := split(v, true)
	if parts == nil {
		e.Footer = &message.Footer{Text: v}
		return
	}
	f := &message.Footer{Text: strings.TrimSpace(parts[0])}
	if len(parts) >= 2 {
		f.IconURL = strings.TrimSpace(parts[1])
	}
	e.Footer = f
}

// colors names the accent colors scripts may use in place of hex.
var colors = map[string]int{
	"default":    0x000000,
	"red":        0xe74c3c,
	"dark_red":   0x992d22,
	"orange":     0xe67e22,
	"gold":       0xf1c40f,
	"green":      0x2ecc71,
	"dark_green": 0x1f8b4c,
	"teal":       0x1abc9c,
	"blue":       0x3498db,
	"dark_blue":  0x206694,
	"blurple":    0x5865f2,
	"purple":     0x9b59b6,
	"magenta":    0xe91e63,
	"greyple":    0x99aab5,
	"white":      0xffffff,
	"black":      0x010101,
}

// parseColor accepts hex with an optional # or 0x prefix, or a named color.
// Spaces in names become underscores, so "dark red" works.
func parseColor(s string) (int, bool) {
	arg := strings.ToLower(strings.TrimSpace(s))
	arg = strings.TrimPrefix(arg, "0x")
	arg = strings.TrimPrefix(arg, "#")
	if v, err := strconv.ParseInt(arg, 16, 64); err == nil {
		if v < 0 || v > 0xffffff {
			return 0, false
		}
		return int(v), true
	}
	if c, ok := colors[strings.ReplaceAll(arg, " ", "_")]; ok {
		return c, true
	}
	return 0, false
}
