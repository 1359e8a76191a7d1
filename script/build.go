package script

import (
	"strconv"
	"strings"

	"github.com/sablebot/scripting/message"
)

// builder folds directive nodes into an accumulating payload. The embed and
// button list are created lazily on the first directive that touches them.
type builder struct {
	data *message.Sent
}

// directives maps directive names to their handlers. Unknown names are
// ignored, which keeps old scripts working when directives are removed and
// new scripts inert on old versions.
var directives = map[string]func(*builder, string){
	"content":     (*builder).content,
	"message":     (*builder).content,
	"color":       (*builder).color,
	"url":         (*builder).url,
	"title":       (*builder).title,
	"description": (*builder).description,
	"thumbnail":   (*builder).thumbnail,
	"image":       (*builder).image,
	"field":       (*builder).field,
	"footer":      (*builder).footer,
	"author":      (*builder).author,
	"button":      (*builder).button,
}

func (b *builder) apply(n Node) {
	f := directives[strings.ReplaceAll(n.Name, ". ", "_")]
	if f == nil {
		return
	}
	f(b, n.Value)
}

// embed returns the payload's embed, creating it on first use.
func (b *builder) embed() *message.Embed {
	if b.data.Embed == nil {
		b.data.Embed = &message.Embed{}
	}
	return b.data.Embed
}

// sentinel reports whether a value means "explicitly absent" for optional
// image-like fields.
func sentinel(v string) bool {
	switch strings.TrimSpace(v) {
	case "none", "null", "false", "":
		return true
	}
	return false
}

func (b *builder) content(v string) {
	b.data.Content = v
}

func (b *builder) color(v string) {
	c, err := strconv.ParseInt(strings.ReplaceAll(v, "#", ""), 16, 64)
	if err != nil {
		// Invalid hex is inert; the rest of the script still renders.
		return
	}
	b.embed().Color = int(c)
}

func (b *builder) url(v string)         { b.embed().URL = v }
func (b *builder) title(v string)       { b.embed().Title = v }
func (b *builder) description(v string) { b.embed().Description = v }

func (b *builder) thumbnail(v string) {
	e := b.embed()
	if sentinel(v) {
		return
	}
	e.Thumbnail = &message.Media{URL: v}
}

func (b *builder) image(v string) {
	e := b.embed()
	if sentinel(v) {
		return
	}
	e.Image = &message.Media{URL: v}
}

func (b *builder) field(v string) {
	parts := strings.SplitN(v, "&&", 4)
	if len(parts) < 2 {
		return
	}
	e := b.embed()
	e.Fields = append(e.Fields, message.Field{
		Name:   strings.TrimSpace(parts[0]),
		Value:  strings.TrimSpace(parts[1]),
		Inline: len(parts) >= 3,
	})
}

func (b *builder) footer(v string) {
	parts := strings.SplitN(v, "&&", 3)
	f := &message.Footer{Text: strings.TrimSpace(parts[0])}
	if len(parts) >= 2 {
		f.IconURL = strings.TrimSpace(parts[1])
	}
	b.embed().Footer = f
}

func (b *builder) author(v string) {
	parts := strings.SplitN(v, "&&", 4)
	a := &message.Author{Name: strings.TrimSpace(parts[0])}
	if len(parts) >= 2 && !sentinel(parts[1]) {
		a.IconURL = strings.TrimSpace(parts[1])
	}
	if len(parts) >= 3 {
		a.URL = strings.TrimSpace(parts[2])
	}
	b.embed().Author = a
}

func (b *builder) button(v string) {
	parts := strings.SplitN(v, "&&", 4)
	if len(parts) < 2 {
		return
	}
	bt := message.Button{
		Label: strings.TrimSpace(parts[0]),
		URL:   strings.TrimSpace(parts[1]),
	}
	if len(parts) == 3 {
		bt.Emoji = strings.TrimSpace(parts[2])
	}
	if strings.HasPrefix(bt.Label, "<") {
		// The label looks like a custom emoji token; treat the button as
		// emoji-only.
		bt.Label, bt.Emoji = "", bt.Label
	}
	if !bt.Valid() {
		return
	}
	b.data.Buttons = append(b.data.Buttons, bt)
}
