// Package script renders author-supplied templates into message payloads.
//
// A script is a template like
//
//	{title: Welcome}{description: Hello {user}!}{color: #bb7fa8}
//
// Rendering happens in three passes: variables resolve against the supplied
// context objects, {name: value} directive nodes are parsed from the fixed
// template, and the nodes fold into a payload of content, an embed, and
// buttons. A template with no recognized directives renders verbatim as
// content, so plain prose is always a valid script.
//
// Scripts are pure functions of their template and contexts: every accessor
// recomputes the result, so a template embedding volatile context (for
// example a now-playing track) never serves stale values.
package script

import (
	"fmt"
	"strings"

	"github.com/sablebot/scripting/message"
	"github.com/sablebot/scripting/vars"
)

// Script is a template bound to the context objects it renders against.
type Script struct {
	// Template is the raw author-supplied template.
	Template string
	// Targets are the context objects grounding variable resolution.
	Targets []vars.Pair
}

// New binds a template to context objects.
func New(template string, targets ...vars.Pair) *Script {
	return &Script{Template: template, Targets: targets}
}

func (s *Script) String() string { return s.Template }

// Fixed is the template after variable substitution.
func (s *Script) Fixed() string {
	return vars.Parse(s.Template, s.Targets)
}

// Nodes parses the directive nodes of the fixed template.
func (s *Script) Nodes() []Node {
	return parseNodes(s.Fixed())
}

// Data renders the script. If no directive produced content, an embed, or a
// button, the entire fixed template becomes the content, so every script
// produces something visible.
func (s *Script) Data() *message.Sent {
	fixed := s.Fixed()
	b := builder{data: &message.Sent{}}
	for _, n := range parseNodes(fixed) {
		b.apply(n)
	}
	if b.data.Content == "" && b.data.Embed == nil && len(b.data.Buttons) == 0 {
		b.data.Content = fixed
	}
	return b.data
}

// Content renders the script and returns its content string.
func (s *Script) Content() string { return s.Data().Content }

// Embed renders the script and returns its embed, or nil if no directive
// created one.
func (s *Script) Embed() *message.Embed { return s.Data().Embed }

// Buttons renders the script and returns its buttons.
func (s *Script) Buttons() []message.Button { return s.Data().Buttons }

// Empty reports whether rendering produces neither content nor an embed.
func (s *Script) Empty() bool {
	d := s.Data()
	return d.Content == "" && d.Embed == nil
}

// Format classifies the rendered script as "embed" or "text".
func (s *Script) Format() string {
	if s.Data().Embed != nil {
		return "embed"
	}
	return "text"
}

// FromMessage rebuilds a template from an existing payload. Rendering the
// result against the same contexts reproduces equivalent content and embed
// fields; field order and inline flags are preserved. The round trip is
// lossy in whitespace but stable.
func FromMessage(m *message.Sent) *Script {
	var lines []string
	if m.Content != "" {
		lines = append(lines, fmt.Sprintf("{content: %s}", m.Content))
	}
	if e := m.Embed; e != nil {
		if e.Color != 0 {
			lines = append(lines, fmt.Sprintf("{color: #%06x}", e.Color))
		}
		for _, d := range []struct{ name, value string }{
			{"url", e.URL},
			{"title", e.Title},
			{"description", e.Description},
		} {
			if d.value != "" {
				lines = append(lines, fmt.Sprintf("{%s: %s}", d.name, d.value))
			}
		}
		if e.Thumbnail != nil {
			lines = append(lines, fmt.Sprintf("{thumbnail: %s}", e.Thumbnail.URL))
		}
		if e.Image != nil {
			lines = append(lines, fmt.Sprintf("{image: %s}", e.Image.URL))
		}
		for _, f := range e.Fields {
			parts := []string{f.Name, f.Value}
			if f.Inline {
				parts = append(parts, "inline")
			}
			lines = append(lines, fmt.Sprintf("{field: %s}", join(parts)))
		}
		if f := e.Footer; f != nil && f.Text != "" {
			parts := []string{f.Text}
			if f.IconURL != "" {
				parts = append(parts, f.IconURL)
			}
			lines = append(lines, fmt.Sprintf("{footer: %s}", join(parts)))
		}
		if a := e.Author; a != nil && a.Name != "" {
			icon := a.IconURL
			if icon == "" {
				icon = "null"
			}
			parts := []string{a.Name, icon}
			if a.URL != "" {
				parts = append(parts, a.URL)
			}
			lines = append(lines, fmt.Sprintf("{author: %s}", join(parts)))
		}
	}
	return New(strings.Join(lines, "\n"))
}

func join(parts []string) string {
	return strings.Join(parts, " && ")
}
