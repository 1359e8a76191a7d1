// Package vars builds variable namespaces from context objects and
// substitutes variables into script templates.
//
// A namespace is a flat mapping from dotted keys to display-ready strings,
// built fresh for every render. Each context object contributes its bare key
// (for example {user}) and one key per attribute (for example {user.id}).
package vars

import (
	"fmt"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Attr is a single named attribute of a context object.
//
// The attribute's formatting is chosen by the dynamic type of Value:
// timestamps become Unix epoch seconds, durations become human-readable
// spans, and integers are thousands-separated unless the attribute name ends
// in "id" or "duration". A Value implementing Target is flattened
// recursively under the parent key. Values of any other type are skipped.
type Attr struct {
	Name  string
	Value any
}

// Target is a context object that grounds variable resolution. Concrete
// types enumerate their public attributes explicitly rather than being
// discovered by reflection, so the set of keys a type contributes is fixed
// and testable.
type Target interface {
	// Key is the preferred variable key for the object, such as "user".
	Key() string
	// String is the display form of the object, used as the bare key's value.
	String() string
	// Attrs enumerates the object's attributes in a fixed order.
	Attrs() []Attr
}

// Pair couples a target with an optional explicit key override.
type Pair struct {
	T Target
	// Key overrides the target's own preferred key when not empty.
	Key string
}

// printer renders integers with thousands separators.
var printer = message.NewPrinter(language.English)

// Dict compiles the flat mapping of keys to display strings for one target.
// The key override is used when not empty; otherwise the target's preferred
// key. A key of "member" is normalized to "user", and any key containing
// "channel" is normalized to "channel" so that different channel kinds share
// one variable prefix.
func Dict(t Target, key string) map[string]string {
	if key == "" {
		key = t.Key()
	}
	switch {
	case key == "member":
		key = "user"
	case strings.Contains(key, "channel"):
		key = "channel"
	}

	data := map[string]string{key: t.String()}
	for _, a := range t.Attrs() {
		switch v := a.Value.(type) {
		case time.Time:
			if v.IsZero() {
				continue
			}
			data[key+"."+a.Name] = strconv.FormatInt(v.Unix(), 10)
		case time.Duration:
			data[key+"."+a.Name] = span(v)
		case int:
			data[key+"."+a.Name] = formatInt(a.Name, int64(v))
		case int64:
			data[key+"."+a.Name] = formatInt(a.Name, v)
		case string:
			data[key+"."+a.Name] = v
		case bool:
			data[key+"."+a.Name] = strconv.FormatBool(v)
		case Target:
			for sub, val := range Dict(v, "") {
				data[key+"."+sub] = val
			}
		case fmt.Stringer:
			data[key+"."+a.Name] = v.String()
		default:
			// Unsupported attribute types produce no key rather than an
			// error. Scripts are user-authored and must never fail to
			// render over a single attribute.
		}
	}
	return data
}

// formatInt renders an integer with thousands separators, except for
// attributes whose names end in "id" or "duration", which would be corrupted
// by grouping. Snowflake-style identifiers stay verbatim.
func formatInt(name string, v int64) string {
	if strings.HasSuffix(name, "id") || strings.HasSuffix(name, "duration") {
		return strconv.FormatInt(v, 10)
	}
	return printer.Sprintf("%d", v)
}

// span renders a duration as a human-readable span like "2 hours".
func span(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	t := time.Unix(0, 0)
	return strings.TrimSpace(humanize.RelTime(t, t.Add(d), "", ""))
}

// Build merges the namespaces of several targets in input order. Later
// targets override earlier ones on key collision.
func Build(pairs []Pair) map[string]string {
	ns := make(map[string]string)
	for _, p := range pairs {
		maps.Copy(ns, Dict(p.T, p.Key))
	}
	return ns
}

// variable matches a {identifier} occurrence, optionally preceded by a
// backslash which suppresses substitution. Identifiers are letters, digits,
// underscores, and dots only, which keeps {name: value} directive nodes out
// of this pass.
var variable = regexp.MustCompile(`\\?\{[A-Za-z0-9_.]+\}`)

// Sub replaces every {identifier} in s with its value from the namespace.
// Unknown identifiers are left verbatim, braces included, and a backslash
// immediately before the opening brace suppresses substitution for that
// occurrence.
func Sub(s string, ns map[string]string) string {
	return variable.ReplaceAllStringFunc(s, func(m string) string {
		if m[0] == '\\' {
			return m
		}
		if v, ok := ns[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Parse builds the namespace for the given targets and substitutes it into s.
func Parse(s string, pairs []Pair) string {
	return Sub(s, Build(pairs))
}
