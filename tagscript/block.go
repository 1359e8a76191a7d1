package tagscript

import (
	"slices"
	"strings"
)

// accepts reports whether the verb's declaration matches one of names,
// case-insensitively.
func accepts(v *Verb, names ...string) bool {
	return slices.Contains(names, strings.ToLower(v.Declaration))
}

// need reports whether the verb carries the parameter and payload a block
// requires. When implicit is true an empty value counts as missing, so
// {block():} fails the check; otherwise only an absent value does.
func need(v *Verb, implicit, parameter, payload bool) bool {
	has := func(s string, present bool) bool {
		if implicit {
			return s != ""
		}
		return present
	}
	if parameter && !has(v.Parameter, v.HasParameter) {
		return false
	}
	if payload && !has(v.Payload, v.HasPayload) {
		return false
	}
	return true
}
