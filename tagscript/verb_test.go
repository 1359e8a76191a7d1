package tagscript

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseVerb(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Verb
	}{
		{
			name: "bare",
			in:   "{user}",
			want: Verb{Declaration: "user", Raw: "user"},
		},
		{
			name: "payload",
			in:   "{random:a,b,c}",
			want: Verb{Declaration: "random", Payload: "a,b,c", HasPayload: true, Raw: "random:a,b,c"},
		},
		{
			name: "parameter",
			in:   "{range(1-10)}",
			want: Verb{Declaration: "range", Parameter: "1-10", HasParameter: true, Raw: "range(1-10)"},
		},
		{
			name: "both",
			in:   "{if(1==1):yes&&no}",
			want: Verb{Declaration: "if", Parameter: "1==1", Payload: "yes&&no", HasParameter: true, HasPayload: true, Raw: "if(1==1):yes&&no"},
		},
		{
			name: "empty-parameter",
			in:   "{strf():%Y}",
			want: Verb{Declaration: "strf", Parameter: "", Payload: "%Y", HasParameter: true, HasPayload: true, Raw: "strf():%Y"},
		},
		{
			name: "empty-payload",
			in:   "{assign(x):}",
			want: Verb{Declaration: "assign", Parameter: "x", Payload: "", HasParameter: true, HasPayload: true, Raw: "assign(x):"},
		},
		{
			name: "nested-parens",
			in:   "{if((1)==(1)):ok}",
			want: Verb{Declaration: "if", Parameter: "(1)==(1)", Payload: "ok", HasParameter: true, HasPayload: true, Raw: "if((1)==(1)):ok"},
		},
		{
			name: "colon-in-parameter",
			in:   "{if(a:b==a:b):ok}",
			want: Verb{Declaration: "if", Parameter: "a:b==a:b", Payload: "ok", HasParameter: true, HasPayload: true, Raw: "if(a:b==a:b):ok"},
		},
		{
			name: "colon-in-payload",
			in:   "{strf:%H:%M}",
			want: Verb{Declaration: "strf", Payload: "%H:%M", HasPayload: true, Raw: "strf:%H:%M"},
		},
		{
			name: "escaped-colon",
			in:   `{a\:b:c}`,
			want: Verb{Declaration: `a\:b`, Payload: "c", HasPayload: true, Raw: `a\:b:c`},
		},
		{
			name: "unbalanced-paren",
			in:   "{a(b:c}",
			want: Verb{Declaration: "a(b", Payload: "c", HasPayload: true, Raw: "a(b:c"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := parseVerb(c.in, 2000)
			if diff := cmp.Diff(&c.want, got); diff != "" {
				t.Errorf("wrong verb (+got/-want):\n%s", diff)
			}
		})
	}
}

func TestParseVerbLimit(t *testing.T) {
	got := parseVerb("{random:abcdefgh}", 8)
	if got.Declaration != "random" {
		t.Errorf("wrong declaration: want %q, got %q", "random", got.Declaration)
	}
	if got.Payload != "a" {
		t.Errorf("wrong payload: want %q, got %q", "a", got.Payload)
	}
}

func TestVerbString(t *testing.T) {
	cases := []string{
		"{user}",
		"{random:a,b,c}",
		"{range(1-10)}",
		"{if(1==1):yes&&no}",
		"{assign(x):}",
	}
	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			got := parseVerb(c, 2000).String()
			if got != c {
				t.Errorf("wrong reassembly: want %q, got %q", c, got)
			}
		})
	}
}
