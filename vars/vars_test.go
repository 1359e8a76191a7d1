package vars

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDict(t *testing.T) {
	created := time.Unix(1420070400, 0).UTC()
	u := &User{
		ID:          "123456789012345678",
		Name:        "ann",
		DisplayName: "Ann",
		Mention:     "<@123456789012345678>",
		CreatedAt:   created,
	}
	got := Dict(u, "")
	want := map[string]string{
		"user":              "Ann",
		"user.id":           "123456789012345678",
		"user.name":         "ann",
		"user.display_name": "Ann",
		"user.mention":      "<@123456789012345678>",
		"user.avatar":       "",
		"user.created_at":   "1420070400",
		"user.color":        "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong namespace (+got/-want):\n%s", diff)
	}
}

func TestDictKeys(t *testing.T) {
	u := &User{Name: "ann"}
	c := &Channel{Name: "general"}
	cases := []struct {
		name string
		t    Target
		key  string
		want string
	}{
		{"default", u, "", "user"},
		{"override", u, "author", "author"},
		{"member-normalizes", u, "member", "user"},
		{"channel", c, "", "channel"},
		{"voice-channel-normalizes", c, "voice_channel", "channel"},
		{"text-channel-normalizes", c, "textchannel", "channel"},
	}
	for _, cs := range cases {
		t.Run(cs.name, func(t *testing.T) {
			got := Dict(cs.t, cs.key)
			if _, ok := got[cs.want]; !ok {
				t.Errorf("no %q key in %v", cs.want, got)
			}
			if cs.want != cs.key && cs.key != "" {
				if _, ok := got[cs.key]; ok {
					t.Errorf("unnormalized %q key in %v", cs.key, got)
				}
			}
		})
	}
}

func TestDictFormats(t *testing.T) {
	cases := []struct {
		name string
		attr Attr
		want string
	}{
		{"int-grouped", Attr{"members", 1234567}, "1,234,567"},
		{"int-small", Attr{"boosts", 14}, "14"},
		{"id-ungrouped", Attr{"some_id", int64(123456789012345678)}, "123456789012345678"},
		{"duration-ungrouped", Attr{"afk_duration", 3600}, "3600"},
		{"timespan", Attr{"slowmode", 2 * time.Hour}, "2 hours"},
		{"timespan-minutes", Attr{"slowmode", 90 * time.Second}, "1 minute"},
		{"bool", Attr{"boosting", true}, "true"},
		{"string", Attr{"motto", "be kind"}, "be kind"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := &Record{Var: "x", Text: "x", Fields: []Attr{c.attr}}
			got := Dict(r, "")
			if got["x."+c.attr.Name] != c.want {
				t.Errorf("wrong value: want %q, got %q", c.want, got["x."+c.attr.Name])
			}
		})
	}
}

func TestDictSkips(t *testing.T) {
	r := &Record{Var: "x", Text: "x", Fields: []Attr{
		{"ok", "fine"},
		{"weird", []int{1, 2, 3}},
		{"never", time.Time{}},
	}}
	got := Dict(r, "")
	want := map[string]string{"x": "x", "x.ok": "fine"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong namespace (+got/-want):\n%s", diff)
	}
}

func TestDictNested(t *testing.T) {
	track := &Record{Var: "track", Text: "Resonance", Fields: []Attr{
		{"artist", "HOME"},
	}}
	np := &Record{Var: "now_playing", Text: "Resonance by HOME", Fields: []Attr{
		{"track", track},
	}}
	got := Dict(np, "")
	want := map[string]string{
		"now_playing":              "Resonance by HOME",
		"now_playing.track":        "Resonance",
		"now_playing.track.artist": "HOME",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong namespace (+got/-want):\n%s", diff)
	}
}

func TestBuildOverride(t *testing.T) {
	a := &Record{Var: "x", Text: "first"}
	b := &Record{Var: "x", Text: "second"}
	ns := Build([]Pair{{T: a}, {T: b}})
	if ns["x"] != "second" {
		t.Errorf("wrong winner: want %q, got %q", "second", ns["x"])
	}
}

func TestSub(t *testing.T) {
	ns := map[string]string{
		"user":      "Ann",
		"user.id":   "123",
		"guild":     "Hideout",
		"empty_var": "",
	}
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no variables", "no variables"},
		{"simple", "hello {user}", "hello Ann"},
		{"dotted", "{user} ({user.id})", "Ann (123)"},
		{"unknown-stays", "hello {unknownvar}", "hello {unknownvar}"},
		{"empty-value", "[{empty_var}]", "[]"},
		{"escaped", `write \{user\} to mention`, `write \{user\} to mention`},
		{"directive-untouched", "{content: hi {user}}", "{content: hi Ann}"},
		{"adjacent", "{user}{user}", "AnnAnn"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Sub(c.in, ns)
			if got != c.want {
				t.Errorf("wrong substitution: want %q, got %q", c.want, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	u := &User{Name: "ann", DisplayName: "Ann"}
	got := Parse("welcome to the server, {user}!", []Pair{{T: u}})
	want := "welcome to the server, Ann!"
	if got != want {
		t.Errorf("wrong render: want %q, got %q", want, got)
	}
}
