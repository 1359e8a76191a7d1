package tagscript

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sablebot/scripting/message"
)

func embeds(t *testing.T, resp *Response) []*message.Embed {
	t.Helper()
	es, _ := resp.Actions["embeds"].([]*message.Embed)
	return es
}

func TestEmbedAttributes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want message.Embed
	}{
		{
			name: "bare-title",
			in:   "{title:Rules}",
			want: message.Embed{Title: "Rules"},
		},
		{
			name: "parameter-form",
			in:   "{embed(description):Be nice.}",
			want: message.Embed{Description: "Be nice."},
		},
		{
			name: "dotted-form",
			in:   "{embed.url:https://example.com}",
			want: message.Embed{URL: "https://example.com"},
		},
		{
			name: "several",
			in:   "{title:Rules}{embed(color):#37b2cb}{embed(url):https://example.com}",
			want: message.Embed{Title: "Rules", Color: 0x37b2cb, URL: "https://example.com"},
		},
		{
			name: "named-color",
			in:   "{embed(color):dark red}",
			want: message.Embed{Color: 0x992d22},
		},
		{
			name: "colour-alias",
			in:   "{colour:blurple}",
			want: message.Embed{Color: 0x5865f2},
		},
		{
			name: "bad-color-ignored",
			in:   "{title:ok}{embed(color):chartreuse-ish}",
			want: message.Embed{Title: "ok"},
		},
		{
			name: "thumbnail",
			in:   "{thumbnail:https://example.com/t.png}",
			want: message.Embed{Thumbnail: &message.Media{URL: "https://example.com/t.png"}},
		},
		{
			name: "field",
			in:   "{embed(field):Rule 1&&Respect everyone.&&true}",
			want: message.Embed{Fields: []message.Field{{Name: "Rule 1", Value: "Respect everyone.", Inline: true}}},
		},
		{
			name: "field-default-inline",
			in:   "{embed(field):Rule 1&&Respect everyone.}",
			want: message.Embed{Fields: []message.Field{{Name: "Rule 1", Value: "Respect everyone."}}},
		},
		{
			name: "footer",
			in:   "{footer:fine print&&https://example.com/i.png}",
			want: message.Embed{Footer: &message.Footer{Text: "fine print", IconURL: "https://example.com/i.png"}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := Default().Process(c.in, nil)
			if err != nil {
				t.Fatalf("process failed: %v", err)
			}
			es := embeds(t, resp)
			if len(es) != 1 {
				t.Fatalf("wrong embed count: want 1, got %d", len(es))
			}
			if diff := cmp.Diff(&c.want, es[0]); diff != "" {
				t.Errorf("wrong embed (+got/-want):\n%s", diff)
			}
			if resp.Body != "" {
				t.Errorf("embed blocks should not emit text, got %q", resp.Body)
			}
		})
	}
}

func TestEmbedMultiple(t *testing.T) {
	resp, err := Default().Process("{title:First}{embed}{title:Second}", nil)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	es := embeds(t, resp)
	if len(es) != 2 {
		t.Fatalf("wrong embed count: want 2, got %d", len(es))
	}
	if es[0].Title != "First" || es[1].Title != "Second" {
		t.Errorf("wrong titles: got %q, %q", es[0].Title, es[1].Title)
	}
}

func TestEmbedJSON(t *testing.T) {
	resp, err := Default().Process(`{embed({"title":"Hello","color":39423}):}`, nil)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	es := embeds(t, resp)
	if len(es) != 1 {
		t.Fatalf("wrong embed count: want 1, got %d", len(es))
	}
	if es[0].Title != "Hello" {
		t.Errorf("wrong title: want %q, got %q", "Hello", es[0].Title)
	}
	if es[0].Color != 39423 {
		t.Errorf("wrong color: want %d, got %d", 39423, es[0].Color)
	}
}

func TestEmbedBadJSONInert(t *testing.T) {
	resp, err := Default().Process(`hi {embed({"title":}):}`, nil)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if resp.Body != "hi" {
		t.Errorf("wrong body: want %q, got %q", "hi", resp.Body)
	}
	if len(embeds(t, resp)) != 0 {
		t.Errorf("bad JSON should produce no embed")
	}
}

func TestEmbedTimestamp(t *testing.T) {
	resp, err := Default().Process("{title:now}{embed(timestamp)}", nil)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	es := embeds(t, resp)
	if len(es) != 1 {
		t.Fatalf("wrong embed count: want 1, got %d", len(es))
	}
	if es[0].Timestamp.IsZero() {
		t.Errorf("timestamp not set")
	}
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
		ok   bool
	}{
		{"hash", "#37b2cb", 0x37b2cb, true},
		{"bare-hex", "ff0000", 0xff0000, true},
		{"0x", "0x00ff00", 0x00ff00, true},
		{"named", "gold", 0xf1c40f, true},
		{"named-spaces", "dark green", 0x1f8b4c, true},
		{"out-of-range", "1000000", 0, false},
		{"garbage", "not a color", 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := parseColor(c.in)
			if ok != c.ok || got != c.want {
				t.Errorf("wrong color: want %#x %v, got %#x %v", c.want, c.ok, got, ok)
			}
		})
	}
}
