package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/sablebot/scripting/message"
	"github.com/sablebot/scripting/script"
	"github.com/sablebot/scripting/tagscript"
	"github.com/sablebot/scripting/vars"
)

// Config is the TOML description of a render context. Every table is
// optional; templates rendered with no context keep their variables.
type Config struct {
	// User is the invoking user.
	User *UserConfig `toml:"user"`
	// Channel is the channel the message renders into.
	Channel *ChannelConfig `toml:"channel"`
	// Guild is the server.
	Guild *GuildConfig `toml:"guild"`
	// Records are additional models exposed under their own names.
	Records []RecordConfig `toml:"record"`
	// Vars are free-form variables merged into the environment last.
	Vars map[string]string `toml:"vars"`
}

type UserConfig struct {
	ID          string    `toml:"id"`
	Name        string    `toml:"name"`
	DisplayName string    `toml:"display_name"`
	Mention     string    `toml:"mention"`
	Avatar      string    `toml:"avatar"`
	CreatedAt   time.Time `toml:"created_at"`
	JoinedAt    time.Time `toml:"joined_at"`
	BoostSince  time.Time `toml:"boost_since"`
	Color       string    `toml:"color"`
}

type ChannelConfig struct {
	ID        string    `toml:"id"`
	Name      string    `toml:"name"`
	Topic     string    `toml:"topic"`
	Mention   string    `toml:"mention"`
	Type      string    `toml:"type"`
	CreatedAt time.Time `toml:"created_at"`
	// Slowmode is the channel's slowmode delay in seconds.
	Slowmode int `toml:"slowmode"`
}

type GuildConfig struct {
	ID        string    `toml:"id"`
	Name      string    `toml:"name"`
	Icon      string    `toml:"icon"`
	Banner    string    `toml:"banner"`
	OwnerID   string    `toml:"owner_id"`
	Members   int       `toml:"members"`
	Boosts    int       `toml:"boosts"`
	CreatedAt time.Time `toml:"created_at"`
}

type RecordConfig struct {
	// Var is the name the record's attributes appear under.
	Var string `toml:"var"`
	// Text is the record's plain-text rendering.
	Text string `toml:"text"`
	// Fields are the record's attributes.
	Fields map[string]any `toml:"fields"`
}

// loadContext reads a context config and produces both the substitution
// pairs and the flat seed environment for the tag script interpreter. An
// empty path yields an empty context.
func loadContext(path string) ([]vars.Pair, map[string]string, error) {
	if path == "" {
		return nil, map[string]string{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't open context file: %w", err)
	}
	defer f.Close()
	var cfg Config
	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, nil, fmt.Errorf("couldn't load context: %w", err)
	}
	return cfg.pairs(), cfg.seed(), nil
}

// pairs converts the config into resolver pairs.
func (cfg *Config) pairs() []vars.Pair {
	var ps []vars.Pair
	if u := cfg.User; u != nil {
		t := &vars.User{
			ID:          u.ID,
			Name:        u.Name,
			DisplayName: u.DisplayName,
			Mention:     u.Mention,
			Avatar:      u.Avatar,
			CreatedAt:   u.CreatedAt,
			JoinedAt:    u.JoinedAt,
			BoostSince:  u.BoostSince,
			Color:       u.Color,
		}
		ps = append(ps, vars.Pair{T: t, Key: "user"}, vars.Pair{T: t, Key: "author"})
	}
	if c := cfg.Channel; c != nil {
		t := &vars.Channel{
			ID:        c.ID,
			Name:      c.Name,
			Topic:     c.Topic,
			Mention:   c.Mention,
			Type:      c.Type,
			CreatedAt: c.CreatedAt,
			Slowmode:  time.Duration(c.Slowmode) * time.Second,
		}
		ps = append(ps, vars.Pair{T: t, Key: "channel"})
	}
	if g := cfg.Guild; g != nil {
		t := &vars.Guild{
			ID:        g.ID,
			Name:      g.Name,
			Icon:      g.Icon,
			Banner:    g.Banner,
			OwnerID:   g.OwnerID,
			Members:   g.Members,
			Boosts:    g.Boosts,
			CreatedAt: g.CreatedAt,
		}
		ps = append(ps, vars.Pair{T: t, Key: "guild"}, vars.Pair{T: t, Key: "server"})
	}
	for _, r := range cfg.Records {
		if r.Var == "" {
			continue
		}
		t := &vars.Record{Var: r.Var, Text: r.Text}
		for _, k := range slices.Sorted(maps.Keys(r.Fields)) {
			t.Fields = append(t.Fields, vars.Attr{Name: k, Value: r.Fields[k]})
		}
		ps = append(ps, vars.Pair{T: t, Key: r.Var})
	}
	return ps
}

// seed flattens the config into the interpreter's variable environment.
// Free-form vars win over model attributes of the same name.
func (cfg *Config) seed() map[string]string {
	env := vars.Build(cfg.pairs())
	maps.Copy(env, cfg.Vars)
	return env
}

// rendered is the JSON output of eval and tag run.
type rendered struct {
	Message *message.Sent    `json:"message"`
	Embeds  []*message.Embed `json:"embeds,omitzero"`
}

// printResponse renders the interpreter's body through the substitution and
// directive passes and prints the result with any embeds the script built.
func printResponse(resp *tagscript.Response, pairs []vars.Pair) error {
	out := rendered{Message: script.New(resp.Body, pairs...).Data()}
	if es, ok := resp.Actions["embeds"].([]*message.Embed); ok {
		out.Embeds = es
	}
	return printJSON(out)
}

func printJSON(v any) error {
	if err := json.MarshalWrite(os.Stdout, v, jsontext.WithIndent("\t")); err != nil {
		return fmt.Errorf("couldn't write payload: %w", err)
	}
	fmt.Println()
	return nil
}
