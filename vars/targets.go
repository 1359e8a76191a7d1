package vars

import "time"

// User is a chat service user or guild member.
type User struct {
	ID          string
	Name        string
	DisplayName string
	Mention     string
	Avatar      string
	CreatedAt   time.Time
	JoinedAt    time.Time
	BoostSince  time.Time
	Color       string
}

func (u *User) Key() string { return "user" }

func (u *User) String() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

func (u *User) Attrs() []Attr {
	return []Attr{
		{"id", u.ID},
		{"name", u.Name},
		{"display_name", u.DisplayName},
		{"mention", u.Mention},
		{"avatar", u.Avatar},
		{"created_at", u.CreatedAt},
		{"joined_at", u.JoinedAt},
		{"boost_since", u.BoostSince},
		{"color", u.Color},
	}
}

// Channel is any kind of chat channel. Different channel kinds, such as text
// and voice channels, all resolve under the "channel" variable prefix.
type Channel struct {
	ID        string
	Name      string
	Topic     string
	Mention   string
	Type      string
	CreatedAt time.Time
	Slowmode  time.Duration
}

func (c *Channel) Key() string { return "channel" }

func (c *Channel) String() string { return c.Name }

func (c *Channel) Attrs() []Attr {
	return []Attr{
		{"id", c.ID},
		{"name", c.Name},
		{"topic", c.Topic},
		{"mention", c.Mention},
		{"type", c.Type},
		{"created_at", c.CreatedAt},
		{"slowmode", c.Slowmode},
	}
}

// Guild is the server in which a render occurs.
type Guild struct {
	ID        string
	Name      string
	Icon      string
	Banner    string
	OwnerID   string
	Members   int
	Boosts    int
	CreatedAt time.Time
}

func (g *Guild) Key() string { return "guild" }

func (g *Guild) String() string { return g.Name }

func (g *Guild) Attrs() []Attr {
	return []Attr{
		{"id", g.ID},
		{"name", g.Name},
		{"icon", g.Icon},
		{"banner", g.Banner},
		{"owner_id", g.OwnerID},
		{"members", g.Members},
		{"boosts", g.Boosts},
		{"created_at", g.CreatedAt},
	}
}

// Record is an arbitrary domain model supplied by the caller, for values
// like a now-playing track or a level-up event that have no fixed type.
// Fields may themselves hold Target values, which flatten recursively under
// this record's key.
type Record struct {
	// Var is the preferred variable key.
	Var string
	// Text is the display form used for the bare key.
	Text string
	// Fields are the record's attributes in display order.
	Fields []Attr
}

func (r *Record) Key() string { return r.Var }

func (r *Record) String() string { return r.Text }

func (r *Record) Attrs() []Attr { return r.Fields }
