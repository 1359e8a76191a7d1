// Package tags persists named script templates per guild.
package tags

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed schema.sql
var schemaSQL string

// Init initializes an SQLite DB to store tags.
func Init[DB *sqlitex.Pool | *sqlite.Conn](ctx context.Context, db DB) error {
	conn, put, err := dbConn(ctx, db)
	defer put()
	if err != nil {
		return fmt.Errorf("couldn't get conn to init tags: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, schemaSQL, nil); err != nil {
		return fmt.Errorf("couldn't initialize tags schema: %w", err)
	}
	return nil
}

// Save writes a tag's template, replacing any existing template under the
// same name.
func Save[DB *sqlitex.Pool | *sqlite.Conn](ctx context.Context, db DB, guild, name, template, author string, tm time.Time) error {
	conn, put, err := dbConn(ctx, db)
	defer put()
	if err != nil {
		return fmt.Errorf("couldn't get conn to save tag: %w", err)
	}
	const insert = `INSERT INTO tag (guild, name, template, author, time) VALUES (:guild, :name, :template, :author, :time)
		ON CONFLICT (guild, name) DO UPDATE SET template=excluded.template, author=excluded.author, time=excluded.time`
	st, err := conn.Prepare(insert)
	if err != nil {
		return fmt.Errorf("couldn't prepare statement to save tag: %w", err)
	}
	st.SetText(":guild", guild)
	st.SetText(":name", name)
	st.SetText(":template", template)
	st.SetText(":author", author)
	st.SetInt64(":time", tm.UnixNano())
	if _, err := st.Step(); err != nil {
		return fmt.Errorf("couldn't save tag %s/%s: %w", guild, name, err)
	}
	return nil
}

// Lookup finds a tag's template. If the tag does not exist, the results are
// empty with a nil error.
func Lookup[DB *sqlitex.Pool | *sqlite.Conn](ctx context.Context, db DB, guild, name string) (template string, tm time.Time, err error) {
	conn, put, err := dbConn(ctx, db)
	defer put()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("couldn't get conn to look up tag: %w", err)
	}
	const sel = `SELECT template, time FROM tag WHERE guild=:guild AND name=:name`
	st, err := conn.Prepare(sel)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("couldn't prepare statement to look up tag: %w", err)
	}
	st.SetText(":guild", guild)
	st.SetText(":name", name)
	ok, err := st.Step()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("couldn't look up tag %s/%s: %w", guild, name, err)
	}
	if !ok {
		return "", time.Time{}, nil
	}
	template = st.ColumnText(0)
	tm = time.Unix(0, st.ColumnInt64(1))
	// Clean up the statement.
	st.Step()
	return template, tm, nil
}

// List returns the names of a guild's tags in lexical order.
func List[DB *sqlitex.Pool | *sqlite.Conn](ctx context.Context, db DB, guild string) ([]string, error) {
	conn, put, err := dbConn(ctx, db)
	defer put()
	if err != nil {
		return nil, fmt.Errorf("couldn't get conn to list tags: %w", err)
	}
	const sel = `SELECT name FROM tag WHERE guild=:guild ORDER BY name`
	st, err := conn.Prepare(sel)
	if err != nil {
		return nil, fmt.Errorf("couldn't prepare statement to list tags: %w", err)
	}
	st.SetText(":guild", guild)
	var names []string
	for {
		ok, err := st.Step()
		if err != nil {
			return nil, fmt.Errorf("couldn't list tags for %s: %w", guild, err)
		}
		if !ok {
			return names, nil
		}
		names = append(names, st.ColumnText(0))
	}
}

// Delete removes a tag. Deleting a tag that does not exist is not an error.
func Delete[DB *sqlitex.Pool | *sqlite.Conn](ctx context.Context, db DB, guild, name string) error {
	conn, put, err := dbConn(ctx, db)
	defer put()
	if err != nil {
		return fmt.Errorf("couldn't get conn to delete tag: %w", err)
	}
	const del = `DELETE FROM tag WHERE guild=:guild AND name=:name`
	st, err := conn.Prepare(del)
	if err != nil {
		return fmt.Errorf("couldn't prepare statement to delete tag: %w", err)
	}
	st.SetText(":guild", guild)
	st.SetText(":name", name)
	if _, err := st.Step(); err != nil {
		return fmt.Errorf("couldn't delete tag %s/%s: %w", guild, name, err)
	}
	return nil
}

// dbConn resolves a pool or plain connection to a connection and a cleanup.
func dbConn[DB *sqlitex.Pool | *sqlite.Conn](ctx context.Context, db DB) (*sqlite.Conn, func(), error) {
	switch db := any(db).(type) {
	case *sqlite.Conn:
		return db, func() {}, nil
	case *sqlitex.Pool:
		c, err := db.Take(ctx)
		return c, func() { db.Put(c) }, err
	}
	panic("unreachable")
}
