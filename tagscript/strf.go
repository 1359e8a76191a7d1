package tagscript

import (
	"strconv"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// StrfBlock formats a timestamp with a strftime format string in its
// payload. The parameter is the timestamp, as Unix epoch seconds or an
// RFC 3339 time; without one the current UTC time is used. The unix alias
// emits the current Unix timestamp:
//
//	{strf:%Y-%m-%d}
//	{strf(1420070400):%A %d, %B %Y}
//	{unix}
type StrfBlock struct{}

func (StrfBlock) WillAccept(ctx *Context) bool {
	return accepts(ctx.Verb, "strf", "unix")
}

func (StrfBlock) Process(ctx *Context) (string, bool, error) {
	if strings.EqualFold(ctx.Verb.Declaration, "unix") {
		return strconv.FormatInt(time.Now().UTC().Unix(), 10), true, nil
	}
	if ctx.Verb.Payload == "" {
		return "", false, nil
	}
	t := time.Now().UTC()
	if p := ctx.Verb.Parameter; p != "" {
		var err error
		t, err = parseTime(p)
		if err != nil {
			return "", false, nil
		}
	}
	return strftime.Format(ctx.Verb.Payload, t), true, nil
}

// parseTime accepts epoch seconds or a handful of ISO-ish layouts.
func parseTime(s string) (time.Time, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0).UTC(), nil
	}
	var err error
	for _, layout := range [...]string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		time.DateOnly,
	} {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
