package tagscript

import (
	"strconv"
	"testing"
)

func TestSubstring(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"prefix", "{substr(0-3):Sable}", "Sab"},
		{"from", "{substr(2):Sable}", "ble"},
		{"whole", "{substr(0-5):Sable}", "Sable"},
		{"clamped-end", "{substr(0-100):Sable}", "Sable"},
		{"clamped-start", "{substr(100):Sable}", ""},
		{"negative-end", "{substr(0--1):Sable}", "Sabl"},
		{"inverted", "{substr(4-1):Sable}", ""},
		{"alias", "{substring(1-2):Sable}", "a"},
		{"runes", "{substr(0-2):héllo}", "hé"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := Default().Process(c.in, nil)
			if err != nil {
				t.Fatalf("process failed: %v", err)
			}
			if resp.Body != c.want {
				t.Errorf("wrong result: want %q, got %q", c.want, resp.Body)
			}
		})
	}
}

func TestIn(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"in-hit", "{in(apple pie):banana pie apple pie}", "true"},
		{"in-partial", "{in(mute):How does it feel to be muted?}", "true"},
		{"in-miss", "{in(kiwi):banana pie}", "false"},
		{"contains-word", "{contains(pie):banana pie apple}", "true"},
		{"contains-partial-miss", "{contains(mute):How does it feel to be muted?}", "false"},
		{"index-hit", "{index(food):I love to eat food}", "4"},
		{"index-miss", "{index(carrot):I love to eat food}", "-1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := Default().Process(c.in, nil)
			if err != nil {
				t.Fatalf("process failed: %v", err)
			}
			if resp.Body != c.want {
				t.Errorf("wrong result: want %q, got %q", c.want, resp.Body)
			}
		})
	}
}

func TestURLEncode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"percent", "{urlencode:hello world}", "hello%20world"},
		{"plus", "{urlencode(+):hello world}", "hello+world"},
		{"reserved", "{urlencode:a&b=c}", "a%26b%3Dc"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := Default().Process(c.in, nil)
			if err != nil {
				t.Fatalf("process failed: %v", err)
			}
			if resp.Body != c.want {
				t.Errorf("wrong result: want %q, got %q", c.want, resp.Body)
			}
		})
	}
}

func TestStrf(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"epoch", "{strf(1420070400):%Y-%m-%d}", "2015-01-01"},
		{"iso", "{strf(2024-07-04T12:30:00Z):%d/%m/%Y %H.%M}", "04/07/2024 12.30"},
		{"date-only", "{strf(2024-07-04):%A}", "Thursday"},
		{"bad-time-stays", "{strf(whenever):%Y}", "{strf(whenever):%Y}"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp, err := Default().Process(c.in, nil)
			if err != nil {
				t.Fatalf("process failed: %v", err)
			}
			if resp.Body != c.want {
				t.Errorf("wrong result: want %q, got %q", c.want, resp.Body)
			}
		})
	}
}

func TestUnix(t *testing.T) {
	resp, err := Default().Process("{unix}", nil)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if _, err := strconv.ParseInt(resp.Body, 10, 64); err != nil {
		t.Errorf("non-numeric timestamp %q: %v", resp.Body, err)
	}
}
