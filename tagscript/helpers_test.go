package tagscript

import "testing"

func TestParseIf(t *testing.T) {
	r := &Response{Variables: map[string]string{"name": "ann", "score": "250"}}
	cases := []struct {
		name  string
		in    string
		value bool
		ok    bool
	}{
		{"literal-true", "true", true, true},
		{"literal-false", "False", false, true},
		{"eq", "a==a", true, true},
		{"eq-miss", "a==b", false, true},
		{"ne", "a!=b", true, true},
		{"gt", "3>2", true, true},
		{"ge", "2>=2", true, true},
		{"lt-float", "2.5<2.75", true, true},
		{"gt-non-numeric", "a>b", false, false},
		{"variable-eq", "name==ann", true, true},
		{"variable-ord", "score>100", true, true},
		{"spaces", " 2  <  3 ", true, true},
		{"no-operator", "whatever", false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			value, ok := parseIf(r, c.in)
			if value != c.value || ok != c.ok {
				t.Errorf("wrong result: want %v %v, got %v %v", c.value, c.ok, value, ok)
			}
		})
	}
}

func TestPickOutput(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		result  bool
		out     string
	}{
		{"two-true", "yes&&no", true, "yes"},
		{"two-false", "yes&&no", false, "no"},
		{"or-delimited", "yes||no", false, "no"},
		{"whole-true", "all of it", true, "all of it"},
		{"whole-false", "all of it", false, ""},
		{"three-true", "a&&b&&c", true, "a&&b&&c"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, ok := pickOutput(c.payload, c.result, true)
			if !ok {
				t.Fatalf("unexpectedly declined")
			}
			if out != c.out {
				t.Errorf("wrong output: want %q, got %q", c.out, out)
			}
		})
	}
	if _, ok := pickOutput("x&&y", true, false); ok {
		t.Errorf("bad condition should decline")
	}
}
