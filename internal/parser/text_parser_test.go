package parser

import "testing"

func TestParse(t *testing.T) {
	p := NewTextParser()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf endings", "line one\r\nline two\rline three", "line one\nline two\nline three"},
		{"extra blank lines", "para one\n\n\n\npara two", "para one\n\npara two"},
		{"blank lines with spaces", "para one\n   \n\t\npara two", "para one\n\npara two"},
		{"repeated spaces and tabs", "a  b\t\tc \t d", "a b c d"},
		{"surrounding whitespace", "  \n text body \n  ", "text body"},
		{"already clean", "nothing to do here", "nothing to do here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Parse(tc.in); got != tc.want {
				t.Errorf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
