package markup

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"просто текст", "просто текст"},
		{"a*b", `a\*b`},
		{"_*[]()~`>#+-=|{}.!", "\\_\\*\\[\\]\\(\\)\\~\\`\\>\\#\\+\\-\\=\\|\\{\\}\\.\\!"},
		// Бэкслеш экранируется первым, иначе задвоились бы слеши.
		{`\`, `\\`},
		{`\*`, `\\\*`},
		{"стр. 10-12 (п.3)", `стр\. 10\-12 \(п\.3\)`},
		{"...", `\.\.\.`},
	}
	for _, c := range cases {
		if got := EscapeMarkdown(c.in); got != c.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
