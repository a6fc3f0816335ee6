package review

import "testing"

func TestPlainText(t *testing.T) {
	s := NewSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "tags stripped and entity decoded",
			input: "<p>A &amp; B</p>",
			want:  "A & B",
		},
		{
			name:  "tag-only input becomes empty",
			input: "<div></div>",
			want:  "",
		},
		{
			name:  "whitespace runs collapse",
			input: "<p>one</p>\n\n  <p>two\t three</p>",
			want:  "one two three",
		},
		{
			name:  "non-breaking space is whitespace",
			input: "a&nbsp;&nbsp;b",
			want:  "a b",
		},
		{
			name:  "angle bracket entities decode",
			input: "&lt;claim&gt; &quot;scope&quot;",
			want:  `<claim> "scope"`,
		},
		{
			name:  "script content does not survive",
			input: `<script>alert("x")</script>claim text`,
			want:  "claim text",
		},
		{
			name:  "empty input stays empty",
			input: "",
			want:  "",
		},
		{
			name:  "plain text passes through trimmed",
			input: "  already plain  ",
			want:  "already plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
