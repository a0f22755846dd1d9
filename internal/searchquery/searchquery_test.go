package searchquery

import "testing"

func TestPrepare(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n", ""},
		{"single word gets prefix star", "develop", `"develop"*`},
		{"only last word gets star", "quick not", `"quick" "not"*`},
		{"extra whitespace collapsed", "  quick   not ", `"quick" "not"*`},
		{"punctuation quoted literally", "C++ tips", `"C++" "tips"*`},
		{"embedded quotes doubled", `say "hi"`, `"say" """hi"""*`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prepare(tt.raw); got != tt.want {
				t.Errorf("Prepare(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
