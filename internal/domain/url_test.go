package domain

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "absolute https kept",
			raw:  "https://example.com/path",
			want: "https://example.com/path",
		},
		{
			name: "absolute http kept",
			raw:  "http://example.com",
			want: "http://example.com",
		},
		{
			name: "bare host gets https prefix",
			raw:  "example.com",
			want: "https://example.com",
		},
		{
			name: "host with path gets https prefix",
			raw:  "example.com/a/b",
			want: "https://example.com/a/b",
		},
		{
			name: "unrecoverable input returned unchanged",
			raw:  "not a url",
			want: "not a url",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  https://example.com  ",
			want: "https://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.raw); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValidURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com", true},
		{"example.com", true},
		{"not a url", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		if got := ValidURL(tt.raw); got != tt.want {
			t.Errorf("ValidURL(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
