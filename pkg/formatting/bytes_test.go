package formatting_test

import (
	"testing"

	"github.com/JaimeStill/schedease/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare bytes", "1024", 1024, false},
		{"kilobytes", "64KB", 64 * 1024, false},
		{"default body limit", "1MB", 1 << 20, false},
		{"lowercase with space", "2 mb", 2 << 20, false},
		{"fractional", "1.5KB", 1536, false},
		{"surrounding whitespace", "  8GB ", 8 << 30, false},
		{"empty", "", 0, true},
		{"unknown unit", "5XB", 0, true},
		{"no number", "MB", 0, true},
		{"negative", "-1MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{512, 0, "512 B"},
		{1 << 20, 0, "1 MB"},
		{1536, 1, "1.5 KB"},
		{1 << 30, -1, "1 GB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}
}
