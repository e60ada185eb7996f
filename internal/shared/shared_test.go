package shared

import (
	"strings"
	"testing"
)

func TestFormatTimecode(t *testing.T) {
	tc := []struct {
		name    string
		seconds float64
		want    string
	}{
		{
			name:    "whole minutes",
			seconds: 120,
			want:    "2:00.0",
		},
		{
			name:    "tenth precision",
			seconds: 92.5,
			want:    "1:32.5",
		},
		{
			name:    "under a minute",
			seconds: 7.3,
			want:    "0:07.3",
		},
		{
			name:    "zero",
			seconds: 0,
			want:    "0:00.0",
		},
		{
			name:    "negative clamps to zero",
			seconds: -5,
			want:    "0:00.0",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimecode(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatTimecode(%v) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(754); got != "12:34" {
		t.Errorf("FormatDuration(754) = %v, want 12:34", got)
	}
	if got := FormatDuration(59); got != "0:59" {
		t.Errorf("FormatDuration(59) = %v, want 0:59", got)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if string(compact) != `{"key":"value"}` {
		t.Errorf("unexpected compact output: %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("MarshalJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n") {
		t.Errorf("expected indented output, got %s", pretty)
	}
}
