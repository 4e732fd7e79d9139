package cmd

import (
	"testing"

	"github.com/fatih/color"
)

func disableColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = original
	})
}

func TestFormatRiskWithColor(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name string
		risk string
		want string
	}{
		{name: "none", risk: "none", want: "none"},
		{name: "low", risk: "low", want: "low"},
		{name: "medium", risk: "medium", want: "medium"},
		{name: "high", risk: "high", want: "high"},
		{name: "mixed case", risk: "High", want: "High"},
		{name: "unknown", risk: "weird", want: "weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatRiskWithColor(tt.risk); got != tt.want {
				t.Fatalf("formatRiskWithColor(%q) = %q, want %q", tt.risk, got, tt.want)
			}
		})
	}
}

func TestFormatGradeWithColor(t *testing.T) {
	disableColor(t)

	for _, grade := range []string{"A", "B", "C", "D", "F", "?"} {
		if got := formatGradeWithColor(grade); got != grade {
			t.Fatalf("formatGradeWithColor(%q) = %q, want %q", grade, got, grade)
		}
	}
}
