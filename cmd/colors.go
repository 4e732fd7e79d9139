package cmd

import (
	"strings"

	"github.com/fatih/color"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

func formatRiskWithColor(risk string) string {
	switch strings.ToLower(risk) {
	case "none", "low":
		return colorSuccess(risk)
	case "medium":
		return colorWarn(risk)
	case "high", "critical":
		return colorError(risk)
	default:
		return risk
	}
}

func formatGradeWithColor(grade string) string {
	switch grade {
	case "A", "B":
		return colorSuccess(grade)
	case "C", "D":
		return colorWarn(grade)
	case "F":
		return colorError(grade)
	default:
		return grade
	}
}
