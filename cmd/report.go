package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/cobra"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/pipeline"
	sharederrors "github.com/Nimrod-Galor/Domain-Audit-sub002/internal/shared/errors"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report <results.json>",
	Short: "Generate a PDF report from saved analysis results",
	Long: `Read a results file written by "analyze --json" and render a PDF
report with the per-target summaries, scores, and recommendations.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcomes, err := loadResults(args[0])
		if err != nil {
			return err
		}

		data, err := generatePDFReportBytes(outcomes)
		if err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		if err := os.WriteFile(reportOutput, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", colorSuccess("Report written:"), reportOutput)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "domaudit-report.pdf", "output PDF path")
}

func loadResults(path string) ([]pipeline.TargetOutcome, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ReportInputError{Path: path, Reason: sharederrors.ErrResultsNotFound.Error()}
		}
		return nil, err
	}
	var outcomes []pipeline.TargetOutcome
	if err := json.Unmarshal(raw, &outcomes); err != nil {
		return nil, &ReportInputError{Path: path, Reason: fmt.Sprintf("%v: %v", sharederrors.ErrDeserializationFailed, err)}
	}
	if len(outcomes) == 0 {
		return nil, &ReportInputError{Path: path, Reason: "no targets in file"}
	}
	return outcomes, nil
}

func generatePDFReportBytes(outcomes []pipeline.TargetOutcome) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Third-Party Resource Audit", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format(time.RFC1123)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Targets: %d", len(outcomes)), "", 1, "", false, 0, "")
	pdf.Ln(5)

	for _, o := range outcomes {
		if pdf.GetY() > 250 {
			pdf.AddPage()
		}

		pdf.SetFont("Arial", "B", 11)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(0, 8, o.Target, "", 1, "", true, 0, "")

		if o.Error != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.MultiCell(0, 5, fmt.Sprintf("Analysis failed: %s", o.Error), "", "", false)
			pdf.Ln(3)
			continue
		}
		if o.Result == nil {
			pdf.Ln(3)
			continue
		}

		c := o.Result.Combined
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Resources: %d | Identified: %d | Trackers: %d | Blocking: %d | Cycles: %d",
			c.Summary.ResourceCount, c.Summary.ServicesIdentified, c.Summary.TrackerCount,
			c.Summary.BlockingCount, c.Summary.CycleCount), "", 1, "", false, 0, "")
		pdf.CellFormat(0, 6, fmt.Sprintf("Overall score: %.1f", c.Scores.Overall), "", 1, "", false, 0, "")
		for _, name := range []string{"performance", "security", "strategy"} {
			if v, ok := c.Scores.Categories[name]; ok {
				pdf.CellFormat(0, 6, fmt.Sprintf("  %s: %.1f (%s)", name, v, c.Scores.Grades[name]), "", 1, "", false, 0, "")
			}
		}
		if c.Security != nil {
			pdf.CellFormat(0, 6, fmt.Sprintf("Privacy risk: %s", c.Security.RiskLevel), "", 1, "", false, 0, "")
		}
		if c.Dependencies != nil && len(c.Dependencies.Cycles.Cycles) > 0 {
			pdf.CellFormat(0, 6, fmt.Sprintf("Dependency cycles: %d (severity %s)",
				len(c.Dependencies.Cycles.Cycles), c.Dependencies.Cycles.Severity), "", 1, "", false, 0, "")
		}
		if len(c.Recommendations) > 0 {
			pdf.SetFont("Arial", "", 9)
			for _, r := range c.Recommendations {
				if pdf.GetY() > 260 {
					pdf.AddPage()
				}
				pdf.MultiCell(0, 5, fmt.Sprintf("- [%s] %s", r.Severity, r.Message), "", "", false)
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
