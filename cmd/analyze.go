package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/document"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/fetch"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/heuristic"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/pipeline"
	"github.com/Nimrod-Galor/Domain-Audit-sub002/internal/services"
	sharederrors "github.com/Nimrod-Galor/Domain-Audit-sub002/internal/shared/errors"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url|file> [<url|file>...]",
	Short: "Analyze the third-party resources of one or more pages",
	Long: `Fetch (or read from disk) each page's HTML and run the full analysis:
service identification, performance impact, privacy surface, and the
service dependency graph with cycle detection.

Local files are detected by existence on disk; anything else is treated
as a URL to fetch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runtimeCfg := cliConfig.Analyze
		analyzer := pipeline.New(pipeline.Config{
			Catalog:           services.DefaultCatalog(),
			Logger:            logger,
			ComponentTimeout:  runtimeCfg.componentTimeout(),
			IncludeFirstParty: runtimeCfg.IncludeFirstParty,
		})
		fetcher := fetch.New(fetch.Config{Timeout: runtimeCfg.fetchTimeout()})

		runner := &pipeline.BatchRunner{
			Concurrency: runtimeCfg.Concurrency,
			RateLimit:   runtimeCfg.RateLimit,
			Timeout:     runtimeCfg.fetchTimeout() + runtimeCfg.componentTimeout(),
		}

		outcomes := runner.Run(cmd.Context(), args, func(ctx context.Context, target string) (*pipeline.Result, error) {
			html, pageURL, err := loadTarget(ctx, fetcher, target)
			if err != nil {
				return nil, err
			}
			doc, err := document.ParseString(html)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", target, err)
			}
			return analyzer.Analyze(ctx, doc, heuristic.PageContext{
				URL:            pageURL,
				TargetKeywords: runtimeCfg.TargetKeywords,
				Industry:       runtimeCfg.Industry,
			})
		})

		var failed int
		for _, o := range outcomes {
			if o.Error != "" {
				failed++
				fmt.Printf("%s %s\n", colorError("failed:"), (&TargetFailedError{Target: o.Target, Reason: o.Error}).Error())
				continue
			}
			printSummary(o.Target, o.Result)
			if runtimeCfg.LegacyView {
				printLegacy(o.Result)
			}
		}

		if runtimeCfg.OutputJSON != "" {
			if err := writeResults(runtimeCfg.OutputJSON, outcomes); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", colorInfo("Results:"), runtimeCfg.OutputJSON)
		}
		if failed == len(outcomes) {
			return fmt.Errorf("%w: all %d targets", sharederrors.ErrTotalFailure, failed)
		}
		return nil
	},
}

func init() {
	bindAnalyzeFlags(analyzeCmd.Flags())
}

// loadTarget reads a local file when one exists at the given path, and
// fetches over HTTP otherwise. It returns the HTML plus the page URL to use
// for first-party filtering (empty for local files).
func loadTarget(ctx context.Context, fetcher *fetch.Fetcher, target string) (string, string, error) {
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		data, err := os.ReadFile(target)
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	}
	html, err := fetcher.Page(ctx, target)
	if err != nil {
		return "", "", err
	}
	return html, target, nil
}

func printSummary(target string, res *pipeline.Result) {
	c := res.Combined
	fmt.Printf("\n%s %s\n", colorInfo("Target:"), target)
	fmt.Printf("  resources: %d identified: %d trackers: %d blocking: %d cycles: %d\n",
		c.Summary.ResourceCount, c.Summary.ServicesIdentified, c.Summary.TrackerCount,
		c.Summary.BlockingCount, c.Summary.CycleCount)

	fmt.Printf("  overall score: %.1f\n", c.Scores.Overall)
	for _, name := range []string{"performance", "security", "strategy"} {
		if v, ok := c.Scores.Categories[name]; ok {
			fmt.Printf("    %-12s %5.1f (%s)\n", name, v, formatGradeWithColor(c.Scores.Grades[name]))
		}
	}
	if c.Security != nil {
		fmt.Printf("  privacy risk: %s\n", formatRiskWithColor(c.Security.RiskLevel))
	}
	if c.Dependencies != nil && len(c.Dependencies.Cycles.Cycles) > 0 {
		fmt.Printf("  %s dependency cycles detected (severity %s)\n",
			colorWarn("warning:"), c.Dependencies.Cycles.Severity)
	}
	for _, r := range c.Recommendations {
		fmt.Printf("  - [%s] %s\n", r.Type, r.Message)
	}
	if len(res.State.Errors) > 0 {
		fmt.Printf("  %s %d components failed; results are partial\n",
			colorWarn("degraded:"), len(res.State.Errors))
	}
}

func printLegacy(res *pipeline.Result) {
	view := pipeline.Legacy(res.Combined)
	fmt.Printf("  legacy: scripts=%d tracking=%s impact=%s privacy=%s cdn=%s\n",
		len(view.Scripts),
		strings.Join(view.Tracking, ","),
		view.PerformanceImpact,
		view.PrivacyImplications,
		strings.Join(view.CDNUsage, ","))
}

func writeResults(path string, outcomes []pipeline.TargetOutcome) error {
	data, err := json.MarshalIndent(outcomes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
