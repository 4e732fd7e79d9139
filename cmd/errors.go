package cmd

import "fmt"

// TargetFailedError reports one analyze target that could not be completed.
type TargetFailedError struct {
	Target string
	Reason string
}

func (e *TargetFailedError) Error() string {
	return fmt.Sprintf("target %s failed: %s", e.Target, e.Reason)
}

// ReportInputError signals an unusable results file for report generation.
type ReportInputError struct {
	Path   string
	Reason string
}

func (e *ReportInputError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("results file %s is not usable", e.Path)
	}
	return fmt.Sprintf("results file %s is not usable: %s", e.Path, e.Reason)
}
