package cmd

import "testing"

func TestTargetFailedError(t *testing.T) {
	err := &TargetFailedError{Target: "https://example.com", Reason: "timeout"}
	want := "target https://example.com failed: timeout"
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}
}

func TestReportInputError(t *testing.T) {
	err := &ReportInputError{Path: "results.json", Reason: "truncated"}
	want := "results file results.json is not usable: truncated"
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}

	err = &ReportInputError{Path: "results.json"}
	want = "results file results.json is not usable"
	if err.Error() != want {
		t.Fatalf("expected %s, got %s", want, err.Error())
	}
}
