package main

import (
	"testing"

	"captioner/internal/testsupport"
)

func TestDoctorReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "External tools")
	requireContains(t, out, "Directories")
	requireContains(t, out, env.configPath)
	requireContains(t, out, "All required checks passed")
}
