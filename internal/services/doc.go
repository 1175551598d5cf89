// Package services defines shared utilities consumed by the pipeline stages
// and external tool integrations.
//
// Structured error markers plus the Wrap helper tag failures so the CLI can
// report them consistently and pick an exit status through ExitCode.
package services
