// Package errors provides the classified error primitives used across leli.
//
// Every failure that crosses a package boundary is tagged with an
// ErrorCategory (not_found, decode, filesystem, external_tool, ...) and an
// ErrorSeverity. Per-file failures are reported in walk outcomes and logged;
// only fatal errors reach the CLI adapter, which maps them to exit codes.
//
// Example usage:
//
//	err := errors.ExternalToolError("converter failed").
//		WithCause(runErr).
//		WithContext("input", path).
//		Build()
package errors
