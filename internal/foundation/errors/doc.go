// Package errors provides the classified error primitives used across the site builder.
//
// Every failure that can abort a build is reported as a ClassifiedError carrying a
// category from the build taxonomy (document read, header parse, body conversion,
// output write, path collision, ...), a severity and a context map that identifies the
// offending document. The CLI adapter turns a classified error into a log line and a
// process exit code.
//
// Example usage:
//
//	err := errors.DocumentReadError("failed to read document").
//		WithCause(readErr).
//		WithContext("collection", "blog").
//		WithContext("document", "hello-world").
//		Build()
package errors
