// Package templates expands command templates against profile content.
//
// A template is any string with placeholders of two kinds:
//
//	{name}    replaced by the plain value stored under name
//	{?name}   replaced by the decrypted value stored under name
//
// Names match [\w-]+. Expansion is a single forward scan: every occurrence is
// resolved on its own, so "{a} and {a}" needs two values, and substituted text
// is never scanned again.
//
// A missing key, a placeholder whose kind does not match the stored value, or
// an unavailable cipher aborts the expansion with an error from
// internal/errors. Callers never receive a half-expanded string.
package templates
