// Package errors provides coded, user-facing errors for the krow CLI.
//
// Each error has a registered code, a category and a short message, and can
// carry a detail paragraph, a suggestion and a wrapped cause:
//
//	return errors.New("K102").
//	    WithDetail("krow.toml line 3: expected '='").
//	    WithSuggestion("Check the file with a TOML linter").
//	    Wrap(err)
//
// Format renders the error for a terminal; FormatCompact and FormatJSON are
// for logs and machine consumers.
package errors
