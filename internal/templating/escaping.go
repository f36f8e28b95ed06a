package templating

import "strings"

// ShellEscape escapes single quotes so that the value can be placed inside a single-quoted shell word.
func ShellEscape(value string) string {
	return strings.ReplaceAll(value, "'", `'"'"'`)
}

// ShellQuote returns value as a single, single-quoted shell word.
func ShellQuote(value string) string {
	return "'" + ShellEscape(value) + "'"
}
