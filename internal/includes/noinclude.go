package includes

// RemoveNoIncludes prepares a page to be shown on its own: the noinclude
// markers are removed and the text between them is kept.
func RemoveNoIncludes(input string) string {
	return noIncludeRegex.ReplaceAllString(input, "${1}")
}

// StripNoIncludes prepares a page to be included elsewhere: the noinclude
// markers are removed along with the text between them.
func StripNoIncludes(input string) string {
	return noIncludeRegex.ReplaceAllLiteralString(input, "")
}
