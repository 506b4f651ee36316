package includes

import (
	"regexp"

	"wikiparse/internal/config"
)

var (
	includeRegex       = regexp.MustCompile(`(?ims)^\[\[\s*include-messy\s+`)
	includeCompatRegex = regexp.MustCompile(`(?ims)^\[\[\s*include\s+`)
	noIncludeRegex     = regexp.MustCompile(`(?ims)^\[\[\s*noinclude\s*\]\]\s*\n(.*?)\n\[\[/\s*noinclude\s*\]\]\s*$`)
	variableRegex      = regexp.MustCompile(`\{\$(?P<name>[a-zA-Z0-9_\-]+)\}`)
)

// location is where an include block opening was found.
type location struct {
	start int
	slice string
}

func includePattern(settings config.WikitextSettings) *regexp.Regexp {
	if settings.UseIncludeCompatibility {
		return includeCompatRegex
	}
	return includeRegex
}

// locate finds every include block opening in ascending order.
func locate(input string, settings config.WikitextSettings) []location {
	matches := includePattern(settings).FindAllStringIndex(input, -1)
	locations := make([]location, 0, len(matches))
	for _, m := range matches {
		locations = append(locations, location{start: m[0], slice: input[m[0]:m[1]]})
	}
	return locations
}
