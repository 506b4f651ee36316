package includes

import "sort"

// edit replaces text[start:end] with text.
type edit struct {
	start int
	end   int
	text  string
}

// applyEdits performs non-overlapping edits, collected against the
// original offsets of s, from the highest start offset to the lowest so
// each replacement leaves the offsets of the remaining edits valid.
func applyEdits(s string, edits []edit) string {
	if len(edits) == 0 {
		return s
	}

	ordered := make([]edit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].start > ordered[j].start
	})

	buf := []byte(s)
	for _, e := range ordered {
		buf = replaceRange(buf, e.start, e.end, e.text)
	}
	return string(buf)
}

func replaceRange(buf []byte, start, end int, text string) []byte {
	out := make([]byte, 0, len(buf)-(end-start)+len(text))
	out = append(out, buf[:start]...)
	out = append(out, text...)
	return append(out, buf[end:]...)
}
