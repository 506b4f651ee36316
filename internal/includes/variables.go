package includes

import "wikiparse/internal/tree"

// ReplaceVariables substitutes {$name} references with values from
// variables. Unknown names are left as they are and substituted values are
// not scanned again.
func ReplaceVariables(content string, variables tree.VariableMap) string {
	if len(variables) == 0 {
		return content
	}

	nameIndex := variableRegex.SubexpIndex("name")

	var edits []edit
	for _, m := range variableRegex.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2*nameIndex]:m[2*nameIndex+1]]
		if value, ok := variables[name]; ok {
			edits = append(edits, edit{start: m[0], end: m[1], text: value})
		}
	}

	return applyEdits(content, edits)
}
