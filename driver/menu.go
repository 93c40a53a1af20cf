// menu.go — the interactive step menu.
package driver

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mirvm/mir/optimize"
)

// Reserved control codes. They live outside the step registry and must
// never collide with it; quit deliberately starts with a non-letter
// character so it sorts to the top of the menu.
const (
	quitCode     = '#'
	cleanerCode  = ','
	compressCode = ';'
)

const menuColumns = 4

var controlOptions = map[byte]string{
	quitCode:     ">>> QUIT <<<",
	cleanerCode:  "VarNameCleaner",
	compressCode: "StackCompressor",
}

type menuEntry struct {
	code byte
	name string
}

// menuEntries merges the registry with the control options, sorted
// case-insensitively by description with the code as tie-break. A code
// registered on both sides is a defect in the build, not operator
// error.
func menuEntries() ([]menuEntry, error) {
	steps := optimize.CodeToNameMap()
	var overlap []string
	for code := range controlOptions {
		if _, ok := steps[code]; ok {
			overlap = append(overlap, string(code))
		}
	}
	if len(overlap) > 0 {
		sort.Strings(overlap)
		return nil, internalErrorf(
			"control codes collide with registered step abbreviations: %s; pick different control characters",
			strings.Join(overlap, ", "))
	}
	entries := make([]menuEntry, 0, len(steps)+len(controlOptions))
	for code, name := range steps {
		entries = append(entries, menuEntry{code: code, name: name})
	}
	for code, name := range controlOptions {
		entries = append(entries, menuEntry{code: code, name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		a := strings.ToLower(entries[i].name)
		b := strings.ToLower(entries[j].name)
		if a != b {
			return a < b
		}
		return toLower(entries[i].code) < toLower(entries[j].code)
	})
	return entries, nil
}

// formatMenu lays the entries out in the given number of columns, read
// top-to-bottom then left-to-right, names padded to the longest
// description so columns line up.
func formatMenu(entries []menuEntry, columns int) string {
	if columns < 1 {
		columns = 1
	}
	widest := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.name); w > widest {
			widest = w
		}
	}
	rows := (len(entries) + columns - 1) / columns
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for idx := row; idx < len(entries); idx += rows {
			e := entries[idx]
			sb.WriteByte(e.code)
			sb.WriteString(": ")
			sb.WriteString(runewidth.FillRight(e.name, widest))
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
