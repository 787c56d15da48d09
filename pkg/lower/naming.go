package lower

import (
	"strconv"
	"strings"
	"unicode"
)

// EntryName normalizes a node name into the snake_case identifier used
// for its entry function and source file: lower-cased, whitespace runs
// collapsed to single underscores, other non-identifier runes dropped.
// Returns "module" for names that normalize to nothing.
func EntryName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsSpace(r):
			pendingSep = b.Len() > 0
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "module"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "m" + out
	}
	return out
}

// TypeName normalizes a node name into the PascalCase identifier used
// for Rust struct declarations (account records, Accounts contexts).
func TypeName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, part := range parts {
		r := []rune(part)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	out := b.String()
	if out == "" {
		return "Module"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "M" + out
	}
	return out
}

// uniqueNames maps each input to its normalized form, suffixing
// duplicates with _2, _3, … in input order so generated files and
// functions never collide.
func uniqueNames(names []string, normalize func(string) string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		base := normalize(name)
		seen[base]++
		if n := seen[base]; n > 1 {
			out[i] = base + "_" + strconv.Itoa(n)
			continue
		}
		out[i] = base
	}
	return out
}
