package units

import "strings"

// synonyms maps colloquial names and common misspellings to canonical names.
// Every value must be a fixed point of NormalizeName.
var synonyms = map[string]string{
	"dewolaj":            "kotlet de volaille",
	"devolay":            "kotlet de volaille",
	"kotlet po kijowsku": "kotlet de volaille",
	"pałka z kurczaka":   "podudzie z kurczaka",
	"nóżka z kurczaka":   "podudzie z kurczaka",
	"schabowy":           "kotlet schabowy",
	"mielony":            "kotlet mielony",
	"talez":              "talerz",
	"plasterek":          "plaster",
}

// NormalizeName lowercases, trims and collapses whitespace in raw, then maps
// it through the synonym table. When the exact form is unknown, the form with
// a trailing plural marker (s, i or y) removed is tried as well.
func NormalizeName(raw string) string {
	name := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	if canonical, ok := synonyms[name]; ok {
		return canonical
	}
	if stem, ok := trimPlural(name); ok {
		if canonical, ok := synonyms[stem]; ok {
			return canonical
		}
	}
	return name
}

func trimPlural(name string) (string, bool) {
	for _, suffix := range []string{"s", "i", "y"} {
		if stem, ok := strings.CutSuffix(name, suffix); ok && stem != "" {
			return stem, true
		}
	}
	return "", false
}
