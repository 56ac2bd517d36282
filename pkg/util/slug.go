package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cyrillic maps lowercase Russian and Ukrainian letters to Latin
var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch", 'ъ': "",
	'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'і': "i", 'ї': "yi", 'є': "ye", 'ґ': "g",
}

// Slugify derives a URL slug from a display name. Cyrillic is transliterated,
// Latin diacritics are dropped, every run of characters outside [a-z0-9]
// becomes one hyphen, and edge hyphens are trimmed. Slugify(Slugify(x)) == Slugify(x).
func Slugify(name string) string {
	lowered := strings.ToLower(norm.NFC.String(name))

	var translit strings.Builder
	translit.Grow(len(lowered))
	for _, r := range lowered {
		if latin, ok := cyrillic[r]; ok {
			translit.WriteString(latin)
			continue
		}
		translit.WriteRune(r)
	}

	// transformers are stateful, build one per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	ascii, _, err := transform.String(stripMarks, translit.String())
	if err != nil {
		ascii = translit.String()
	}

	var out strings.Builder
	out.Grow(len(ascii))
	pendingHyphen := false
	for _, r := range ascii {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && out.Len() > 0 {
				out.WriteByte('-')
			}
			pendingHyphen = false
			out.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return out.String()
}
