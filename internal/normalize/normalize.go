// Package normalize cleans up user-supplied profile values.
package normalize

import "strings"

// iso639_2to1 maps ISO 639-2 (3-letter) codes to ISO 639-1 codes.
//
//nolint:gochecknoglobals // Static lookup table
var iso639_2to1 = map[string]string{
	"eng": "en", "spa": "es", "fra": "fr", "deu": "de", "ita": "it",
	"por": "pt", "nld": "nl", "rus": "ru", "jpn": "ja", "zho": "zh",
	"kor": "ko", "ara": "ar", "hin": "hi", "pol": "pl", "swe": "sv",
	"nor": "no", "dan": "da", "fin": "fi", "tur": "tr", "ell": "el",
	"heb": "he", "ces": "cs", "hun": "hu", "ron": "ro", "tha": "th",
	"vie": "vi", "ind": "id", "msa": "ms", "ukr": "uk", "ben": "bn",
	"tam": "ta", "tel": "te", "mar": "mr", "urd": "ur", "fas": "fa",
	"swa": "sw", "tgl": "tl", "fil": "tl",
	// ISO 639-2/B
	"ger": "de", "fre": "fr", "dut": "nl", "chi": "zh", "cze": "cs",
	"gre": "el", "per": "fa", "rum": "ro", "may": "ms",
}

// languageNames maps common language names, lower-cased, to ISO 639-1 codes.
//
//nolint:gochecknoglobals // Static lookup table
var languageNames = map[string]string{
	"english": "en", "spanish": "es", "french": "fr", "german": "de",
	"italian": "it", "portuguese": "pt", "dutch": "nl", "russian": "ru",
	"japanese": "ja", "chinese": "zh", "mandarin": "zh", "korean": "ko",
	"arabic": "ar", "hindi": "hi", "polish": "pl", "swedish": "sv",
	"norwegian": "no", "danish": "da", "finnish": "fi", "turkish": "tr",
	"greek": "el", "hebrew": "he", "czech": "cs", "hungarian": "hu",
	"romanian": "ro", "thai": "th", "vietnamese": "vi", "indonesian": "id",
	"malay": "ms", "ukrainian": "uk", "bengali": "bn", "tamil": "ta",
	"telugu": "te", "marathi": "mr", "urdu": "ur", "persian": "fa",
	"farsi": "fa", "swahili": "sw", "tagalog": "tl", "filipino": "tl",
}

// LanguageCode converts a language given as an ISO code, locale or name
// into a lower-case two-letter code.
//
//	"en", "eng", "en-US", "en_GB", "English" -> "en"
//
// Two-letter inputs are accepted as-is. Returns "" for anything it cannot
// interpret.
func LanguageCode(raw string) string {
	s := strings.ToLower(strings.TrimSpace(stripNull(raw)))
	if s == "" {
		return ""
	}

	if idx := strings.IndexAny(s, "-_"); idx > 0 {
		s = s[:idx]
	}

	if len(s) == 2 && isLetters(s) {
		return s
	}
	if len(s) == 3 {
		if code, ok := iso639_2to1[s]; ok {
			return code
		}
	}
	if code, ok := languageNames[s]; ok {
		return code
	}
	return ""
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// stripNull removes NUL bytes, which SQLite and JSON clients mishandle.
func stripNull(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
