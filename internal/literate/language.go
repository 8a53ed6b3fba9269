package literate

import "strings"

// Language is the closed set of code block languages that produce output files.
type Language int

const (
	LanguageUnknown Language = iota
	Python
	Rust
)

type languageInfo struct {
	lang      Language
	name      string
	extension string
}

// languages is ordered; it fixes both detection priority and blob order.
var languages = []languageInfo{
	{Python, "python", "py"},
	{Rust, "rust", "rs"},
}

// Languages returns every recognized language in table order.
func Languages() []Language {
	out := make([]Language, 0, len(languages))
	for _, info := range languages {
		out = append(out, info.lang)
	}
	return out
}

func (l Language) info() (languageInfo, bool) {
	for _, info := range languages {
		if info.lang == l {
			return info, true
		}
	}
	return languageInfo{}, false
}

func (l Language) String() string {
	if info, ok := l.info(); ok {
		return info.name
	}
	return "unknown"
}

// Extension returns the file extension (without dot) for l.
func (l Language) Extension() (string, bool) {
	info, ok := l.info()
	return info.extension, ok
}

// DetectLanguage finds the language indicator on a fence line such as
// "```python", "``` {.python .numberLines}" or "```rust title=x".
func DetectLanguage(fence string) (Language, bool) {
	tag := strings.ToLower(strings.TrimLeft(strings.TrimSpace(fence), "`"))
	for _, info := range languages {
		if strings.Contains(tag, info.name) {
			return info.lang, true
		}
	}
	return LanguageUnknown, false
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

func isDelimiter(line string) bool {
	return strings.TrimSpace(line) == "---"
}
