package display

import "strings"

const reset = "\033[0m"

// styles maps style names to their SGR escape sequences.
var styles = map[string]string{
	"reset":      reset,
	"bold":       "\033[1m",
	"italic":     "\033[3m",
	"underline":  "\033[4m",
	"blink":      "\033[5m",
	"black":      "\033[30m",
	"red":        "\033[91m",
	"green":      "\033[92m",
	"yellow":     "\033[93m",
	"blue":       "\033[94m",
	"magenta":    "\033[95m",
	"cyan":       "\033[96m",
	"white":      "\033[97m",
	"bg_black":   "\033[40m",
	"bg_red":     "\033[41m",
	"bg_green":   "\033[42m",
	"bg_yellow":  "\033[43m",
	"bg_blue":    "\033[44m",
	"bg_magenta": "\033[45m",
	"bg_cyan":    "\033[46m",
	"bg_white":   "\033[47m",
}

// IsStyle reports whether name is in the style table.
func IsStyle(name string) bool {
	_, ok := styles[name]
	return ok
}

// StyleText wraps text in the named styles. Each style wraps the result of
// the previous one, so the first name ends up innermost. A single reset is
// appended. Unknown names are skipped; if none are known, text is returned
// unchanged.
func StyleText(text string, names ...string) string {
	var prefix []string
	for _, name := range names {
		if code, ok := styles[name]; ok {
			prefix = append(prefix, code)
		}
	}
	if len(prefix) == 0 {
		return text
	}

	var b strings.Builder
	for i := len(prefix) - 1; i >= 0; i-- {
		b.WriteString(prefix[i])
	}
	b.WriteString(text)
	b.WriteString(reset)
	return b.String()
}
