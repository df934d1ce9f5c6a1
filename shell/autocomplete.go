package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

var commandNames = []string{
	"autoplay", "best", "board", "check", "draw", "exit", "gen", "help",
	"new", "play", "rack", "score", "set",
}

var commandOptions = map[string][]string{
	"autoplay": {"-threads", "-file"},
	"set":      settable,
	"help":     {"autoplay", "gen", "rack", "set"},
}

// ShellCompleter implements readline.AutoCompleter for command names,
// autoplay options, and settable config keys.
type ShellCompleter struct{}

// Do returns the suffixes that complete the word under the cursor and the
// length of that word.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	switch {
	case len(fields) == 0:
		completions = commandNames
	case len(fields) == 1 && !endsWithSpace:
		prefix = fields[0]
		completions = commandNames
	default:
		completions = commandOptions[fields[0]]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
	}

	var out [][]rune
	for _, cand := range completions {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out, len([]rune(prefix))
}
