// Package shell is the interactive front end: read a rack, generate
// candidates, pick and play the best opening.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/game"
	"github.com/crossrow/opener/lexicon"
	"github.com/crossrow/opener/move"
	"github.com/crossrow/opener/tilemapping"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errQuit              = errors.New("sending quit signal")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	config   *config.Config
	execPath string

	lexicon *lexicon.Lexicon
	ld      *tilemapping.LetterDistribution
	rng     tilemapping.Randomizer
	game    *game.Game

	curCands []move.Candidate
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController loads the lexicon and letter distribution named in cfg
// and sets up a readline prompt.
func NewShellController(cfg *config.Config, execPath string) (*ShellController, error) {
	lex, err := lexicon.GetDefault(cfg)
	if err != nil {
		return nil, err
	}
	ld, err := tilemapping.GetDistribution(cfg)
	if err != nil {
		return nil, err
	}
	sc := newController(cfg, lex, ld, tilemapping.DefaultRandomizer(), os.Stderr)
	sc.execPath = execPath

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mopener>\033[0m ",
		HistoryFile:     "/tmp/opener_readline.tmp",
		AutoComplete:    &ShellCompleter{},
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc, nil
}

func newController(cfg *config.Config, lex *lexicon.Lexicon, ld *tilemapping.LetterDistribution,
	rng tilemapping.Randomizer, out io.Writer) *ShellController {

	return &ShellController{
		out:     out,
		config:  cfg,
		lexicon: lex,
		ld:      ld,
		rng:     rng,
		game:    game.NewGame(cfg, lex, ld, rng),
	}
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its positional arguments, and
// its -key value options. Quoting follows shell rules.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}

	for idx := 1; idx < len(fields); idx++ {
		f := fields[idx]
		if len(f) > 1 && strings.HasPrefix(f, "-") {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := f[1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) handle(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}

	switch cmd.cmd {
	case "exit", "bye":
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "rack", "r":
		return sc.rack(cmd)
	case "draw", "d":
		return sc.draw(cmd)
	case "gen", "g":
		return sc.generate(cmd)
	case "best":
		return sc.best(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "board", "b", "s":
		return sc.show(cmd)
	case "check", "c":
		return sc.check(cmd)
	case "score":
		return sc.score(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "set":
		return sc.set(cmd)
	case "new", "n":
		return sc.newTurn(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs a single line and reports the outcome. An exit command sends
// SIGINT on sig.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.handle(line)
	switch {
	case errors.Is(err, errQuit):
		sig <- syscall.SIGINT
	case errors.Is(err, errNoData):
	case err != nil:
		sc.showError(err)
	case resp != nil && resp.message != "":
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) Cleanup() {
	log.Debug().Msg("cleaning up")
}
