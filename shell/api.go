package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/crossrow/opener/automatic"
	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/equity"
	"github.com/crossrow/opener/game"
	"github.com/crossrow/opener/move"
)

const defaultGenPlays = 15

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

// settable are the config keys `set` may change at runtime.
var settable = []string{
	config.ConfigDebug,
	config.ConfigMinWordLength,
	config.ConfigMinScoreFraction,
	config.ConfigRackWeights,
	config.ConfigDedupeCandidates,
	config.ConfigSearchTimeout,
	config.ConfigAutoplayThreads,
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

func (sc *ShellController) rack(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: rack <letters>")
	}
	if err := sc.game.SetRack(cmd.args[0]); err != nil {
		return nil, err
	}
	sc.curCands = nil
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) draw(cmd *shellcmd) (*Response, error) {
	rack, err := sc.game.DrawRack()
	if err != nil {
		return nil, err
	}
	sc.curCands = nil
	return msg("Drew " + rack.String()), nil
}

func (sc *ShellController) requireRack() error {
	if sc.game.Rack().IsEmpty() {
		return errors.New("please set a rack first with `rack` or `draw`")
	}
	return nil
}

func (sc *ShellController) generate(cmd *shellcmd) (*Response, error) {
	if err := sc.requireRack(); err != nil {
		return nil, err
	}
	numPlays := defaultGenPlays
	if len(cmd.args) > 0 {
		var err error
		numPlays, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	sc.curCands = sc.game.Generate()
	if len(sc.curCands) == 0 {
		return msg("No candidates for " + sc.game.Rack().String()), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d candidates for %s\n", len(sc.curCands), sc.game.Rack())
	sb.WriteString(move.Table(move.TopN(sc.curCands, numPlays)))
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) best(cmd *shellcmd) (*Response, error) {
	if err := sc.requireRack(); err != nil {
		return nil, err
	}
	m, err := sc.game.Best(context.Background())
	if err != nil {
		return nil, err
	}
	return msg("Best move: " + m.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if err := sc.requireRack(); err != nil {
		return nil, err
	}
	if _, err := sc.game.PlayBest(context.Background()); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) check(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: check <word> [word...]")
	}
	lines := lo.Map(cmd.args, func(w string, _ int) string {
		w = strings.ToUpper(w)
		if sc.lexicon.HasWord(w) {
			return w + " is valid"
		}
		return w + " is not valid"
	})
	return msg(strings.Join(lines, "\n")), nil
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: score <word>")
	}
	word := strings.ToUpper(cmd.args[0])
	if invalid := lo.Filter([]rune(word), func(r rune, _ int) bool {
		return !sc.ld.HasLetter(r)
	}); len(invalid) > 0 {
		return nil, fmt.Errorf("%s has letters not in the distribution: %s", word, string(invalid))
	}
	off, err := equity.StartingOffset(word, sc.ld)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s: estimated %d, starts at slot %d",
		word, equity.EstimateScore(word, sc.ld), off)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	numTurns := 1000
	if len(cmd.args) > 0 {
		var err error
		numTurns, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}

	runner := automatic.NewRunner(sc.config, sc.lexicon, sc.ld)
	var w io.Writer
	logfile := cmd.options.String("file")
	if logfile != "" {
		f, err := os.Create(logfile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		w = f
	}
	summary, err := runner.Run(context.Background(), numTurns, threads, w)
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	if logfile != "" {
		fmt.Fprintf(&out, "Wrote %d turns to %s\n", summary.Turns(), logfile)
	}
	out.WriteString(summary.String())
	if err := summary.FprintHistogram(&out); err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(out.String(), "\n")), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.config.SanitizedSettings()), nil
	}
	key := cmd.args[0]
	if !lo.Contains(settable, key) {
		return nil, fmt.Errorf("%s cannot be set; try one of %s", key, strings.Join(settable, ", "))
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s=%v", key, sc.config.Get(key))), nil
	}
	old := sc.config.Get(key)
	sc.config.Set(key, cmd.args[1])
	if err := sc.config.Validate(); err != nil {
		sc.config.Set(key, old)
		return nil, err
	}
	if key == config.ConfigDebug {
		if sc.config.GetBool(config.ConfigDebug) {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}
	// The generator reads its settings when it is built.
	rack := sc.game.Rack()
	sc.game = game.NewGame(sc.config, sc.lexicon, sc.ld, sc.rng)
	if !rack.IsEmpty() {
		if err := sc.game.SetRack(rack.String()); err != nil {
			return nil, err
		}
	}
	sc.curCands = nil
	log.Debug().Str("key", key).Interface("value", sc.config.Get(key)).Msg("set")
	return msg(fmt.Sprintf("set %s to %v", key, sc.config.Get(key))), nil
}

func (sc *ShellController) newTurn(cmd *shellcmd) (*Response, error) {
	sc.game.Reset()
	sc.curCands = nil
	return msg(sc.game.ToDisplayText()), nil
}
