package shell

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/crossrow/opener/config"
	"github.com/crossrow/opener/lexicon"
	"github.com/crossrow/opener/tilemapping"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"   ", nil, errNoData},
		{"autoplay -file /path/to/log.txt",
			&shellcmd{"autoplay", nil, CmdOptions{"file": {"/path/to/log.txt"}}},
			nil},
		{"gen 30",
			&shellcmd{"gen", []string{"30"}, CmdOptions{}},
			nil},
		{"autoplay 500 -threads 2 -file foo.txt ",
			&shellcmd{"autoplay",
				[]string{"500"},
				CmdOptions{"threads": {"2"}, "file": {"foo.txt"}}},
			nil,
		},
		{`autoplay -file "my log.csv"`,
			&shellcmd{"autoplay", nil, CmdOptions{"file": {"my log.csv"}}},
			nil},
		{"autoplay 500 -file",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

func newTestController(words ...string) (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	sc := newController(config.DefaultConfig(), lexicon.FromWords(words...),
		tilemapping.EnglishLetterDistribution(), rand.New(rand.NewSource(7)), &buf)
	return sc, &buf
}

func TestRackAndPlay(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController("QUILT", "QUILTS", "TACOS")

	resp, err := sc.handle("rack quiltsx")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "Rack: QUILTSX"))

	resp, err = sc.handle("gen")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "2 candidates for QUILTSX"))
	is.True(strings.Contains(resp.message, "1: QUILTS"))
	is.Equal(len(sc.curCands), 2)

	resp, err = sc.handle("best")
	is.NoErr(err)
	is.Equal(resp.message, "Best move: QUILTS at 3, scoring 25")
	is.True(sc.game.Row().IsEmpty())

	resp, err = sc.handle("play")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message,
		"| _ || _ || _ || Q || U || I || L || T || S || _ || _ || _ || _ |\nScore: 25"))

	resp, err = sc.handle("new")
	is.NoErr(err)
	is.True(sc.game.Row().IsEmpty())
	is.True(sc.game.Rack().IsEmpty())
}

func TestCommandsNeedRack(t *testing.T) {
	sc, _ := newTestController("CATS")
	for _, line := range []string{"gen", "best", "play"} {
		_, err := sc.handle(line)
		assert.Error(t, err, line)
	}
}

func TestPlayNoMoves(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestController("QUILT")
	sig := make(chan os.Signal, 1)
	sc.Execute(sig, "rack BCDFGHJ")
	buf.Reset()
	sc.Execute(sig, "play")
	is.Equal(buf.String(), "Error: no move found\n")
	is.True(sc.game.Row().IsEmpty())
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController("CATS")
	resp, err := sc.handle("draw")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Drew "))
	is.Equal(sc.game.Rack().NumTiles(), tilemapping.RackSize)
}

func TestCheckAndScore(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController("CATS", "QUILT")

	resp, err := sc.handle("check cats dogs")
	is.NoErr(err)
	is.Equal(resp.message, "CATS is valid\nDOGS is not valid")

	resp, err = sc.handle("score quilt")
	is.NoErr(err)
	is.Equal(resp.message, "QUILT: estimated 24, starts at slot 3")

	_, err = sc.handle("score cat5")
	is.True(err != nil)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController("CATS", "TAXX")
	_, err := sc.handle("rack catsxxx")
	is.NoErr(err)

	resp, err := sc.handle("gen")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "1 candidates"))

	resp, err = sc.handle("set min-score-fraction 0")
	is.NoErr(err)
	is.Equal(resp.message, "set min-score-fraction to 0")
	// the rack survives a settings change
	is.Equal(sc.game.Rack().String(), "CATSXXX")

	resp, err = sc.handle("gen")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "2 candidates"))

	_, err = sc.handle("set min-score-fraction 2")
	is.True(err != nil)
	is.Equal(sc.config.GetFloat64(config.ConfigMinScoreFraction), 0.0)

	_, err = sc.handle("set lexicon-path /tmp/foo")
	is.True(err != nil)

	resp, err = sc.handle("set rack-weights")
	is.NoErr(err)
	is.Equal(resp.message, "rack-weights=points")
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController("AEON", "ANTE", "EAST", "EATS", "IOTA", "LATE",
		"NOTE", "RATE", "SEAT", "TALE", "TEAR", "TONE", "STONE", "IRATE")
	logfile := filepath.Join(t.TempDir(), "turns.csv")

	resp, err := sc.handle("autoplay 40 -threads 2 -file " + logfile)
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Wrote 40 turns to "+logfile))
	is.True(strings.Contains(resp.message, "Turns: 40"))

	dat, err := os.ReadFile(logfile)
	is.NoErr(err)
	is.Equal(len(strings.Split(strings.TrimSpace(string(dat)), "\n")), 41)

	_, err = sc.handle("autoplay many")
	is.True(err != nil)
}

func TestHelp(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestController()
	resp, err := sc.handle("help")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "Usage:"))

	resp, err = sc.handle("help autoplay")
	is.NoErr(err)
	is.True(strings.Contains(resp.message, "turn,rack,word,offset,score"))

	_, err = sc.handle("help nonsense")
	is.True(err != nil)
}

func TestExecuteExit(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestController()
	sig := make(chan os.Signal, 1)
	sc.Execute(sig, "exit")
	is.Equal(<-sig, syscall.SIGINT)

	sc.Execute(sig, "frobnicate")
	is.Equal(buf.String(), "Error: command \"frobnicate\" not found\n")
}

func TestCompleter(t *testing.T) {
	c := &ShellCompleter{}
	line := []rune("au")
	out, n := c.Do(line, len(line))
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]rune{[]rune("toplay ")}, out)

	line = []rune("set min-")
	out, n = c.Do(line, len(line))
	assert.Equal(t, 4, n)
	assert.ElementsMatch(t, [][]rune{[]rune("word-length "), []rune("score-fraction ")}, out)
}
