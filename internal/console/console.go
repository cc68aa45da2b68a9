// internal/console/console.go
//
// Line-oriented terminal driver for Cordle.
// Responsibilities:
//   - Main menu and page dispatch (play, rules, code repository, stats).
//   - Reading one line of input per action from any io.Reader.
//   - Clearing the screen only when output is an interactive terminal.
//
// Pages live in their own files: play.go, code.go, pages.go.

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/Lcyanstars/Cordle/internal/game"
	"github.com/Lcyanstars/Cordle/internal/stats"
)

const clearSeq = "\x1B[2J\x1B[H\x1B[3J"

// Snippets is the repository surface the console needs.
type Snippets interface {
	game.Source
	List() []string
	Read(id string) (string, error)
	Add(id string, lines []string) error
	Remove(id string) (bool, error)
}

// Options tunes rendering and session construction.
type Options struct {
	Placeholder      rune
	FuzzyPlaceholder rune
	ProblemURL       string // fmt pattern taking the snippet id
	Point            game.PointParams // validated when a point game is created
	HistoryLimit     int // 0 shows every record

	Rand *rand.Rand
	Now  func() time.Time
}

// Console runs the interactive menus over a reader/writer pair.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	repo  Snippets
	stats stats.Store
	opts  Options
	tty   bool
}

// New returns a Console. Screen clearing is enabled only when out is a terminal.
func New(in io.Reader, out io.Writer, repo Snippets, st stats.Store, opts Options) *Console {
	if opts.Placeholder == 0 {
		opts.Placeholder = '@'
	}
	if opts.FuzzyPlaceholder == 0 {
		opts.FuzzyPlaceholder = '#'
	}
	if opts.ProblemURL == "" {
		opts.ProblemURL = "www.luogu.com.cn/problem/%s"
	}
	c := &Console{
		in:    bufio.NewScanner(in),
		out:   out,
		repo:  repo,
		stats: st,
		opts:  opts,
	}
	if f, ok := out.(*os.File); ok {
		c.tty = term.IsTerminal(int(f.Fd()))
	}
	return c
}

// Run shows the main menu until the player exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.clear()
		c.println("Play(P)", "Rule(R)", "Code(C)", "Stats(S)", "Exit(E)")

		op, ok := c.readOp()
		if !ok {
			return nil
		}
		switch op {
		case 'P':
			c.playPage(ctx)
		case 'R':
			c.rulePage()
		case 'C':
			c.codePage()
		case 'S':
			c.statsPage(ctx)
		case 'E':
			return nil
		}
	}
}

// readLine returns the next input line without its terminator.
// ok is false once input is exhausted.
func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			log.Warn().Err(err).Msg("read input")
		}
		return "", false
	}
	return strings.TrimRight(c.in.Text(), "\r"), true
}

// readOp reads a menu selection: the first non-blank character of a line.
func (c *Console) readOp() (rune, bool) {
	line, ok := c.readLine()
	if !ok {
		return 0, false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, true
	}
	return []rune(line)[0], true
}

func (c *Console) prompt(text string) (string, bool) {
	fmt.Fprint(c.out, text)
	return c.readLine()
}

func (c *Console) pause() {
	c.println("", "--Enter anything to get back--")
	c.readLine()
}

func (c *Console) println(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}

func (c *Console) clear() {
	if c.tty {
		fmt.Fprint(c.out, clearSeq)
	}
}
