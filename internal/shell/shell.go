// Package shell is the interactive front end of kv-client. It turns each line
// of input into at most one remote call and reports the result.
package shell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	PrepopulatePrompt = "Do you want to prepopulate values? (yes/no): "
	CommandPrompt     = "Enter command (PUT/GET/DELETE/QUIT): "
)

// MaxLineLength bounds one input line, terminator included. Longer lines are
// discarded whole and reported as a usage error.
const MaxLineLength = 1 << 20

var errLineTooLong = fmt.Errorf("%w: line longer than %d bytes", ErrUsage, MaxLineLength)

// Client is the remote store as seen by the shell.
type Client interface {
	Put(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// Pair is a key and the value to store under it.
type Pair struct {
	Key   string
	Value string
}

// Capitals is the fixed data set offered at startup.
var Capitals = []Pair{
	{"Angola", "Luanda"},
	{"Bahrain", "Manama"},
	{"Belgium", "Brussels"},
	{"Cuba", "Havana"},
	{"Egypt", "Cairo"},
	{"India", "Delhi"},
}

// Prepopulate stores every pair in Capitals and returns how many succeeded.
// A failed put is logged and does not stop the rest.
func Prepopulate(ctx context.Context, c Client, logger hclog.Logger) int {
	stored := 0
	for _, p := range Capitals {
		if err := c.Put(ctx, p.Key, p.Value); err != nil {
			logger.Error("error prepopulating", "key", p.Key, "error", err)
			continue
		}
		stored++
		logger.Info("prepopulated", "key", p.Key, "value", p.Value)
	}
	return stored
}

type Shell struct {
	client Client
	in     *bufio.Reader
	out    io.Writer
	logger hclog.Logger
}

// New returns a shell reading commands from in. Prompts go to out; results
// and errors go through logger.
func New(c Client, in io.Reader, out io.Writer, logger hclog.Logger) *Shell {
	return &Shell{
		client: c,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// Run asks about prepopulation, then executes commands until QUIT, end of
// input or ctx is cancelled. Failed calls are logged and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	answer, err := s.prompt(PrepopulatePrompt)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case errors.Is(err, ErrUsage):
		s.logger.Warn(err.Error())
	case err != nil:
		return err
	}
	if strings.EqualFold(strings.TrimSpace(answer), "yes") {
		Prepopulate(ctx, s.client, s.logger)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.prompt(CommandPrompt)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, ErrUsage):
			s.logger.Warn(err.Error())
			continue
		case err != nil:
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			s.logger.Warn(err.Error())
			continue
		}
		if cmd.Verb == VerbQuit {
			return nil
		}
		s.execute(ctx, cmd)
	}
}

func (s *Shell) execute(ctx context.Context, cmd Command) {
	switch cmd.Verb {
	case VerbPut:
		if err := s.client.Put(ctx, cmd.Key, cmd.Value); err != nil {
			s.logger.Error("PUT failed", "error", err)
			return
		}
		s.logger.Info("PUT request sent", "key", cmd.Key)

	case VerbGet:
		value, found, err := s.client.Get(ctx, cmd.Key)
		if err != nil {
			s.logger.Error("GET failed", "error", err)
			return
		}
		if !found {
			s.logger.Info(fmt.Sprintf("GET result: key %s does not exist", cmd.Key))
			return
		}
		s.logger.Info("GET result: " + value)

	case VerbDelete:
		removed, err := s.client.Delete(ctx, cmd.Key)
		if err != nil {
			s.logger.Error("DELETE failed", "error", err)
			return
		}
		s.logger.Info("DELETE request sent", "key", cmd.Key, "removed", removed)
	}
}

func (s *Shell) prompt(p string) (string, error) {
	fmt.Fprint(s.out, p)
	return s.readLine()
}

// readLine returns the next line without its terminator. A final line with no
// newline is still returned; io.EOF only comes back once input is exhausted.
func (s *Shell) readLine() (string, error) {
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, err := s.in.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > MaxLineLength {
				line, tooLong = nil, true
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err != nil && (!errors.Is(err, io.EOF) || (len(line) == 0 && !tooLong)) {
			return "", err
		}
		break
	}

	if tooLong {
		return "", errLineTooLong
	}
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return string(line), nil
}
