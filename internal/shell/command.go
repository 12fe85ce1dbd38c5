package shell

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Verbs accepted by ParseCommand, matched case-insensitively.
const (
	VerbPut    = "PUT"
	VerbGet    = "GET"
	VerbDelete = "DELETE"
	VerbQuit   = "QUIT"
)

// ErrUsage marks a command rejected before anything is sent to the server.
var ErrUsage = errors.New("invalid command")

// Command is one parsed line of user input.
type Command struct {
	Verb  string
	Key   string
	Value string
}

// ParseCommand splits line into at most three tokens: verb, key and the rest
// of the line as the value, so whitespace inside a value is kept verbatim.
func ParseCommand(line string) (Command, error) {
	fields := splitFields(line, 3)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty command", ErrUsage)
	}

	cmd := Command{Verb: strings.ToUpper(fields[0])}
	if len(fields) > 1 {
		cmd.Key = fields[1]
	}
	if len(fields) > 2 {
		cmd.Value = fields[2]
	}

	switch cmd.Verb {
	case VerbPut:
		if cmd.Key == "" || cmd.Value == "" {
			return Command{}, fmt.Errorf("%w: usage: PUT <key> <value>", ErrUsage)
		}
	case VerbGet:
		if cmd.Key == "" {
			return Command{}, fmt.Errorf("%w: usage: GET <key>", ErrUsage)
		}
	case VerbDelete:
		if cmd.Key == "" {
			return Command{}, fmt.Errorf("%w: usage: DELETE <key>", ErrUsage)
		}
	case VerbQuit:
		return Command{Verb: VerbQuit}, nil
	default:
		return Command{}, fmt.Errorf("%w: unknown command %q (expected PUT, GET, DELETE or QUIT)", ErrUsage, fields[0])
	}
	return cmd, nil
}

// splitFields splits on runs of whitespace into at most n fields; the last
// field holds the untouched remainder of the line.
func splitFields(line string, n int) []string {
	var fields []string
	rest := strings.TrimSpace(line)
	for rest != "" && len(fields) < n-1 {
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			break
		}
		fields = append(fields, rest[:i])
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
	}
	if rest != "" {
		fields = append(fields, rest)
	}
	return fields
}
