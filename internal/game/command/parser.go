package command

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRepeat bounds the count accepted by movement commands.
const MaxRepeat = 50

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command.
	Args []string
}

// Parse splits a text line into a command and arguments.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ParseResult{}
	}
	res := ParseResult{Command: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		res.Args = fields[1:]
	}
	return res
}

// RepeatCount reads the optional step count given after a movement command.
// No argument means one step.
//
// Postcondition: Returns a count in [1, MaxRepeat], or an error.
func RepeatCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("expected at most one count, got %d arguments", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > MaxRepeat {
		return 0, fmt.Errorf("count must be a number from 1 to %d, got %q", MaxRepeat, args[0])
	}
	return n, nil
}
