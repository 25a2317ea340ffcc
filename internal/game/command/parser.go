package command

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseResult holds the parsed command name and argument from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Argument is the rest of the line after the first whitespace run,
	// trimmed and lowercased. It may be empty and may contain spaces.
	Argument string
}

// Parse splits a text line into a command and its argument.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = lower(strings.TrimSpace(line))
	if line == "" {
		return ParseResult{}
	}

	// Split at the first whitespace run.
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx < 0 {
		return ParseResult{Command: line}
	}

	return ParseResult{
		Command:  line[:idx],
		Argument: strings.TrimSpace(line[idx:]),
	}
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
