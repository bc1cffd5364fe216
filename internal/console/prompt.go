// Copyright (c) 2026 Backoffice. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam over [term.ReadPassword].
var readPassword = term.ReadPassword

// Prompter reads form input line by line. On a terminal, passwords are read
// without echo; otherwise they are read as plain lines so scripts can drive
// the console.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
}

// NewPrompter reads from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	prompter := &Prompter{reader: bufio.NewReader(in), out: out, fd: -1}

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		prompter.fd = int(file.Fd())
		prompter.tty = true
	}

	return prompter
}

// Interactive reports whether input comes from a terminal.
func (p *Prompter) Interactive() bool { return p.tty }

// Line prints prompt and returns the trimmed line. It returns [io.EOF] once
// input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Password prints prompt and reads a secret.
func (p *Prompter) Password(prompt string) (string, error) {
	if !p.tty {
		line, err := p.Line(prompt)
		return line, err
	}

	fmt.Fprint(p.out, prompt)
	secret, err := readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("console: read password: %w", err)
	}

	return string(secret), nil
}

// Optional reads a value for a partial update. An empty answer keeps the
// current value and returns nil.
func (p *Prompter) Optional(label, current string) (*string, error) {
	line, err := p.Line(fmt.Sprintf("%s [%s]: ", label, current))
	if err != nil || line == "" {
		return nil, err
	}
	return &line, nil
}

// OptionalFloat is [Prompter.Optional] for decimal fields.
func (p *Prompter) OptionalFloat(label string, current float64) (*float64, error) {
	raw, err := p.Optional(label, strconv.FormatFloat(current, 'f', -1, 64))
	if err != nil || raw == nil {
		return nil, err
	}

	value, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: not a number", label)
	}
	return &value, nil
}

// OptionalInt is [Prompter.Optional] for integer fields.
func (p *Prompter) OptionalInt(label string, current int) (*int, error) {
	raw, err := p.Optional(label, strconv.Itoa(current))
	if err != nil || raw == nil {
		return nil, err
	}

	value, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, fmt.Errorf("%s: not a whole number", label)
	}
	return &value, nil
}

// OptionalBool is [Prompter.Optional] for yes/no fields.
func (p *Prompter) OptionalBool(label string, current bool) (*bool, error) {
	raw, err := p.Optional(label, yesNo(current))
	if err != nil || raw == nil {
		return nil, err
	}

	switch strings.ToLower(*raw) {
	case "y", "yes", "true":
		value := true
		return &value, nil
	case "n", "no", "false":
		value := false
		return &value, nil
	default:
		return nil, fmt.Errorf("%s: answer yes or no", label)
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
