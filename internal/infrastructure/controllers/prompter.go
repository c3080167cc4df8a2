package controllers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks questions on a line-oriented input stream.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a Prompter reading answers from in and writing questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out}
}

// Ask prints the question and returns the answer, or defaultValue for an empty answer.
// An answer rejected by validate is reported and the question asked again.
// It fails once the input is exhausted.
func (p *Prompter) Ask(question, defaultValue string, validate func(string) error) (string, error) {
	for {
		answer, err := p.readAnswer(question, defaultValue)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = defaultValue
		}

		if validate == nil {
			return answer, nil
		}
		validateErr := validate(answer)
		if validateErr == nil {
			return answer, nil
		}
		_, _ = fmt.Fprintf(p.out, "[ERROR] %v\n", validateErr)
	}
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	hint := "no"
	if defaultYes {
		hint = "yes"
	}

	for {
		answer, err := p.readAnswer(question+" (yes/no)", hint)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			_, _ = fmt.Fprintln(p.out, "[ERROR] Please answer yes or no.")
		}
	}
}

func (p *Prompter) readAnswer(question, defaultValue string) (string, error) {
	if defaultValue != "" {
		_, _ = fmt.Fprintf(p.out, " %s [%s]:\n > ", question, defaultValue)
	} else {
		_, _ = fmt.Fprintf(p.out, " %s:\n > ", question)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("no answer to %q: %w", question, err)
	}
	return strings.TrimSpace(line), nil
}
