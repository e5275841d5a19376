package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/sortbench/internal/record"
)

// Prompter reads answers to prompts one line at a time.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading from r and writing prompts to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(r), out: w}
}

// Line prints prompt and returns the next line without its newline.
// Returns io.EOF when input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// Text prompts for a normalized string.
func (p *Prompter) Text(prompt string) (string, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return "", err
	}
	return Normalize(line), nil
}

// Int prompts until the answer is an integer within [min, max].
// Invalid answers are explained and asked again.
func (p *Prompter) Int(prompt string, min, max int) (int, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := ParseInt(line, min, max)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, ErrInvalidInput) {
			return 0, err
		}
		fmt.Fprintf(p.out, "%v. Try again.\n", err)
	}
}

// Record prompts for every field and asks for the whole record again until
// it passes validation.
func (p *Prompter) Record(v *Validator) (record.Record, error) {
	for {
		name, err := p.Line("Name: ")
		if err != nil {
			return record.Record{}, err
		}
		category, err := p.Line("Category: ")
		if err != nil {
			return record.Record{}, err
		}
		priority, err := p.Line("Priority (1-10): ")
		if err != nil {
			return record.Record{}, err
		}
		rec, err := v.ParseRecord(name, category, priority)
		if err == nil {
			return rec, nil
		}
		fmt.Fprintf(p.out, "%v. Try again.\n", err)
	}
}
