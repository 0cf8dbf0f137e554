package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Selection is the pair of catalogs to compare and the optional schema filter
type Selection struct {
	Left   string
	Right  string
	Schema string
}

// Complete reports whether both catalogs are chosen
func (s Selection) Complete() bool {
	return s.Left != "" && s.Right != ""
}

// Prompter asks for the missing parts of a selection on a line-oriented terminal
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask prints label and returns the trimmed answer. An answer cut by EOF is
// still returned; EOF with no answer is an error.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Complete asks for the catalogs missing from sel, then for the schema when
// the catalogs were asked for. names are shown as a hint.
func (p *Prompter) Complete(sel Selection, names []string) (Selection, error) {
	if sel.Complete() {
		return sel, nil
	}

	if len(names) > 0 {
		fmt.Fprintf(p.out, "Available catalogs: %s\n", strings.Join(names, ", "))
	}
	example := "PG-TEST"
	if len(names) > 0 {
		example = names[0]
	}

	var err error
	if sel.Left == "" {
		if sel.Left, err = p.Ask(fmt.Sprintf("Name of the first catalog (e.g. %s): ", example)); err != nil {
			return sel, err
		}
	}
	if sel.Right == "" {
		if sel.Right, err = p.Ask("Name of the second catalog: "); err != nil {
			return sel, err
		}
	}
	if !sel.Complete() {
		return sel, errors.New("both catalog names are required")
	}

	if sel.Schema == "" {
		if sel.Schema, err = p.Ask("Schema to compare (leave blank for all schemas): "); err != nil {
			if errors.Is(err, io.EOF) {
				return sel, nil
			}
			return sel, err
		}
	}

	return sel, nil
}
