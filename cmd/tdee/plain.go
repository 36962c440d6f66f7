package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"lg/tdee-wizard/internal/wizard"
)

// errInputClosed is returned when input ends before the wizard finishes.
var errInputClosed = errors.New("input ended before all fields were entered")

// runPlain drives the wizard with one line of input per field. An empty line
// keeps the value shown in brackets. Choices may be given by number or by name.
func runPlain(in io.Reader, out io.Writer, today time.Time, log *zap.Logger) (flow, error) {
	reader := bufio.NewReader(in)
	f, err := newFlow().start()
	if err != nil {
		return f, err
	}
	fmt.Fprintln(out, "TDEE Calculator")

	for {
		p, ok := f.prompt()
		if !ok {
			return f, nil
		}

		def := f.defaultValue(p, today)
		fmt.Fprint(out, promptLine(p, def))
		line, readErr := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if readErr != nil && line == "" {
			if readErr == io.EOF {
				return f, errInputClosed
			}
			return f, readErr
		}

		value := def
		if line != "" {
			value = choiceValue(p, line)
		}

		next, err := f.commit(value)
		f = next
		if err != nil {
			log.Debug("entry rejected", zap.String("step", f.state.Step.String()), zap.Error(err))
			fmt.Fprintf(out, "  ! %s\n", errorText(err))
		}
	}
}

// promptLine renders e.g. "Starting Weight (kg) [70]: " with numbered choices
// listed first.
func promptLine(p wizard.Prompt, def string) string {
	var b strings.Builder
	for i, c := range p.Choices {
		fmt.Fprintf(&b, "  %d) %s\n", i+1, c.Label)
	}
	b.WriteString(p.Label)
	if p.Unit != "" {
		b.WriteString(" (" + p.Unit + ")")
	}
	if def != "" {
		b.WriteString(" [" + def + "]")
	}
	b.WriteString(": ")
	return b.String()
}

// choiceValue maps a choice number to its value. Anything else is passed
// through for the calculator to interpret.
func choiceValue(p wizard.Prompt, line string) string {
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(p.Choices) {
		return p.Choices[n-1].Value
	}
	return line
}
