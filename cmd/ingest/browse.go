package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"geocortex/internal/projector"

	"golang.org/x/term"
)

type key int

const (
	keyNone key = iota
	keyUp
	keyDown
	keyEnter
	keyQuit
)

// readKey decodes one keypress from a raw-mode terminal.
func readKey(r *bufio.Reader) (key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return keyQuit, err
	}
	switch b {
	case '\r', '\n':
		return keyEnter, nil
	case 3, 'q':
		return keyQuit, nil
	case 'k':
		return keyUp, nil
	case 'j':
		return keyDown, nil
	case 27:
		if r.Buffered() == 0 {
			return keyQuit, nil
		}
		if b2, _ := r.ReadByte(); b2 != '[' || r.Buffered() == 0 {
			return keyNone, nil
		}
		switch b3, _ := r.ReadByte(); b3 {
		case 'A':
			return keyUp, nil
		case 'B':
			return keyDown, nil
		}
	}
	return keyNone, nil
}

// cursor tracks the selected row of a list of n entries.
type cursor struct {
	pos, n int
}

func (c *cursor) apply(k key) bool {
	switch k {
	case keyUp:
		if c.pos > 0 {
			c.pos--
			return true
		}
	case keyDown:
		if c.pos < c.n-1 {
			c.pos++
			return true
		}
	}
	return false
}

func drawList(w io.Writer, rows []projector.Row, selected int) {
	fmt.Fprint(w, "\033[H\033[2J")
	for i, r := range rows {
		prefix := "  "
		if i == selected {
			prefix = "> "
		}
		fmt.Fprint(w, prefix+rowLine(r)+"\r\n")
	}
	fmt.Fprint(w, "(up/down to move, Enter for details, d to delete, Esc to quit)\r\n")
}

// browse shows the record list with arrow-key selection and opens the
// detail panel for the chosen record.
func (c *cli) browse(ctx context.Context) error {
	records, err := c.records.Records(ctx)
	if err != nil {
		return err
	}
	rows := projector.Project(records).Rows
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "no records")
		return nil
	}
	ids := recordIDs(records)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		printRows(c.out, rows)
		return nil
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	reader := bufio.NewReader(os.Stdin)
	cur := &cursor{n: len(rows)}
	drawList(c.out, rows, cur.pos)

	for ctx.Err() == nil {
		b, err := reader.Peek(1)
		if err == nil && b[0] == 'd' {
			_, _ = reader.ReadByte()
			_ = term.Restore(fd, oldState)
			if _, err := c.records.Delete(ctx, ids[cur.pos]); err != nil {
				return err
			}
			return c.browse(ctx)
		}

		k, err := readKey(reader)
		if err != nil {
			return nil
		}
		switch k {
		case keyQuit:
			fmt.Fprint(c.out, "\r\n")
			return nil
		case keyEnter:
			_ = term.Restore(fd, oldState)
			fmt.Fprintln(c.out)
			if d, err := c.detail(ctx, ids[cur.pos]); err != nil {
				fmt.Fprintf(c.out, "detail unavailable: %v\n", err)
			} else {
				printDetail(c.out, d)
			}
			fmt.Fprint(c.out, "\n(press Enter to return)")
			_, _ = bufio.NewReader(os.Stdin).ReadBytes('\n')

			if oldState, err = term.MakeRaw(fd); err != nil {
				return fmt.Errorf("raw mode: %w", err)
			}
			reader = bufio.NewReader(os.Stdin)
			drawList(c.out, rows, cur.pos)
		default:
			if cur.apply(k) {
				drawList(c.out, rows, cur.pos)
			}
		}
	}
	return nil
}
