// Raw-mode stdin/stdout wiring for the monitor REPL, grounded directly
// on the teacher's terminal_host.go (term.MakeRaw/term.Restore pattern),
// adapted from its byte-at-a-time MMIO router to a line-buffered REPL.
package monitor

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"
)

// TerminalHost puts stdin in raw mode for the duration of an
// interactive monitor session and restores it on Close.
type TerminalHost struct {
	fd       int
	oldState *term.State
}

// Attach switches stdin to raw mode; call Close to restore it. Returns
// an error if stdin isn't a real terminal (raw mode unsupported).
func Attach() (*TerminalHost, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("monitor: failed to set raw mode: %w", err)
	}
	return &TerminalHost{fd: fd, oldState: oldState}, nil
}

func (h *TerminalHost) Close() error {
	return term.Restore(h.fd, h.oldState)
}

// RunInteractive attaches raw mode, runs the REPL reading line-buffered
// input from stdin (translating CR to LF the way the teacher's host
// does for raw-mode terminals), and restores the terminal on return.
func (m *Monitor) RunInteractive() error {
	host, err := Attach()
	if err != nil {
		return err
	}
	defer host.Close()

	reader := bufio.NewReader(os.Stdin)
	fmt.Fprint(os.Stdout, "> ")
	for {
		// Raw mode delivers Enter as CR, so CR ends a line just as LF does.
		var buf []byte
		var err error
		for {
			var c byte
			if c, err = reader.ReadByte(); err != nil || c == '\r' || c == '\n' {
				break
			}
			buf = append(buf, c)
		}
		line := string(buf)
		if len(line) > 0 {
			trimmed := trimCRLF(line)
			m.Dispatch(trimmed)
			for _, l := range m.output {
				fmt.Fprintf(os.Stdout, "%s\r\n", l.Text)
			}
			m.output = m.output[:0]
			if trimmed == "quit" || trimmed == "q" {
				return nil
			}
		}
		if err != nil {
			return nil
		}
		fmt.Fprint(os.Stdout, "> ")
	}
}

func trimCRLF(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
