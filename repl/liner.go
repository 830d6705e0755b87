package repl

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/peterh/liner"
)

// LinerSource reads command lines with line editing and a persistent
// history file. Ctrl-C and Ctrl-D end the session like the end of input.
type LinerSource struct {
	state     *liner.State
	history   string
	closeOnce sync.Once
	closeErr  error
}

// NewLinerSource creates an interactive line source. The history file is
// loaded when present and written back on Close; an empty path disables
// history persistence.
func NewLinerSource(historyFile string) *LinerSource {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &LinerSource{state: state, history: historyFile}
}

func (l *LinerSource) ReadLine(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// Close restores the terminal and writes the history back, at most once.
func (l *LinerSource) Close() error {
	l.closeOnce.Do(func() {
		if l.history != "" {
			if f, err := os.Create(l.history); err == nil {
				_, _ = l.state.WriteHistory(f)
				_ = f.Close()
			}
		}
		l.closeErr = l.state.Close()
	})
	return l.closeErr
}
