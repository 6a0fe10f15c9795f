package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level is the severity of a notice.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

var levelLabels = map[Level]string{
	LevelInfo:    "info",
	LevelSuccess: "ok",
	LevelWarning: "warning",
	LevelError:   "error",
}

// Presenter is the one place notices are rendered. Every command reports
// through it so they all look the same.
type Presenter struct {
	mu     sync.Mutex
	w      io.Writer
	styles map[Level]lipgloss.Style
}

func NewPresenter(w io.Writer) *Presenter {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return &Presenter{
		w: w,
		styles: map[Level]lipgloss.Style{
			LevelInfo:    badge.Foreground(lipgloss.Color("39")),
			LevelSuccess: badge.Foreground(lipgloss.Color("42")),
			LevelWarning: badge.Foreground(lipgloss.Color("214")),
			LevelError:   badge.Foreground(lipgloss.Color("203")),
		},
	}
}

func (p *Presenter) Show(level Level, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	label := p.styles[level].Render(levelLabels[level])
	fmt.Fprintf(p.w, "%s %s\n", label, fmt.Sprintf(format, args...))
}

func (p *Presenter) Info(format string, args ...any)    { p.Show(LevelInfo, format, args...) }
func (p *Presenter) Success(format string, args ...any) { p.Show(LevelSuccess, format, args...) }
func (p *Presenter) Warning(format string, args ...any) { p.Show(LevelWarning, format, args...) }
func (p *Presenter) Error(format string, args ...any)   { p.Show(LevelError, format, args...) }

// Println writes plain output such as listings.
func (p *Presenter) Println(args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, args...)
}
