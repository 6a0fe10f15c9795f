package cli

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"

	"github.com/dmitrijs2005/vibejournal/internal/logging"
)

var ErrPlaybackDisabled = errors.New("audio playback is disabled")

// Player plays clips through an external command. Only one clip plays at a
// time: starting a new one stops the previous one first.
type Player struct {
	argv []string
	log  logging.Logger

	mu      sync.Mutex
	current *exec.Cmd
	done    chan struct{}
}

// NewPlayer splits command on spaces; the clip path is appended as the last
// argument. An empty command disables playback.
func NewPlayer(command string, log logging.Logger) *Player {
	return &Player{argv: strings.Fields(command), log: log}
}

func (p *Player) Enabled() bool {
	return len(p.argv) > 0
}

// Speaking reports whether a clip is playing.
func (p *Player) Speaking() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

func (p *Player) Play(ctx context.Context, path string) error {
	if !p.Enabled() {
		return ErrPlaybackDisabled
	}

	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	args := append(append([]string{}, p.argv[1:]...), path)
	cmd := exec.Command(p.argv[0], args...)
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan struct{})
	p.current, p.done = cmd, done

	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		if p.current == cmd {
			p.current, p.done = nil, nil
		}
		p.mu.Unlock()
		close(done)
		if err != nil {
			p.log.Debug(ctx, "player exited", "path", path, "error", err)
		}
	}()

	return nil
}

// Stop kills the clip that is playing, if any, and waits for it to exit.
func (p *Player) Stop() {
	p.mu.Lock()
	cmd, done := p.current, p.done
	p.current, p.done = nil, nil
	p.mu.Unlock()

	if cmd == nil {
		return
	}
	_ = cmd.Process.Kill()
	<-done
}
