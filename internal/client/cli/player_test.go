package cli

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_Disabled(t *testing.T) {
	p := NewPlayer("  ", logging.NewNop())

	assert.False(t, p.Enabled())
	assert.ErrorIs(t, p.Play(context.Background(), "clip.mp3"), ErrPlaybackDisabled)
	assert.False(t, p.Speaking())
	p.Stop()
}

func TestPlayer_NewClipStopsPrevious(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	p := NewPlayer("sleep", logging.NewNop())
	ctx := context.Background()

	require.NoError(t, p.Play(ctx, "30"))
	first := p.current
	require.True(t, p.Speaking())

	require.NoError(t, p.Play(ctx, "30"))
	assert.NotSame(t, first, p.current)
	assert.NotNil(t, first.ProcessState, "previous clip must have exited")
	assert.True(t, p.Speaking())

	p.Stop()
	assert.False(t, p.Speaking())
}

func TestPlayer_FinishesOnItsOwn(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	p := NewPlayer("true", logging.NewNop())

	require.NoError(t, p.Play(context.Background(), "clip.mp3"))
	assert.Eventually(t, func() bool { return !p.Speaking() }, 2*time.Second, 10*time.Millisecond)
}

func TestPlayer_MissingBinary(t *testing.T) {
	p := NewPlayer("definitely-not-a-player-binary", logging.NewNop())

	assert.Error(t, p.Play(context.Background(), "clip.mp3"))
	assert.False(t, p.Speaking())
}
