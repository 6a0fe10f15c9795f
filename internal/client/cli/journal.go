package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/client/services"
	"github.com/dmitrijs2005/vibejournal/internal/common"
)

// Talk uploads a recorded clip and presents the spoken answer.
func (a *App) Talk(ctx context.Context, path string) error {
	if path == "" {
		var err error
		if path, err = getSimpleText(a.reader, "Path to your recording", a.out); err != nil {
			return err
		}
	}

	a.player.Stop()
	a.setUploading(true)
	reply, err := a.journalService.TalkVoice(ctx, path)
	a.setUploading(false)
	if err != nil {
		return err
	}

	a.addTranscript(prefixed("me", reply.Transcript))
	a.showReply(ctx, reply)
	return nil
}

// Say sends a typed message; with no text on the command line it asks for one.
func (a *App) Say(ctx context.Context, text string) error {
	if text == "" {
		var err error
		if text, err = getMultiline(a.reader, "What's on your mind?", a.out); err != nil {
			return err
		}
	}

	reply, err := a.journalService.TalkText(ctx, text)
	if err != nil {
		return err
	}

	a.addTranscript(prefixed("me", text))
	a.showReply(ctx, reply)
	return nil
}

func (a *App) Morning(ctx context.Context) error {
	reply, err := a.journalService.Morning(ctx)
	if err != nil {
		return err
	}
	a.showReply(ctx, reply)
	return nil
}

func (a *App) StopPlayback(context.Context) error {
	a.player.Stop()
	return nil
}

func (a *App) showReply(ctx context.Context, r *services.Reply) {
	if r.Transcript != "" {
		a.alerts.Println("you:  " + r.Transcript)
	}
	if r.Reply != "" {
		a.alerts.Println("vibe: " + r.Reply)
		a.addTranscript(prefixed("vibe", r.Reply))
	}
	if v := r.Vibration; v != nil {
		a.alerts.Info("Vibration %s: %s %s", v.ID, v.Mood, v.Caption)
		if r.ImagePath != "" {
			a.alerts.Info("Image saved to %s", r.ImagePath)
		}
	}
	a.play(ctx, r.AudioPath)
}

// play starts a clip; without a usable player the saved path is shown.
func (a *App) play(ctx context.Context, path string) {
	if path == "" {
		return
	}
	err := a.player.Play(ctx, path)
	if err == nil {
		return
	}
	if !errors.Is(err, ErrPlaybackDisabled) {
		a.log.Warn(ctx, "playback failed", "path", path, "error", err)
	}
	a.alerts.Info("Audio saved to %s", path)
}

// Archive stores this session's conversation in the vault.
func (a *App) Archive(ctx context.Context) error {
	entries := a.takeTranscript()
	if len(entries) == 0 {
		return fmt.Errorf("%w: nothing to archive yet, talk first", common.ErrValidation)
	}

	title, err := getSimpleText(a.reader, "Title for this session (Enter to skip)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.journalService.Archive(ctx, title, entries)
	if err != nil {
		return err
	}

	a.clearTranscript()
	a.alerts.Success("Session archived (%s)", resp.ID)
	return nil
}

func (a *App) Vault(ctx context.Context) error {
	userID, err := a.userID()
	if err != nil {
		return err
	}

	sessions, err := a.journalService.Vault(ctx, userID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		a.alerts.Info("Your vault is empty")
		return nil
	}

	for _, s := range sessions {
		a.alerts.Println(fmt.Sprintf("%s  %s  %-10s %s", s.ID, s.CreatedAt.Local().Format(time.DateOnly), orDash(s.Mood), s.Title))
		if s.Summary != "" {
			a.alerts.Println("    " + s.Summary)
		}
	}
	return nil
}

func (a *App) Insights(ctx context.Context) error {
	userID, err := a.userID()
	if err != nil {
		return err
	}

	in, err := a.journalService.Insights(ctx, userID)
	if err != nil {
		return err
	}

	a.alerts.Println(fmt.Sprintf("sessions:      %d", in.TotalSessions))
	a.alerts.Println(fmt.Sprintf("dominant mood: %s", orDash(in.DominantMood)))
	if in.Streak > 0 {
		a.alerts.Println(fmt.Sprintf("streak:        %d days", in.Streak))
	}
	printCounts(a.alerts, "moods", in.MoodCounts)
	printCounts(a.alerts, "categories", in.Categories)
	return nil
}

func (a *App) userID() (string, error) {
	s := a.currentSession()
	if s == nil {
		return "", common.ErrNotLoggedIn
	}
	return s.UserID, nil
}

func printCounts(p *Presenter, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	p.Println(title + ":")
	for _, k := range keys {
		p.Println(fmt.Sprintf("  %-14s %d", k, counts[k]))
	}
}

func prefixed(who, text string) string {
	if text == "" {
		return ""
	}
	return who + ": " + text
}
