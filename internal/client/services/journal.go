package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/client/client"
	"github.com/dmitrijs2005/vibejournal/internal/client/models"
	"github.com/dmitrijs2005/vibejournal/internal/logging"
)

// JournalService covers the recording loop, the vault and insights.
type JournalService interface {
	TalkVoice(ctx context.Context, audioPath string) (*Reply, error)
	TalkText(ctx context.Context, text string) (*Reply, error)
	Morning(ctx context.Context) (*Reply, error)
	Archive(ctx context.Context, title string, entries []string) (*models.ArchiveResponse, error)
	Vault(ctx context.Context, userID string) ([]models.VaultSession, error)
	Insights(ctx context.Context, userID string) (*models.Insights, error)
}

// Reply is a chat answer with its media fetched to local files.
type Reply struct {
	*models.ChatResponse
	AudioPath string
	ImagePath string
}

type journalService struct {
	client client.Client
	media  *MediaStore
	log    logging.Logger
	now    func() time.Time
}

func NewJournalService(c client.Client, media *MediaStore, log logging.Logger) JournalService {
	return &journalService{client: c, media: media, log: log, now: time.Now}
}

func (s *journalService) TalkVoice(ctx context.Context, audioPath string) (*Reply, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, validationErr("cannot read recording: %v", err)
	}
	defer f.Close()

	resp, err := s.client.ChatVoice(ctx, models.AudioClip{Filename: filepath.Base(audioPath), Data: f})
	if err != nil {
		return nil, fmt.Errorf("voice chat: %w", err)
	}
	return s.reply(ctx, resp)
}

func (s *journalService) TalkText(ctx context.Context, text string) (*Reply, error) {
	if err := ValidateText("message", text, maxTextLen); err != nil {
		return nil, err
	}

	resp, err := s.client.ChatText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("text chat: %w", err)
	}
	return s.reply(ctx, resp)
}

func (s *journalService) Morning(ctx context.Context) (*Reply, error) {
	resp, err := s.client.ChatMorning(ctx, s.now().Format("15:04"))
	if err != nil {
		return nil, fmt.Errorf("morning check-in: %w", err)
	}
	return s.reply(ctx, resp)
}

// reply downloads the answer's clip and vibration image. Media failures are
// logged and leave the matching path empty; the text part is still useful.
// An expired session is the exception: it is returned so the caller logs
// the user out.
func (s *journalService) reply(ctx context.Context, resp *models.ChatResponse) (*Reply, error) {
	r := &Reply{ChatResponse: resp}
	var err error

	if resp.AudioURL != "" {
		if r.AudioPath, err = s.fetch(ctx, resp.AudioURL, "reply.mp3"); err != nil {
			return nil, err
		}
	}
	if resp.Vibration != nil && resp.Vibration.ImageURL != "" {
		if r.ImagePath, err = s.fetch(ctx, resp.Vibration.ImageURL, "vibration.png"); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (s *journalService) fetch(ctx context.Context, url, fallback string) (string, error) {
	body, err := s.client.FetchMedia(ctx, url)
	if errors.Is(err, client.ErrSessionExpired) {
		return "", fmt.Errorf("media download: %w", err)
	}
	if err != nil {
		s.log.Warn(ctx, "media download failed", "url", url, "error", err)
		return "", nil
	}
	defer body.Close()

	p, err := s.media.Save(mediaName(url, fallback), body)
	if err != nil {
		s.log.Warn(ctx, "media save failed", "url", url, "error", err)
		return "", nil
	}
	return p, nil
}

func (s *journalService) Archive(ctx context.Context, title string, entries []string) (*models.ArchiveResponse, error) {
	if len(entries) == 0 {
		return nil, validationErr("nothing to archive yet")
	}

	resp, err := s.client.Archive(ctx, models.ArchiveRequest{Title: title, Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	return resp, nil
}

func (s *journalService) Vault(ctx context.Context, userID string) ([]models.VaultSession, error) {
	if userID == "" {
		return nil, validationErr("user id is unknown, log in again")
	}

	resp, err := s.client.Vault(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("vault: %w", err)
	}
	return resp.Sessions, nil
}

func (s *journalService) Insights(ctx context.Context, userID string) (*models.Insights, error) {
	if userID == "" {
		return nil, validationErr("user id is unknown, log in again")
	}

	resp, err := s.client.Insights(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("insights: %w", err)
	}
	return resp, nil
}
