package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/vibejournal/internal/client/client"
	"github.com/dmitrijs2005/vibejournal/internal/client/config"
	"github.com/dmitrijs2005/vibejournal/internal/client/localdb"
	"github.com/dmitrijs2005/vibejournal/internal/client/services"
	"github.com/dmitrijs2005/vibejournal/internal/client/tokenstore"
	"github.com/dmitrijs2005/vibejournal/internal/filex"
	"github.com/dmitrijs2005/vibejournal/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const (
	dbFileName     = "client.db"
	deviceKeyName  = "device.key"
	mediaDirName   = "media"
	pingTimeout    = 3 * time.Second
	transcriptSize = 200
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	authService    services.AuthService
	journalService services.JournalService
	networkService services.NetworkService
	billingService services.BillingService

	alerts *Presenter
	player *Player
	reader *bufio.Reader
	out    io.Writer

	mu         sync.RWMutex
	mode       Mode
	session    *services.Session
	uploading  bool
	transcript []string
}

// NewApp wires storage, the HTTP client and the services from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dataDir, err := filex.EnsureDir(c.DataDir, "")
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	var db *sql.DB
	if c.TokenStore != tokenstore.BackendMemory {
		db, err = localdb.Open(ctx, filepath.Join(dataDir, dbFileName))
		if err != nil {
			log.Error(ctx, "error initializing database", "error", err)
			return nil, err
		}
	}

	tokens, err := tokenstore.New(c.TokenStore, db, filepath.Join(dataDir, deviceKeyName))
	if err != nil {
		closeDB(db)
		return nil, err
	}

	requester := client.NewRequester(c.ServerBaseURL, &http.Client{Timeout: c.HTTPTimeout}, tokens, log)
	api := client.NewHTTPClient(requester)
	media := services.NewMediaStore(filepath.Join(dataDir, mediaDirName))

	return &App{
		config:         c,
		log:            log,
		db:             db,
		authService:    services.NewAuthService(api, tokens, media, log),
		journalService: services.NewJournalService(api, media, log),
		networkService: services.NewNetworkService(api),
		billingService: services.NewBillingService(api),
		alerts:         NewPresenter(os.Stdout),
		player:         NewPlayer(c.PlayerCommand, log),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

// Run restores the stored session, starts the connectivity watcher and
// blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.alerts.Info("Welcome to vibejournal (type 'help' for commands)")
	a.restoreSession(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.player != nil {
		a.player.Stop()
	}
	closeDB(a.db)
}

func (a *App) restoreSession(ctx context.Context) {
	s, err := a.authService.Session(ctx)
	if err != nil {
		return
	}
	a.setSession(s)
	if s.Username != "" {
		a.alerts.Info("Welcome back, %s", s.Username)
	}
}

func (a *App) setSession(s *services.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
}

func (a *App) currentSession() *services.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// dropSession returns the App to the logged-out state.
func (a *App) dropSession() {
	a.mu.Lock()
	a.session = nil
	a.transcript = nil
	a.mu.Unlock()
	a.player.Stop()
}

func (a *App) isLoggedIn() bool {
	return a.currentSession() != nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setUploading(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.uploading = v
}

func (a *App) addTranscript(lines ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, l := range lines {
		if l != "" {
			a.transcript = append(a.transcript, l)
		}
	}
	if n := len(a.transcript); n > transcriptSize {
		a.transcript = a.transcript[n-transcriptSize:]
	}
}

func (a *App) takeTranscript() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.transcript...)
}

func (a *App) clearTranscript() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.transcript = nil
}

// getStatus renders the prompt decoration: user, connectivity and the
// transient uploading / speaking flags.
func (a *App) getStatus() string {
	a.mu.RLock()
	parts := make([]string, 0, 4)
	if a.session != nil && a.session.Username != "" {
		parts = append(parts, a.session.Username)
	}
	if a.mode != "" {
		parts = append(parts, string(a.mode))
	}
	if a.uploading {
		parts = append(parts, "uploading")
	}
	a.mu.RUnlock()

	if a.player != nil && a.player.Speaking() {
		parts = append(parts, "speaking")
	}

	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// App between online and offline mode until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	// a throttled backend is still reachable
	if err != nil && !errors.Is(err, client.ErrRateLimited) {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
