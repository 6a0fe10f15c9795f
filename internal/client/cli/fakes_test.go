package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/dmitrijs2005/vibejournal/internal/client/config"
	"github.com/dmitrijs2005/vibejournal/internal/client/models"
	"github.com/dmitrijs2005/vibejournal/internal/client/services"
	"github.com/dmitrijs2005/vibejournal/internal/logging"
)

type fakeAuth struct {
	regIn  services.RegisterInput
	regErr error

	loginUser string
	loginPass string
	loginErr  error

	logoutCalled bool
	logoutErr    error

	onboardIn  services.OnboardingInput
	onboardRes *services.OnboardingResult
	onboardErr error

	session    *services.Session
	sessionErr error

	pingErr error
}

func (f *fakeAuth) Register(_ context.Context, in services.RegisterInput) error {
	f.regIn = in
	f.regIn.Password = append([]byte(nil), in.Password...)
	return f.regErr
}

func (f *fakeAuth) Login(_ context.Context, username string, password []byte) error {
	f.loginUser, f.loginPass = username, string(password)
	return f.loginErr
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func (f *fakeAuth) SetupOnboarding(_ context.Context, in services.OnboardingInput) (*services.OnboardingResult, error) {
	f.onboardIn = in
	return f.onboardRes, f.onboardErr
}

func (f *fakeAuth) Session(context.Context) (*services.Session, error) {
	if f.session == nil && f.sessionErr == nil {
		return &services.Session{}, nil
	}
	if f.session == nil {
		return nil, f.sessionErr
	}
	s := *f.session
	return &s, f.sessionErr
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

type fakeJournal struct {
	reply    *services.Reply
	err      error
	lastText string
	lastPath string

	archiveTitle   string
	archiveEntries []string
	archiveErr     error

	vault     []models.VaultSession
	insights  *models.Insights
	lastUser  string
	morningOK bool
}

func (f *fakeJournal) TalkVoice(_ context.Context, path string) (*services.Reply, error) {
	f.lastPath = path
	return f.reply, f.err
}

func (f *fakeJournal) TalkText(_ context.Context, text string) (*services.Reply, error) {
	f.lastText = text
	return f.reply, f.err
}

func (f *fakeJournal) Morning(context.Context) (*services.Reply, error) {
	f.morningOK = true
	return f.reply, f.err
}

func (f *fakeJournal) Archive(_ context.Context, title string, entries []string) (*models.ArchiveResponse, error) {
	f.archiveTitle, f.archiveEntries = title, entries
	if f.archiveErr != nil {
		return nil, f.archiveErr
	}
	return &models.ArchiveResponse{ID: "s1"}, nil
}

func (f *fakeJournal) Vault(_ context.Context, userID string) ([]models.VaultSession, error) {
	f.lastUser = userID
	return f.vault, f.err
}

func (f *fakeJournal) Insights(_ context.Context, userID string) (*models.Insights, error) {
	f.lastUser = userID
	return f.insights, f.err
}

type fakeNetwork struct {
	feed         []models.Vibration
	err          error
	lastID       string
	lastReaction models.Reaction
	lastMessage  string
}

func (f *fakeNetwork) Feed(context.Context) ([]models.Vibration, error) { return f.feed, f.err }

func (f *fakeNetwork) React(_ context.Context, id string, r models.Reaction) error {
	f.lastID, f.lastReaction = id, r
	return f.err
}

func (f *fakeNetwork) Offer(_ context.Context, id, message string) (*models.StatusResponse, error) {
	f.lastID, f.lastMessage = id, message
	if f.err != nil {
		return nil, f.err
	}
	return &models.StatusResponse{Status: "sent"}, nil
}

type fakeBilling struct {
	url      string
	err      error
	lastPlan models.Plan
}

func (f *fakeBilling) Checkout(_ context.Context, plan models.Plan) (string, error) {
	f.lastPlan = plan
	return f.url, f.err
}

func (f *fakeBilling) Portal(context.Context) (string, error) { return f.url, f.err }

type testApp struct {
	*App
	out     *bytes.Buffer
	auth    *fakeAuth
	journal *fakeJournal
	network *fakeNetwork
	billing *fakeBilling
}

// newTestApp builds an App over fakes; input feeds the interactive prompts.
func newTestApp(input ...string) *testApp {
	out := &bytes.Buffer{}
	ta := &testApp{
		out:     out,
		auth:    &fakeAuth{},
		journal: &fakeJournal{},
		network: &fakeNetwork{},
		billing: &fakeBilling{},
	}
	ta.App = &App{
		config:         &config.Config{ServerBaseURL: "http://backend"},
		log:            logging.NewNop(),
		authService:    ta.auth,
		journalService: ta.journal,
		networkService: ta.network,
		billingService: ta.billing,
		alerts:         NewPresenter(out),
		player:         NewPlayer("", logging.NewNop()),
		reader:         bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:            out,
	}
	return ta
}
