package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type fakeEventService struct {
	createErr  error
	lastCreate *domain.Event
	event      *domain.Event
	getErr     error
}

func (f *fakeEventService) CreateEvent(ctx context.Context, e *domain.Event) error {
	f.lastCreate = e
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = "ev-1"
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

type fakeInvitationService struct {
	err          error
	result       *domain.InvitationResult
	entry        *domain.WaitingListEntry
	unresponsive *domain.UnresponsiveResult
	outcome      *domain.DrawOutcome
	lastAction   string
	lastEventID  string
	lastEntryID  string
	lastUserID   string
	lastLat      *float64
}

func (f *fakeInvitationService) record(action, eventID, entryID, userID string) (*domain.InvitationResult, error) {
	f.lastAction, f.lastEventID, f.lastEntryID, f.lastUserID = action, eventID, entryID, userID
	return f.result, f.err
}

func (f *fakeInvitationService) Join(ctx context.Context, eventID, userID string, lat, lng *float64) (*domain.WaitingListEntry, error) {
	f.lastAction, f.lastEventID, f.lastUserID, f.lastLat = "join", eventID, userID, lat
	return f.entry, f.err
}

func (f *fakeInvitationService) Accept(ctx context.Context, eventID, entryID, userID string) (*domain.InvitationResult, error) {
	return f.record("accept", eventID, entryID, userID)
}

func (f *fakeInvitationService) Decline(ctx context.Context, eventID, entryID, userID string) (*domain.InvitationResult, error) {
	return f.record("decline", eventID, entryID, userID)
}

func (f *fakeInvitationService) Cancel(ctx context.Context, eventID, entryID, userID string) (*domain.InvitationResult, error) {
	return f.record("cancel", eventID, entryID, userID)
}

func (f *fakeInvitationService) CancelUnresponsive(ctx context.Context, eventID string) (*domain.UnresponsiveResult, error) {
	f.lastAction, f.lastEventID = "unresponsive", eventID
	return f.unresponsive, f.err
}

func (f *fakeInvitationService) FillOpenSeats(ctx context.Context, eventID string) (*domain.DrawOutcome, error) {
	f.lastAction, f.lastEventID = "fill", eventID
	return f.outcome, f.err
}

type fakeScheduler struct {
	outcome *domain.DrawOutcome
	err     error
	report  domain.SweepReport
	lastID  string
}

func (f *fakeScheduler) Sweep(ctx context.Context) domain.SweepReport { return f.report }

func (f *fakeScheduler) RunManual(ctx context.Context, eventID string) (*domain.DrawOutcome, error) {
	f.lastID = eventID
	return f.outcome, f.err
}

type fakeLottery struct {
	outcome       *domain.DrawOutcome
	err           error
	lastVacancies int
}

func (f *fakeLottery) RunLottery(ctx context.Context, eventID string) (*domain.DrawOutcome, error) {
	return f.outcome, f.err
}

func (f *fakeLottery) RunReplacement(ctx context.Context, eventID, eventName string, vacancies int) (*domain.DrawOutcome, error) {
	f.lastVacancies = vacancies
	return f.outcome, f.err
}

type fakeBroadcasts struct {
	result   domain.NotifyResult
	err      error
	lastPool domain.EntrantPool
}

func (f *fakeBroadcasts) NotifyPool(ctx context.Context, eventID string, pool domain.EntrantPool) (domain.NotifyResult, error) {
	f.lastPool = pool
	return f.result, f.err
}

type fakeNotifications struct {
	list        []*domain.Notification
	err         error
	lastLimit   int
	lastUserID  string
	lastEnabled bool
}

func (f *fakeNotifications) Notify(ctx context.Context, req domain.NotifyRequest) (domain.NotifyResult, error) {
	return domain.NotifyResult{}, nil
}

func (f *fakeNotifications) ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	f.lastUserID, f.lastLimit = userID, limit
	return f.list, f.err
}

func (f *fakeNotifications) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) (*domain.User, error) {
	f.lastUserID, f.lastEnabled = userID, enabled
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: userID, NotificationsEnabled: &enabled}, nil
}

// newRequest builds a request with path values set and, when userID is
// non-empty, an authenticated principal in its context.
func newRequest(method, target, body, userID string, pathValues map[string]string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if userID != "" {
		req = req.WithContext(middleware.SetPrincipal(req.Context(), domain.Principal{UserID: userID}))
	}
	return req
}

// decodeEnvelope decodes the APIResponse and re-marshals Data into dataOut when non-nil.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dataOut any) *helpers.APIError {
	t.Helper()
	var env helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	if dataOut != nil && env.Data != nil {
		raw, err := json.Marshal(env.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dataOut))
	}
	return env.Error
}
