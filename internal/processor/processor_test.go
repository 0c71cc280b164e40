package processor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/internal/store"
	"github.com/nodari-ai/sales-engine/pkg/retell"
)

// memStore is an in-memory Store for orchestration tests.
type memStore struct {
	mu     sync.Mutex
	seq    int
	recs   map[string]*model.InquiryRecord
	byCall map[string]string
}

func newMemStore() *memStore {
	return &memStore{recs: map[string]*model.InquiryRecord{}, byCall: map[string]string{}}
}

func (m *memStore) CreateInquiry(_ context.Context, lead model.Lead) (*model.InquiryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	rec := &model.InquiryRecord{ID: "inq-" + string(rune('0'+m.seq)), Lead: lead, Status: model.StatusNew}
	m.recs[rec.ID] = rec
	out := *rec
	return &out, nil
}

func (m *memStore) GetInquiry(_ context.Context, id string) (*model.InquiryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return nil, errors.New("inquiry not found: " + id)
	}
	out := *rec
	return &out, nil
}

func (m *memStore) GetInquiryByCallID(_ context.Context, callID string) (*model.InquiryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byCall[callID]
	if !ok {
		return nil, nil
	}
	out := *m.recs[id]
	return &out, nil
}

func (m *memStore) ListInquiries(_ context.Context, _ store.InquiryFilter) ([]model.InquiryRecord, error) {
	return nil, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id string, status model.LeadStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	if !ok {
		return errors.New("inquiry not found: " + id)
	}
	rec.Status = status
	return nil
}

func (m *memStore) SaveResearch(_ context.Context, id string, research *model.ResearchResult, scoring *model.LeadScoring, status model.LeadStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.recs[id]
	rec.Research = research
	rec.ScoringDetails = scoring
	if scoring != nil {
		rec.LeadScore = scoring.TotalScore
		rec.LeadCategory = scoring.Category
	}
	rec.Status = status
	return nil
}

func (m *memStore) MarkCallInitiated(_ context.Context, id, callID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.recs[id]
	rec.CallID = callID
	rec.Status = model.StatusCallInitiated
	m.byCall[callID] = id
	return nil
}

func (m *memStore) SaveCallOutcome(_ context.Context, id, transcript, recordingURL string, durationSecs int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.recs[id]
	rec.Transcript = transcript
	rec.RecordingURL = recordingURL
	rec.CallDurationSecs = durationSecs
	rec.Status = model.StatusCallCompleted
	return nil
}

func (m *memStore) SaveAnalysis(_ context.Context, id string, analysis *model.CallAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[id].Analysis = analysis
	return nil
}

func (m *memStore) SaveFollowUp(_ context.Context, id string, outcome store.FollowUpOutcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.recs[id]
	rec.Status = outcome.Status
	rec.ProposalRef = outcome.ProposalRef
	rec.MeetingBooked = outcome.MeetingBooked
	rec.MeetingLink = outcome.MeetingLink
	rec.FollowUpSent = outcome.FollowUpSent
	return nil
}

func (m *memStore) Migrate(context.Context) error { return nil }
func (m *memStore) Close() error                  { return nil }

func (m *memStore) get(t *testing.T, id string) model.InquiryRecord {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[id]
	require.True(t, ok, "record %s", id)
	return *rec
}

// stubPipe returns canned pipeline results.
type stubPipe struct {
	pre  *model.PreCallResult
	post *model.PostCallResult
}

func (s *stubPipe) RunPreCall(context.Context, model.Lead) *model.PreCallResult { return s.pre }

func (s *stubPipe) RunPostCall(context.Context, *model.InquiryRecord, string, string) *model.PostCallResult {
	return s.post
}

// stubCaller records the single outbound call request.
type stubCaller struct {
	mu  sync.Mutex
	err error
	req *retell.CreateCallRequest
}

func (c *stubCaller) CreatePhoneCall(_ context.Context, req retell.CreateCallRequest) (*retell.CallResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	c.req = &req
	return &retell.CallResponse{CallID: "call-1", CallStatus: "registered"}, nil
}

func (c *stubCaller) request(t *testing.T) retell.CreateCallRequest {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotNil(t, c.req, "no call placed")
	return *c.req
}

func goodPreCall() *model.PreCallResult {
	return &model.PreCallResult{
		Success:  true,
		Research: &model.ResearchResult{CompanySummary: "Acme builds robots.", Industry: "Robotics"},
		Scoring:  &model.LeadScoring{TotalScore: 75, Category: model.CategoryHot},
		Personalization: &model.PersonalizationContext{
			Opener: "Hi Acme!", ValueProposition: "We help.", CallStrategy: "go",
		},
	}
}

func formPayload(phone string) map[string]any {
	raw := map[string]any{
		"Name":    "Acme",
		"Email":   "ops@acme.example",
		"Website": "https://acme.example",
	}
	if phone != "" {
		raw["Phone Number"] = phone
	}
	return raw
}

func TestAcceptFormSubmissionRejectsMissingEmail(t *testing.T) {
	st := newMemStore()
	p := New(st, &stubPipe{pre: goodPreCall()})

	_, err := p.AcceptFormSubmission(context.Background(), map[string]any{"Name": "Acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no email")
	assert.Empty(t, st.recs)
}

func TestFormFlowPlacesCall(t *testing.T) {
	st := newMemStore()
	caller := &stubCaller{}
	p := New(st, &stubPipe{pre: goodPreCall()},
		WithCaller(caller, "agent-1", "+15550000000"))

	rec, err := p.AcceptFormSubmission(context.Background(), formPayload("3125550147"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusNew, rec.Status)
	p.Wait()

	got := st.get(t, rec.ID)
	assert.Equal(t, model.StatusCallInitiated, got.Status)
	assert.Equal(t, "call-1", got.CallID)
	require.NotNil(t, got.Research)
	assert.Equal(t, 75, got.LeadScore)
	assert.Equal(t, model.CategoryHot, got.LeadCategory)

	req := caller.request(t)
	assert.Equal(t, "agent-1", req.AgentID)
	assert.Equal(t, "+13125550147", req.ToNumber)
	assert.Equal(t, rec.ID, req.Metadata["inquiry_id"])
	// Research and personalization were present, so the full variable set went out.
	assert.Equal(t, "Acme builds robots.", req.DynamicVariables["research_summary"])
	assert.Equal(t, "Hi Acme!", req.DynamicVariables["opening_hook"])
}

func TestFormFlowNoPhoneStopsAfterResearch(t *testing.T) {
	st := newMemStore()
	caller := &stubCaller{}
	p := New(st, &stubPipe{pre: goodPreCall()},
		WithCaller(caller, "agent-1", "+15550000000"))

	rec, err := p.AcceptFormSubmission(context.Background(), formPayload(""))
	require.NoError(t, err)
	p.Wait()

	got := st.get(t, rec.ID)
	assert.Equal(t, model.StatusResearchComplete, got.Status)
	assert.Nil(t, caller.req)
}

func TestFormFlowCallFailure(t *testing.T) {
	st := newMemStore()
	caller := &stubCaller{err: errors.New("retell: HTTP 500")}
	p := New(st, &stubPipe{pre: goodPreCall()},
		WithCaller(caller, "agent-1", "+15550000000"))

	rec, err := p.AcceptFormSubmission(context.Background(), formPayload("3125550147"))
	require.NoError(t, err)
	p.Wait()

	assert.Equal(t, model.StatusCallFailed, st.get(t, rec.ID).Status)
}

func TestFormFlowMinimalVariablesWithoutPersonalization(t *testing.T) {
	st := newMemStore()
	caller := &stubCaller{}
	pre := goodPreCall()
	pre.Personalization = nil
	p := New(st, &stubPipe{pre: pre},
		WithCaller(caller, "agent-1", "+15550000000"))

	_, err := p.AcceptFormSubmission(context.Background(), formPayload("3125550147"))
	require.NoError(t, err)
	p.Wait()

	req := caller.request(t)
	_, ok := req.DynamicVariables["research_summary"]
	assert.False(t, ok, "minimal set carries no research summary")
	assert.Equal(t, "Acme", req.DynamicVariables["company_name"])
}

func analyzedEvent(callID string) model.CallEvent {
	e := model.CallEvent{Event: model.EventCallAnalyzed}
	e.Call.CallID = callID
	e.Call.Transcript = "agent: hi\nprospect: hello"
	e.Call.RecordingURL = "https://rec.example/1.mp3"
	e.Call.CallLengthSec = 142
	e.Call.Analysis.CallSummary = "Prospect is interested."
	return e
}

// seedCalled creates an inquiry that already has a live call.
func seedCalled(t *testing.T, st *memStore) *model.InquiryRecord {
	t.Helper()
	rec, err := st.CreateInquiry(context.Background(), model.Lead{CompanyName: "Acme", Email: "ops@acme.example"})
	require.NoError(t, err)
	require.NoError(t, st.MarkCallInitiated(context.Background(), rec.ID, "call-1"))
	return rec
}

func TestHandleCallEventIgnoresOtherEvents(t *testing.T) {
	st := newMemStore()
	rec := seedCalled(t, st)
	p := New(st, &stubPipe{})

	e := analyzedEvent("call-1")
	e.Event = "call_started"
	require.NoError(t, p.HandleCallEvent(context.Background(), e))
	p.Wait()

	assert.Equal(t, model.StatusCallInitiated, st.get(t, rec.ID).Status)
}

func TestHandleCallEventUnknownCallDropped(t *testing.T) {
	st := newMemStore()
	p := New(st, &stubPipe{})

	require.NoError(t, p.HandleCallEvent(context.Background(), analyzedEvent("call-unknown")))
	p.Wait()
	assert.Empty(t, st.recs)
}

func TestHandleCallEventHotTrack(t *testing.T) {
	st := newMemStore()
	rec := seedCalled(t, st)
	post := &model.PostCallResult{
		Success:       true,
		Analysis:      &model.CallAnalysis{Summary: "Great call.", InterestLevel: 85},
		Track:         model.TrackHot,
		ProposalRef:   "proposal_acme.html",
		EmailSent:     true,
		MeetingBooked: true,
		MeetingLink:   "https://meet.example/x",
	}
	p := New(st, &stubPipe{post: post})

	require.NoError(t, p.HandleCallEvent(context.Background(), analyzedEvent("call-1")))
	p.Wait()

	got := st.get(t, rec.ID)
	assert.Equal(t, model.StatusHotProcessed, got.Status)
	assert.Equal(t, "agent: hi\nprospect: hello", got.Transcript)
	assert.Equal(t, 142, got.CallDurationSecs)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, 85, got.Analysis.InterestLevel)
	assert.Equal(t, "proposal_acme.html", got.ProposalRef)
	assert.True(t, got.MeetingBooked)
	assert.True(t, got.FollowUpSent)
}

func TestHandleCallEventNurtureTrack(t *testing.T) {
	st := newMemStore()
	rec := seedCalled(t, st)
	post := &model.PostCallResult{
		Success:   true,
		Analysis:  &model.CallAnalysis{Summary: "Not now.", InterestLevel: 20},
		Track:     model.TrackNurture,
		EmailSent: true,
	}
	p := New(st, &stubPipe{post: post})

	require.NoError(t, p.HandleCallEvent(context.Background(), analyzedEvent("call-1")))
	p.Wait()

	got := st.get(t, rec.ID)
	assert.Equal(t, model.StatusNurtureProcessed, got.Status)
	assert.True(t, got.FollowUpSent)
	assert.False(t, got.MeetingBooked)
}

func TestHandleCallEventAnalysisPersistedOnFailure(t *testing.T) {
	st := newMemStore()
	rec := seedCalled(t, st)
	post := &model.PostCallResult{
		Success:  false,
		Analysis: &model.CallAnalysis{Summary: "partial", InterestLevel: 50},
	}
	p := New(st, &stubPipe{post: post})

	require.NoError(t, p.HandleCallEvent(context.Background(), analyzedEvent("call-1")))
	p.Wait()

	got := st.get(t, rec.ID)
	assert.Equal(t, model.StatusCallCompleted, got.Status)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, "partial", got.Analysis.Summary)
}
