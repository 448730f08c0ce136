package service

import (
	"context"
	"strings"
	"time"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests.
// ---------------------------------------------------------------------------

type stubProfileRepo struct {
	byID      map[string]*domain.Profile
	createErr error
	updateErr error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byID: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindByEmail(_ context.Context, email string) (*domain.Profile, error) {
	for _, p := range r.byID {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

type stubContractorRepo struct {
	byProfile map[string]*domain.ContractorProfile
	createErr error
}

func newStubContractorRepo() *stubContractorRepo {
	return &stubContractorRepo{byProfile: make(map[string]*domain.ContractorProfile)}
}

func (r *stubContractorRepo) Create(_ context.Context, cp *domain.ContractorProfile) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *cp
	r.byProfile[cp.ProfileID] = &clone
	return nil
}

func (r *stubContractorRepo) FindByProfileID(_ context.Context, profileID string) (*domain.ContractorProfile, error) {
	cp, ok := r.byProfile[profileID]
	if !ok {
		return nil, domain.ErrContractorNotFound
	}
	clone := *cp
	return &clone, nil
}

func (r *stubContractorRepo) Update(_ context.Context, cp *domain.ContractorProfile) error {
	clone := *cp
	r.byProfile[cp.ProfileID] = &clone
	return nil
}

func (r *stubContractorRepo) ListAll(_ context.Context) ([]*domain.ContractorProfile, error) {
	out := make([]*domain.ContractorProfile, 0, len(r.byProfile))
	for _, cp := range r.byProfile {
		clone := *cp
		out = append(out, &clone)
	}
	return out, nil
}

type stubOpportunityRepo struct {
	byID      map[string]*domain.Opportunity
	createErr error
	updateErr error
}

func newStubOpportunityRepo() *stubOpportunityRepo {
	return &stubOpportunityRepo{byID: make(map[string]*domain.Opportunity)}
}

func (r *stubOpportunityRepo) Create(_ context.Context, o *domain.Opportunity) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOpportunityRepo) FindByID(_ context.Context, id string) (*domain.Opportunity, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOpportunityRepo) Update(_ context.Context, o *domain.Opportunity) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[o.ID]; !ok {
		return domain.ErrOpportunityNotFound
	}
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOpportunityRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrOpportunityNotFound
	}
	delete(r.byID, id)
	return nil
}

// List applies the same scoping the real Mongo repo would use.
func (r *stubOpportunityRepo) List(_ context.Context, f ports.ListOpportunitiesFilter) ([]*domain.Opportunity, error) {
	var out []*domain.Opportunity
	for _, o := range r.byID {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.Type != "" && o.Type != f.Type {
			continue
		}
		if f.PostedBy != "" && o.PostedBy != f.PostedBy {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

type stubSavedRepo struct {
	rows      map[string]*domain.SavedOpportunity
	insertErr error
	deleteErr error
}

func newStubSavedRepo() *stubSavedRepo {
	return &stubSavedRepo{rows: make(map[string]*domain.SavedOpportunity)}
}

func savedKey(profileID, opportunityID string) string {
	return profileID + "|" + opportunityID
}

func (r *stubSavedRepo) Exists(_ context.Context, profileID, opportunityID string) (bool, error) {
	_, ok := r.rows[savedKey(profileID, opportunityID)]
	return ok, nil
}

func (r *stubSavedRepo) Insert(_ context.Context, s *domain.SavedOpportunity) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *s
	r.rows[savedKey(s.ProfileID, s.OpportunityID)] = &clone
	return nil
}

func (r *stubSavedRepo) Delete(_ context.Context, profileID, opportunityID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.rows, savedKey(profileID, opportunityID))
	return nil
}

func (r *stubSavedRepo) ListByProfile(_ context.Context, profileID string) ([]*domain.SavedOpportunity, error) {
	var out []*domain.SavedOpportunity
	for _, row := range r.rows {
		if row.ProfileID == profileID {
			clone := *row
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubBidRepo struct {
	byID      map[string]*domain.Bid
	createErr error
	rejected  []string // bid ids auto-rejected via RejectOtherPending
}

func newStubBidRepo() *stubBidRepo {
	return &stubBidRepo{byID: make(map[string]*domain.Bid)}
}

func (r *stubBidRepo) Create(_ context.Context, b *domain.Bid) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBidRepo) FindByID(_ context.Context, id string) (*domain.Bid, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBidNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBidRepo) FindByOpportunityAndContractor(_ context.Context, opportunityID, contractorID string) (*domain.Bid, error) {
	for _, b := range r.byID {
		if b.OpportunityID == opportunityID && b.ContractorID == contractorID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, domain.ErrBidNotFound
}

func (r *stubBidRepo) ListByOpportunity(_ context.Context, opportunityID string) ([]*domain.Bid, error) {
	var out []*domain.Bid
	for _, b := range r.byID {
		if b.OpportunityID == opportunityID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBidRepo) ListByContractor(_ context.Context, contractorID string) ([]*domain.Bid, error) {
	var out []*domain.Bid
	for _, b := range r.byID {
		if b.ContractorID == contractorID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBidRepo) UpdateStatus(_ context.Context, id string, status domain.BidStatus) error {
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrBidNotFound
	}
	b.Status = status
	return nil
}

func (r *stubBidRepo) RejectOtherPending(_ context.Context, opportunityID, exceptBidID string) error {
	for id, b := range r.byID {
		if b.OpportunityID == opportunityID && id != exceptBidID && b.Status == domain.BidPending {
			b.Status = domain.BidRejected
			r.rejected = append(r.rejected, id)
		}
	}
	return nil
}

func (r *stubBidRepo) CountByOpportunity(_ context.Context, opportunityID string) (int64, error) {
	var n int64
	for _, b := range r.byID {
		if b.OpportunityID == opportunityID {
			n++
		}
	}
	return n, nil
}

type stubEventRepo struct {
	events map[string]*domain.Event
	regs   map[string]*domain.EventRegistration
	incErr error
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{
		events: make(map[string]*domain.Event),
		regs:   make(map[string]*domain.EventRegistration),
	}
}

func regKey(profileID, eventID string) string { return profileID + "|" + eventID }

func (r *stubEventRepo) ListUpcoming(_ context.Context, f ports.ListEventsFilter) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.events {
		if !f.From.IsZero() && e.Date.Before(f.From.Truncate(24*time.Hour)) {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.Query != "" {
			title := strings.Contains(strings.ToLower(e.Title), strings.ToLower(f.Query))
			loc := strings.Contains(strings.ToLower(e.Location), strings.ToLower(f.Query))
			if !title && !loc {
				continue
			}
		}
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) FindRegistration(_ context.Context, profileID, eventID string) (*domain.EventRegistration, error) {
	reg, ok := r.regs[regKey(profileID, eventID)]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	clone := *reg
	return &clone, nil
}

func (r *stubEventRepo) InsertRegistration(_ context.Context, reg *domain.EventRegistration) error {
	clone := *reg
	r.regs[regKey(reg.ProfileID, reg.EventID)] = &clone
	return nil
}

func (r *stubEventRepo) DeleteRegistration(_ context.Context, profileID, eventID string) error {
	delete(r.regs, regKey(profileID, eventID))
	return nil
}

func (r *stubEventRepo) ListRegistrationsByProfile(_ context.Context, profileID string) ([]*domain.EventRegistration, error) {
	var out []*domain.EventRegistration
	for _, reg := range r.regs {
		if reg.ProfileID == profileID {
			clone := *reg
			out = append(out, &clone)
		}
	}
	return out, nil
}

// IncrementAttendees mirrors the real repo's conditional update: a positive
// delta only applies while below capacity.
func (r *stubEventRepo) IncrementAttendees(_ context.Context, eventID string, delta int) error {
	if r.incErr != nil {
		return r.incErr
	}
	e, ok := r.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	if delta > 0 && e.MaxAttendees != nil && e.AttendeesCount >= *e.MaxAttendees {
		return domain.ErrEventFull
	}
	e.AttendeesCount += delta
	return nil
}

type stubMessageRepo struct {
	msgs      []*domain.Message
	insertErr error
	markErr   error
}

func (r *stubMessageRepo) Insert(_ context.Context, m *domain.Message) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *m
	r.msgs = append(r.msgs, &clone)
	return nil
}

func (r *stubMessageRepo) ListByParticipant(_ context.Context, profileID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.msgs {
		if m.SenderID == profileID || m.ReceiverID == profileID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) ListByConversation(_ context.Context, conversationID string) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.msgs {
		if m.ConversationID == conversationID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) MarkConversationRead(_ context.Context, conversationID, receiverID string) error {
	if r.markErr != nil {
		return r.markErr
	}
	for _, m := range r.msgs {
		if m.ConversationID == conversationID && m.ReceiverID == receiverID {
			m.Read = true
		}
	}
	return nil
}

func (r *stubMessageRepo) CountUnread(_ context.Context, receiverID string) (int64, error) {
	var n int64
	for _, m := range r.msgs {
		if m.ReceiverID == receiverID && !m.Read {
			n++
		}
	}
	return n, nil
}

type stubInbox struct {
	published  []ports.InboxNotice
	receivers  []string
	publishErr error
}

func (p *stubInbox) Publish(_ context.Context, receiverID string, n ports.InboxNotice) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.receivers = append(p.receivers, receiverID)
	p.published = append(p.published, n)
	return nil
}
