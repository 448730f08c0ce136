package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

func newBidSvc(bids *stubBidRepo, opps *stubOpportunityRepo, contractors *stubContractorRepo) *BidService {
	svc := NewBidService(bids, opps, contractors, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func seedOpportunity(repo *stubOpportunityRepo, id string, oppType domain.OpportunityType, status domain.OpportunityStatus) {
	repo.byID[id] = &domain.Opportunity{
		ID:                 id,
		Title:              "Listing " + id,
		Type:               oppType,
		Status:             status,
		PostedBy:           poster.ProfileID,
		SubmissionDeadline: fixedNow.AddDate(0, 1, 0),
		CreatedAt:          fixedNow,
	}
}

func amount(v float64) *float64 { return &v }

func TestBidService_Submit_ProcurementRequiresAmount(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-1", domain.TypeProcurement, domain.StatusOpen)
	svc := newBidSvc(newStubBidRepo(), opps, newStubContractorRepo())

	_, err := svc.Submit(context.Background(), contractor, ports.SubmitBidInput{
		OpportunityID: "opp-1", Summary: "we can do it",
	})
	if !errors.Is(err, domain.ErrAmountRequired) {
		t.Errorf("expected ErrAmountRequired, got %v", err)
	}

	bid, err := svc.Submit(context.Background(), contractor, ports.SubmitBidInput{
		OpportunityID: "opp-1", Amount: amount(120_000), Summary: "we can do it",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bid.Amount == nil || *bid.Amount != 120_000 {
		t.Errorf("amount must be stored, got %v", bid.Amount)
	}
	if bid.Status != domain.BidPending {
		t.Errorf("new bids start pending, got %s", bid.Status)
	}
}

func TestBidService_Submit_TeamingDropsAmount(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-t", domain.TypeTeaming, domain.StatusOpen)
	svc := newBidSvc(newStubBidRepo(), opps, newStubContractorRepo())

	bid, err := svc.Submit(context.Background(), contractor, ports.SubmitBidInput{
		OpportunityID: "opp-t", Amount: amount(999), Summary: "interested in teaming",
	})
	if err != nil {
		t.Fatalf("teaming bid without amount must be accepted: %v", err)
	}
	if bid.Amount != nil {
		t.Error("teaming bids are interest expressions, amount must be dropped")
	}
}

func TestBidService_Submit_ClosedOpportunity(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-c", domain.TypeProcurement, domain.StatusClosed)
	svc := newBidSvc(newStubBidRepo(), opps, newStubContractorRepo())

	_, err := svc.Submit(context.Background(), contractor, ports.SubmitBidInput{
		OpportunityID: "opp-c", Amount: amount(1),
	})
	if !errors.Is(err, domain.ErrOpportunityClosed) {
		t.Errorf("expected ErrOpportunityClosed, got %v", err)
	}
}

func TestBidService_Submit_PastDeadline(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-d", domain.TypeProcurement, domain.StatusOpen)
	opps.byID["opp-d"].SubmissionDeadline = fixedNow.AddDate(0, 0, -1)
	svc := newBidSvc(newStubBidRepo(), opps, newStubContractorRepo())

	_, err := svc.Submit(context.Background(), contractor, ports.SubmitBidInput{
		OpportunityID: "opp-d", Amount: amount(1),
	})
	if !errors.Is(err, domain.ErrOpportunityClosed) {
		t.Errorf("expected ErrOpportunityClosed past deadline, got %v", err)
	}
}

func TestBidService_Submit_DuplicateRejected(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-1", domain.TypeProcurement, domain.StatusOpen)
	svc := newBidSvc(newStubBidRepo(), opps, newStubContractorRepo())

	in := ports.SubmitBidInput{OpportunityID: "opp-1", Amount: amount(100)}
	if _, err := svc.Submit(context.Background(), contractor, in); err != nil {
		t.Fatalf("first bid failed: %v", err)
	}
	if _, err := svc.Submit(context.Background(), contractor, in); !errors.Is(err, domain.ErrDuplicateBid) {
		t.Errorf("expected ErrDuplicateBid, got %v", err)
	}
}

func TestBidService_Submit_ProcurementAccountForbidden(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-1", domain.TypeProcurement, domain.StatusOpen)
	svc := newBidSvc(newStubBidRepo(), opps, newStubContractorRepo())

	_, err := svc.Submit(context.Background(), poster, ports.SubmitBidInput{
		OpportunityID: "opp-1", Amount: amount(1),
	})
	if !errors.Is(err, domain.ErrContractorOnly) {
		t.Errorf("expected ErrContractorOnly, got %v", err)
	}
}

func TestBidService_Submit_SnapshotsCertifications(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-1", domain.TypeProcurement, domain.StatusOpen)
	contractors := newStubContractorRepo()
	contractors.byProfile[contractor.ProfileID] = &domain.ContractorProfile{
		ProfileID:      contractor.ProfileID,
		Certifications: []string{"DBE", "HUBZone"},
	}
	svc := newBidSvc(newStubBidRepo(), opps, contractors)

	bid, err := svc.Submit(context.Background(), contractor, ports.SubmitBidInput{
		OpportunityID: "opp-1", Amount: amount(100),
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(bid.Certifications) != 2 {
		t.Errorf("expected certification snapshot, got %v", bid.Certifications)
	}
}

func TestBidService_ListForOpportunity_PosterOnly(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-1", domain.TypeProcurement, domain.StatusOpen)
	bids := newStubBidRepo()
	bids.byID["b1"] = &domain.Bid{ID: "b1", OpportunityID: "opp-1", Status: domain.BidPending}
	svc := newBidSvc(bids, opps, newStubContractorRepo())

	result, err := svc.ListForOpportunity(context.Background(), poster, "opp-1")
	if err != nil {
		t.Fatalf("poster list failed: %v", err)
	}
	if result.Count != 1 {
		t.Errorf("expected count 1, got %d", result.Count)
	}

	if _, err := svc.ListForOpportunity(context.Background(), contractor, "opp-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-poster, got %v", err)
	}
}

func TestBidService_UpdateStatus_AwardRejectsOthers(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-1", domain.TypeProcurement, domain.StatusOpen)
	bids := newStubBidRepo()
	bids.byID["b1"] = &domain.Bid{ID: "b1", OpportunityID: "opp-1", ContractorID: "c1", Status: domain.BidPending}
	bids.byID["b2"] = &domain.Bid{ID: "b2", OpportunityID: "opp-1", ContractorID: "c2", Status: domain.BidPending}
	bids.byID["b3"] = &domain.Bid{ID: "b3", OpportunityID: "opp-1", ContractorID: "c3", Status: domain.BidRejected}
	svc := newBidSvc(bids, opps, newStubContractorRepo())

	awarded, err := svc.UpdateStatus(context.Background(), poster, "b1", "accepted")
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if awarded.Status != domain.BidAccepted {
		t.Errorf("expected accepted, got %s", awarded.Status)
	}
	if bids.byID["b2"].Status != domain.BidRejected {
		t.Error("competing pending bid must be auto-rejected on award")
	}
	if len(bids.rejected) != 1 || bids.rejected[0] != "b2" {
		t.Errorf("only the pending competitor is swept, got %v", bids.rejected)
	}
}

func TestBidService_UpdateStatus_Guards(t *testing.T) {
	opps := newStubOpportunityRepo()
	seedOpportunity(opps, "opp-1", domain.TypeProcurement, domain.StatusOpen)
	bids := newStubBidRepo()
	bids.byID["b1"] = &domain.Bid{ID: "b1", OpportunityID: "opp-1", Status: domain.BidAccepted}
	bids.byID["b2"] = &domain.Bid{ID: "b2", OpportunityID: "opp-1", Status: domain.BidPending}
	svc := newBidSvc(bids, opps, newStubContractorRepo())

	if _, err := svc.UpdateStatus(context.Background(), poster, "b1", "rejected"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("accepted is terminal, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), poster, "b2", "pending"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("pending is not a target status, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), contractor, "b2", "accepted"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("only the poster may review bids, got %v", err)
	}
}

func TestBidService_ListMine(t *testing.T) {
	bids := newStubBidRepo()
	bids.byID["b1"] = &domain.Bid{ID: "b1", ContractorID: contractor.ProfileID}
	bids.byID["b2"] = &domain.Bid{ID: "b2", ContractorID: "someone-else"}
	svc := newBidSvc(bids, newStubOpportunityRepo(), newStubContractorRepo())

	mine, err := svc.ListMine(context.Background(), contractor)
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != "b1" {
		t.Errorf("expected only own bids, got %d", len(mine))
	}

	if _, err := svc.ListMine(context.Background(), poster); !errors.Is(err, domain.ErrContractorOnly) {
		t.Errorf("expected ErrContractorOnly, got %v", err)
	}
}
