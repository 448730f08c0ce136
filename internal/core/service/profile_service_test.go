package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fedmatch/marketplace/internal/core/domain"
	"github.com/fedmatch/marketplace/internal/core/ports"
)

func TestProfileService_Get_JoinsContractorExtension(t *testing.T) {
	profiles := newStubProfileRepo()
	contractors := newStubContractorRepo()
	seedContractor(profiles, contractors, contractor.ProfileID, "Apex Paving", "Denver, CO",
		[]string{"237310"}, []string{"DBE"}, 4.9)
	svc := NewProfileService(profiles, contractors, zerolog.Nop())

	view, err := svc.Get(context.Background(), contractor)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Contractor == nil || view.Contractor.Rating != 4.9 {
		t.Error("contractor accounts carry the extension")
	}
}

func TestProfileService_Get_ProcurementHasNoExtension(t *testing.T) {
	profiles := newStubProfileRepo()
	seedProfile(profiles, poster.ProfileID, domain.AccountProcurement)
	svc := NewProfileService(profiles, newStubContractorRepo(), zerolog.Nop())

	view, err := svc.Get(context.Background(), poster)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.Contractor != nil {
		t.Error("procurement accounts have no contractor extension")
	}
}

func TestProfileService_Update_PreservesAccountType(t *testing.T) {
	profiles := newStubProfileRepo()
	seedProfile(profiles, contractor.ProfileID, domain.AccountContractor)
	svc := NewProfileService(profiles, newStubContractorRepo(), zerolog.Nop())

	updated, err := svc.Update(context.Background(), contractor, ports.UpdateProfileInput{
		FullName:    "Jordan Rivera",
		CompanyName: "Rivera Construction",
		Location:    "Pueblo, CO",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.AccountType != domain.AccountContractor {
		t.Error("account type is immutable through profile updates")
	}
	if updated.CompanyName != "Rivera Construction" {
		t.Errorf("company not updated: %s", updated.CompanyName)
	}

	stored := profiles.byID[contractor.ProfileID]
	if stored.FullName != "Jordan Rivera" {
		t.Error("update must persist")
	}
}

func TestProfileService_UpdateContractor_DedupesAndValidates(t *testing.T) {
	profiles := newStubProfileRepo()
	contractors := newStubContractorRepo()
	seedContractor(profiles, contractors, contractor.ProfileID, "Apex Paving", "Denver, CO",
		[]string{"237310"}, []string{"DBE"}, 4.9)
	svc := NewProfileService(profiles, contractors, zerolog.Nop())

	cp, err := svc.UpdateContractor(context.Background(), contractor, ports.UpdateContractorInput{
		NAICSCodes:     []string{"237310", "237310", "541512"},
		Certifications: []string{"DBE", "DBE", "HUBZone"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(cp.NAICSCodes) != 2 || len(cp.Certifications) != 2 {
		t.Errorf("expected deduped sets, got %v / %v", cp.NAICSCodes, cp.Certifications)
	}

	_, err = svc.UpdateContractor(context.Background(), contractor, ports.UpdateContractorInput{
		Certifications: []string{"BOGUS"},
	})
	if !errors.Is(err, domain.ErrInvalidCertification) {
		t.Errorf("expected ErrInvalidCertification, got %v", err)
	}

	_, err = svc.UpdateContractor(context.Background(), contractor, ports.UpdateContractorInput{
		NAICSCodes: []string{"not-a-code"},
	})
	if !errors.Is(err, domain.ErrInvalidNAICS) {
		t.Errorf("expected ErrInvalidNAICS, got %v", err)
	}
}

func TestProfileService_UpdateContractor_ContractorOnly(t *testing.T) {
	profiles := newStubProfileRepo()
	seedProfile(profiles, poster.ProfileID, domain.AccountProcurement)
	svc := NewProfileService(profiles, newStubContractorRepo(), zerolog.Nop())

	if _, err := svc.UpdateContractor(context.Background(), poster, ports.UpdateContractorInput{}); !errors.Is(err, domain.ErrContractorOnly) {
		t.Errorf("expected ErrContractorOnly, got %v", err)
	}
}
