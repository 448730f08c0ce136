package domain

import "time"

// AccountType determines which side of the marketplace a profile belongs to.
// It is fixed at registration and never changes afterwards.
type AccountType string

const (
	AccountContractor  AccountType = "contractor"
	AccountProcurement AccountType = "procurement"
)

// Valid reports whether t is one of the two known account types.
func (t AccountType) Valid() bool {
	return t == AccountContractor || t == AccountProcurement
}

// Profile is the identity record behind every authenticated actor.
type Profile struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"-" bson:"password_hash"`
	FullName     string      `json:"full_name" bson:"full_name"`
	CompanyName  string      `json:"company_name" bson:"company_name"`
	AccountType  AccountType `json:"account_type" bson:"account_type"`
	Phone        string      `json:"phone,omitempty" bson:"phone,omitempty"`
	Location     string      `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// Certification is a socio-economic business designation used as an
// eligibility and filter signal.
type Certification string

const (
	CertDBE     Certification = "DBE"
	CertMBE     Certification = "MBE"
	CertWBE     Certification = "WBE"
	Cert8a      Certification = "8(a)"
	CertHUBZone Certification = "HUBZone"
	CertSDVOSB  Certification = "SDVOSB"
)

var knownCertifications = map[Certification]struct{}{
	CertDBE: {}, CertMBE: {}, CertWBE: {}, Cert8a: {}, CertHUBZone: {}, CertSDVOSB: {},
}

// Valid reports whether c is a recognised certification tag.
func (c Certification) Valid() bool {
	_, ok := knownCertifications[c]
	return ok
}

// ContractorProfile is the 1:1 extension of a contractor-type Profile.
type ContractorProfile struct {
	ProfileID      string    `json:"profile_id" bson:"_id"`
	NAICSCodes     []string  `json:"naics_codes" bson:"naics_codes"`
	Certifications []string  `json:"certifications" bson:"certifications"`
	ServiceAreas   []string  `json:"service_areas" bson:"service_areas"`
	Rating         float64   `json:"rating" bson:"rating"`
	Description    string    `json:"description,omitempty" bson:"description,omitempty"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

// ValidNAICSCode reports whether s is a 2 to 6 digit NAICS code or prefix.
func ValidNAICSCode(s string) bool {
	if len(s) < 2 || len(s) > 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DedupeStrings removes duplicate entries preserving first-seen order.
// NAICS codes and certifications are sets; display order follows insertion.
func DedupeStrings(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
