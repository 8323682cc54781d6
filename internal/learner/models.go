// Package learner handles registration and login for training participants.
// A learner's email is the natural key; company name is unique per tenant as
// well because certificates are issued per company representative.
package learner

import "time"

// Learner is the account record, keyed by (tenant, email).
type Learner struct {
	Tenant       string    `json:"tenant"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	CompanyName  string    `json:"company_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the subset of the account rendered on the certificate.
type Profile struct {
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
}
