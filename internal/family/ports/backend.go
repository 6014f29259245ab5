// Package ports declares the data source the family pipeline depends on.
// Implementations: the case-management REST client (backend package) and
// recorded snapshots (snapshot package).
package ports

//go:generate mockgen -source=backend.go -destination=mocks/mocks.go -package=mocks

import "context"

// Backend is the case-management data source. Every method except Login
// requires the session returned by Login. Implementations must be safe for
// concurrent use.
type Backend interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)

	// FamilyInfo returns the primary household record for an IIN.
	FamilyInfo(ctx context.Context, sess Session, iin string) (*FamilyInfo, error)

	// PersonDetails returns the social status records of one person.
	PersonDetails(ctx context.Context, sess Session, iin string) (*PersonDetails, error)

	// CohortTotal returns how many records of the eligibility cohort match iin.
	CohortTotal(ctx context.Context, sess Session, iin string) (int, error)
}
