package repository

import "errors"

// Sentinel errors surfaced by the transactional protocols. The service
// layer translates these into its own error vocabulary.
var (
	// ErrJoinCodeTaken means the generated join code collided with an
	// existing family; the caller regenerates and retries.
	ErrJoinCodeTaken = errors.New("join code already in use")

	// ErrMembershipNotFound means the account has no membership in the family
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrPersonNotFound means the referenced person row does not exist
	ErrPersonNotFound = errors.New("person not found")

	// ErrPersonNotInFamily means the person belongs to a different family
	ErrPersonNotInFamily = errors.New("person belongs to a different family")

	// ErrPersonAlreadyClaimed means another membership already references the person
	ErrPersonAlreadyClaimed = errors.New("person already claimed by another membership")

	// ErrNoSuccessor means an owner leave found no remaining member despite a
	// member count above one. This indicates broken concurrency control and
	// is never expected.
	ErrNoSuccessor = errors.New("no successor membership found")
)
