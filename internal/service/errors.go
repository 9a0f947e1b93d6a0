package service

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
)

var (
	ErrOrganizationNotFound   = errors.New("organization not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrNotFound               = errors.New("resource not found")
	ErrNotAMember             = errors.New("user is not a member of the organization")
	ErrDuplicateJoinCode      = errors.New("join code is already in use")
	ErrInvalidAttributes      = errors.New("invalid attributes")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrStoreUnavailable       = errors.New("persistence layer unavailable")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("insufficient role for this action")
)

// EdgeSide names the half of a membership edge a partial failure may have
// left stale.
type EdgeSide string

const (
	SideUser         EdgeSide = "user"
	SideOrganization EdgeSide = "organization"
)

// PartialFailureError reports a membership write whose outcome is unknown:
// the transaction body completed but the commit failed in a way that leaves
// the applied state unobservable from here. Reconcile on the named
// organization restores consistency either way.
type PartialFailureError struct {
	OrganizationID string
	Side           EdgeSide
	Err            error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("membership write outcome unknown for organization %s (%s side may be stale): %v", e.OrganizationID, e.Side, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// mapStoreError folds low-level connectivity failures into
// ErrStoreUnavailable so callers can treat them as transient.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
