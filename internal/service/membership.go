package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foundly-backend/internal/domain"
	"foundly-backend/internal/logger"
	"foundly-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	// maxWriteAttempts bounds the read-check-write retry loop on version
	// conflicts and transient store failures.
	maxWriteAttempts = 3
	// maxCodeAttempts bounds generated join code collision retries.
	maxCodeAttempts = 5
)

// OrganizationAttributes carries the caller-supplied fields for a new
// organization. JoinCode is optional; one is generated when empty.
type OrganizationAttributes struct {
	Name        string
	Description string
	JoinCode    string
}

// membershipService is the sole mutator of membership edges. An edge is the
// fact that a user belongs to an organization; it is recorded on both the
// user document (Organizations) and the organization document (Members), and
// every write path here either writes both sides in one transaction or
// repairs a one-sided edge it finds. No other code writes these fields.
type membershipService struct {
	store repository.MembershipStore
	now   func() time.Time
}

func NewMembershipService(store repository.MembershipStore) MembershipService {
	return &membershipService{store: store, now: time.Now}
}

func (s *membershipService) CreateWithOwner(ctx context.Context, ownerUserID string, attrs OrganizationAttributes) (*domain.Organization, error) {
	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: organization name must not be empty", ErrInvalidAttributes)
	}

	code := normalizeJoinCode(attrs.JoinCode)
	if code != "" {
		if !joinCodePattern.MatchString(code) {
			return nil, fmt.Errorf("%w: join code must be 6-10 alphanumeric characters", ErrInvalidAttributes)
		}
		existing, err := s.store.FindOrganizationByJoinCode(ctx, code)
		if err != nil {
			return nil, mapStoreError(err)
		}
		if existing != nil {
			return nil, ErrDuplicateJoinCode
		}
	} else {
		generated, err := s.generateUniqueJoinCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	}

	now := s.now()
	org := &domain.Organization{
		ID:          uuid.NewString(),
		Name:        name,
		Description: attrs.Description,
		JoinCode:    code,
		Members: []domain.Member{{
			UserID:   ownerUserID,
			Role:     domain.MemberRoleAdmin,
			JoinedAt: now,
			IsActive: true,
		}},
	}

	err := s.withRetry(ctx, "CreateWithOwner", func() error {
		user, err := s.store.FindUserByID(ctx, ownerUserID)
		if err != nil {
			return mapStoreError(err)
		}
		if user == nil {
			return ErrUserNotFound
		}

		orgs := append(cloneMemberships(user.Organizations), domain.OrgMembership{
			OrganizationID: org.ID,
			Role:           domain.MemberRoleAdmin,
			JoinedAt:       now,
		})
		current := org.ID
		return s.runEdgeTransaction(ctx, org.ID, func(tx repository.MembershipStore) error {
			if err := tx.CreateOrganization(ctx, org); err != nil {
				return mapStoreError(err)
			}
			return mapStoreError(tx.WriteUserOrganizations(ctx, ownerUserID, orgs, &current, user.Version))
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Organization created", "org_id", org.ID, "owner_id", ownerUserID, "join_code", org.JoinCode)
	return org, nil
}

func (s *membershipService) Join(ctx context.Context, userID, joinCode string) (*domain.Organization, domain.JoinOutcome, error) {
	code := normalizeJoinCode(joinCode)

	var org *domain.Organization
	var outcome domain.JoinOutcome

	err := s.withRetry(ctx, "Join", func() error {
		o, err := s.store.FindOrganizationByJoinCode(ctx, code)
		if err != nil {
			return mapStoreError(err)
		}
		if o == nil {
			return ErrOrganizationNotFound
		}
		user, err := s.store.FindUserByID(ctx, userID)
		if err != nil {
			return mapStoreError(err)
		}
		if user == nil {
			return ErrUserNotFound
		}

		onOrg := o.HasMember(userID)
		onUser := user.HasOrganization(o.ID)
		now := s.now()

		switch {
		case onOrg && onUser:
			// Edge already complete; retried requests land here.
			org, outcome = o, domain.JoinOutcomeAlreadyMember
			return nil

		case onOrg && !onUser:
			// One-sided edge left behind by an interrupted write. Restore
			// the user side with the role and join date the organization
			// recorded; the existing member row stays untouched.
			joinedAt := now
			role := domain.MemberRoleMember
			for _, m := range o.Members {
				if m.UserID == userID {
					role, joinedAt = m.Role, m.JoinedAt
					break
				}
			}
			orgs := append(cloneMemberships(user.Organizations), domain.OrgMembership{
				OrganizationID: o.ID,
				Role:           role,
				JoinedAt:       joinedAt,
			})
			current := user.CurrentOrganization
			if current == nil {
				id := o.ID
				current = &id
			}
			if err := s.runEdgeTransaction(ctx, o.ID, func(tx repository.MembershipStore) error {
				return mapStoreError(tx.WriteUserOrganizations(ctx, userID, orgs, current, user.Version))
			}); err != nil {
				return err
			}
			logger.Warn("Repaired one-sided membership edge", "org_id", o.ID, "user_id", userID, "missing_side", SideUser)
			org, outcome = o, domain.JoinOutcomeJoined
			return nil

		case !onOrg && onUser:
			// Inverse one-sided edge: restore the org side from the user's
			// entry.
			joinedAt := now
			role := domain.MemberRoleMember
			for _, m := range user.Organizations {
				if m.OrganizationID == o.ID {
					role, joinedAt = m.Role, m.JoinedAt
					break
				}
			}
			members := append(cloneMembers(o.Members), domain.Member{
				UserID:   userID,
				Role:     role,
				JoinedAt: joinedAt,
				IsActive: true,
			})
			if err := s.runEdgeTransaction(ctx, o.ID, func(tx repository.MembershipStore) error {
				return mapStoreError(tx.WriteOrganizationMembers(ctx, o.ID, members, o.Version))
			}); err != nil {
				return err
			}
			logger.Warn("Repaired one-sided membership edge", "org_id", o.ID, "user_id", userID, "missing_side", SideOrganization)
			o.Members = members
			org, outcome = o, domain.JoinOutcomeJoined
			return nil

		default:
			members := append(cloneMembers(o.Members), domain.Member{
				UserID:   userID,
				Role:     domain.MemberRoleMember,
				JoinedAt: now,
				IsActive: true,
			})
			orgs := append(cloneMemberships(user.Organizations), domain.OrgMembership{
				OrganizationID: o.ID,
				Role:           domain.MemberRoleMember,
				JoinedAt:       now,
			})
			current := user.CurrentOrganization
			if current == nil {
				id := o.ID
				current = &id
			}
			if err := s.runEdgeTransaction(ctx, o.ID, func(tx repository.MembershipStore) error {
				if err := tx.WriteOrganizationMembers(ctx, o.ID, members, o.Version); err != nil {
					return mapStoreError(err)
				}
				return mapStoreError(tx.WriteUserOrganizations(ctx, userID, orgs, current, user.Version))
			}); err != nil {
				return err
			}
			o.Members = members
			org, outcome = o, domain.JoinOutcomeJoined
			return nil
		}
	})
	if err != nil {
		return nil, "", err
	}
	return org, outcome, nil
}

func (s *membershipService) Leave(ctx context.Context, userID, organizationID string) error {
	return s.withRetry(ctx, "Leave", func() error {
		user, err := s.store.FindUserByID(ctx, userID)
		if err != nil {
			return mapStoreError(err)
		}
		if user == nil {
			return ErrUserNotFound
		}
		org, err := s.store.FindOrganizationByID(ctx, organizationID)
		if err != nil {
			return mapStoreError(err)
		}

		onUser := user.HasOrganization(organizationID)
		onOrg := org != nil && org.HasMember(userID)
		if !onUser && !onOrg {
			// Leaving an organization the user is not in is a no-op.
			return nil
		}

		var orgs []domain.OrgMembership
		for _, m := range user.Organizations {
			if m.OrganizationID != organizationID {
				orgs = append(orgs, m)
			}
		}
		current := user.CurrentOrganization
		if current != nil && *current == organizationID {
			current = nil
			if len(orgs) > 0 {
				id := orgs[0].OrganizationID
				current = &id
			}
		}

		var members []domain.Member
		if onOrg {
			for _, m := range org.Members {
				if m.UserID != userID {
					members = append(members, m)
				}
			}
		}

		return s.runEdgeTransaction(ctx, organizationID, func(tx repository.MembershipStore) error {
			if onOrg {
				if err := tx.WriteOrganizationMembers(ctx, organizationID, members, org.Version); err != nil {
					return mapStoreError(err)
				}
			}
			if onUser {
				return mapStoreError(tx.WriteUserOrganizations(ctx, userID, orgs, current, user.Version))
			}
			return nil
		})
	})
}

func (s *membershipService) SetCurrent(ctx context.Context, userID, organizationID string) error {
	return s.withRetry(ctx, "SetCurrent", func() error {
		user, err := s.store.FindUserByID(ctx, userID)
		if err != nil {
			return mapStoreError(err)
		}
		if user == nil {
			return ErrUserNotFound
		}
		if !user.HasOrganization(organizationID) {
			return ErrNotAMember
		}
		current := organizationID
		return mapStoreError(s.store.WriteUserOrganizations(ctx, userID, user.Organizations, &current, user.Version))
	})
}

// Reconcile scans the edge in both directions and restores any one-sided
// entries. It writes nothing when the organization is already consistent and
// is safe to run repeatedly.
func (s *membershipService) Reconcile(ctx context.Context, organizationID string) (*domain.RepairReport, error) {
	report := &domain.RepairReport{
		OrganizationID:        organizationID,
		CheckedAt:             s.now(),
		MissingOnUser:         []string{},
		MissingOnOrganization: []string{},
	}

	org, err := s.store.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if org == nil {
		return nil, ErrOrganizationNotFound
	}

	// Org -> users: every member row must appear on its user document.
	for _, member := range org.Members {
		repaired, err := s.repairUserSide(ctx, member.UserID, org)
		if err != nil {
			return nil, err
		}
		if repaired {
			report.MissingOnUser = append(report.MissingOnUser, member.UserID)
		}
	}

	// Users -> org: every user document referencing the organization must
	// have a member row. Collected first, written in one pass.
	users, err := s.store.ListUsersReferencing(ctx, organizationID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	var missing []domain.User
	for _, u := range users {
		if !org.HasMember(u.ID) {
			missing = append(missing, u)
		}
	}
	if len(missing) > 0 {
		repairedIDs, err := s.repairOrgSide(ctx, organizationID, missing)
		if err != nil {
			return nil, err
		}
		report.MissingOnOrganization = repairedIDs
	}

	if report.Repaired() > 0 {
		logger.Warn("Reconcile repaired one-sided membership edges",
			"org_id", organizationID,
			"missing_on_user", len(report.MissingOnUser),
			"missing_on_organization", len(report.MissingOnOrganization))
	}
	return report, nil
}

// repairUserSide ensures userID's document references org, writing the entry
// from the org-side member row when it is missing. Returns whether a write
// happened.
func (s *membershipService) repairUserSide(ctx context.Context, userID string, org *domain.Organization) (bool, error) {
	repaired := false
	err := s.withRetry(ctx, "Reconcile.repairUserSide", func() error {
		user, err := s.store.FindUserByID(ctx, userID)
		if err != nil {
			return mapStoreError(err)
		}
		if user == nil {
			// Member row points at a user that no longer exists. Reconcile
			// does not decide whether to drop it; an operator has to.
			logger.Warn("Membership edge references unknown user", "org_id", org.ID, "user_id", userID)
			return nil
		}
		if user.HasOrganization(org.ID) {
			return nil
		}

		joinedAt := s.now()
		role := domain.MemberRoleMember
		for _, m := range org.Members {
			if m.UserID == userID {
				role, joinedAt = m.Role, m.JoinedAt
				break
			}
		}
		orgs := append(cloneMemberships(user.Organizations), domain.OrgMembership{
			OrganizationID: org.ID,
			Role:           role,
			JoinedAt:       joinedAt,
		})
		current := user.CurrentOrganization
		if current == nil {
			id := org.ID
			current = &id
		}
		if err := s.runEdgeTransaction(ctx, org.ID, func(tx repository.MembershipStore) error {
			return mapStoreError(tx.WriteUserOrganizations(ctx, userID, orgs, current, user.Version))
		}); err != nil {
			return err
		}
		repaired = true
		return nil
	})
	return repaired, err
}

// repairOrgSide appends member rows for users whose documents reference the
// organization without a matching row. The organization is re-read inside the
// retry loop so the version check stays valid.
func (s *membershipService) repairOrgSide(ctx context.Context, organizationID string, users []domain.User) ([]string, error) {
	var repairedIDs []string
	err := s.withRetry(ctx, "Reconcile.repairOrgSide", func() error {
		org, err := s.store.FindOrganizationByID(ctx, organizationID)
		if err != nil {
			return mapStoreError(err)
		}
		if org == nil {
			return ErrOrganizationNotFound
		}

		repairedIDs = repairedIDs[:0]
		members := cloneMembers(org.Members)
		for _, u := range users {
			if org.HasMember(u.ID) {
				continue
			}
			joinedAt := s.now()
			role := domain.MemberRoleMember
			for _, m := range u.Organizations {
				if m.OrganizationID == organizationID {
					role, joinedAt = m.Role, m.JoinedAt
					break
				}
			}
			members = append(members, domain.Member{
				UserID:   u.ID,
				Role:     role,
				JoinedAt: joinedAt,
				IsActive: true,
			})
			repairedIDs = append(repairedIDs, u.ID)
		}
		if len(repairedIDs) == 0 {
			return nil
		}
		return s.runEdgeTransaction(ctx, organizationID, func(tx repository.MembershipStore) error {
			return mapStoreError(tx.WriteOrganizationMembers(ctx, organizationID, members, org.Version))
		})
	})
	if err != nil {
		return nil, err
	}
	return repairedIDs, nil
}

// runEdgeTransaction runs fn transactionally. When fn itself succeeded and
// the failure happened at commit, the applied state cannot be observed from
// here, so the error is surfaced as a PartialFailureError naming the
// organization for a later reconcile pass.
func (s *membershipService) runEdgeTransaction(ctx context.Context, orgID string, fn func(repository.MembershipStore) error) error {
	bodyDone := false
	err := s.store.RunTransaction(ctx, func(tx repository.MembershipStore) error {
		if err := fn(tx); err != nil {
			return err
		}
		bodyDone = true
		return nil
	})
	if err != nil && bodyDone {
		return &PartialFailureError{OrganizationID: orgID, Side: SideOrganization, Err: err}
	}
	return err
}

// withRetry re-runs the read-check-write closure on version conflicts and
// transient store failures, then surfaces the typed error once attempts are
// exhausted.
func (s *membershipService) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) && !errors.Is(err, ErrStoreUnavailable) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("Membership write conflicted, retrying", "op", op, "attempt", attempt, "error", err)
	}
	if errors.Is(err, repository.ErrVersionConflict) {
		return fmt.Errorf("%w: %s retries exhausted", ErrConcurrentModification, op)
	}
	return err
}

func (s *membershipService) generateUniqueJoinCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := generateJoinCode()
		if err != nil {
			return "", err
		}
		existing, err := s.store.FindOrganizationByJoinCode(ctx, code)
		if err != nil {
			return "", mapStoreError(err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: generated codes kept colliding", ErrDuplicateJoinCode)
}

func cloneMembers(members []domain.Member) []domain.Member {
	return append([]domain.Member(nil), members...)
}

func cloneMemberships(orgs []domain.OrgMembership) []domain.OrgMembership {
	return append([]domain.OrgMembership(nil), orgs...)
}
