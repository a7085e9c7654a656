// Package authz holds the access-control predicates shared by all
// application services. Record ownership is enforced at the repository
// layer through org-scoped finders, which report foreign IDs as
// not-found so a caller probing another organization's IDs cannot
// distinguish them from absent records.
package authz

import (
	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
)

// RequireOrganization checks creation eligibility: only callers
// attached to an organization may create organization-owned records.
func RequireOrganization(orgID *uuid.UUID) error {
	if orgID == nil || *orgID == uuid.Nil {
		return shared.ErrNoOrganization
	}
	return nil
}
