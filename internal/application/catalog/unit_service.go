package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/application/authz"
	"github.com/stockyard/backend/internal/domain/catalog"
	"github.com/stockyard/backend/internal/domain/shared"
)

// UnitService handles unit of measure business operations
type UnitService struct {
	unitRepo catalog.UnitRepository
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo catalog.UnitRepository) *UnitService {
	return &UnitService{unitRepo: unitRepo}
}

// Create creates a new unit, optionally derived from a base unit
func (s *UnitService) Create(ctx context.Context, orgID uuid.UUID, req CreateUnitRequest) (*UnitResponse, error) {
	if err := authz.RequireOrganization(&orgID); err != nil {
		return nil, err
	}

	if existing, err := s.unitRepo.FindByNameForOrg(ctx, orgID, req.Name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	unit, err := catalog.NewUnit(orgID, req.Name, req.Symbol)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		unit.SetCreatedBy(*req.CreatedBy)
	}

	if req.BaseUnitID != nil {
		if req.ConversionFactor == nil {
			return nil, shared.NewDomainError("INVALID_CONVERSION_FACTOR", "Conversion factor is required with a base unit")
		}
		if err := s.assignBaseUnit(ctx, orgID, unit, *req.BaseUnitID, req); err != nil {
			return nil, err
		}
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	response := ToUnitResponse(unit)
	return &response, nil
}

// GetByID retrieves a unit by ID
func (s *UnitService) GetByID(ctx context.Context, orgID, unitID uuid.UUID) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForOrg(ctx, orgID, unitID)
	if err != nil {
		return nil, err
	}
	response := ToUnitResponse(unit)
	return &response, nil
}

// List retrieves units of an organization with pagination
func (s *UnitService) List(ctx context.Context, orgID uuid.UUID, filter shared.Filter) (*shared.Paginated[UnitResponse], error) {
	units, err := s.unitRepo.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.unitRepo.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UnitResponse, len(units))
	for i := range units {
		responses[i] = ToUnitResponse(&units[i])
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes a unit's name, symbol and base-unit binding
func (s *UnitService) Update(ctx context.Context, orgID, unitID uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	unit, err := s.unitRepo.FindByIDForOrg(ctx, orgID, unitID)
	if err != nil {
		return nil, err
	}

	if err := unit.Rename(req.Name, req.Symbol); err != nil {
		return nil, err
	}

	if req.BaseUnitID == nil {
		unit.ClearBaseUnit()
	} else {
		if req.ConversionFactor == nil {
			return nil, shared.NewDomainError("INVALID_CONVERSION_FACTOR", "Conversion factor is required with a base unit")
		}
		update := CreateUnitRequest{ConversionFactor: req.ConversionFactor}
		if err := s.assignBaseUnit(ctx, orgID, unit, *req.BaseUnitID, update); err != nil {
			return nil, err
		}
	}

	if err := s.unitRepo.Save(ctx, unit); err != nil {
		return nil, err
	}

	response := ToUnitResponse(unit)
	return &response, nil
}

// Delete removes a unit that is not referenced by products or documents
func (s *UnitService) Delete(ctx context.Context, orgID, unitID uuid.UUID) error {
	unit, err := s.unitRepo.FindByIDForOrg(ctx, orgID, unitID)
	if err != nil {
		return err
	}

	referenced, err := s.unitRepo.IsReferenced(ctx, unit.ID)
	if err != nil {
		return err
	}
	if referenced {
		return shared.ErrEntityInUse
	}

	return s.unitRepo.Delete(ctx, unit.ID)
}

// assignBaseUnit validates the base unit and the resulting chain before
// binding it to the unit.
func (s *UnitService) assignBaseUnit(ctx context.Context, orgID uuid.UUID, unit *catalog.Unit, baseUnitID uuid.UUID, req CreateUnitRequest) error {
	base, err := s.unitRepo.FindByIDForOrg(ctx, orgID, baseUnitID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_BASE_UNIT", "Base unit does not exist")
		}
		return err
	}

	if err := s.checkChainAcyclic(ctx, orgID, unit.ID, base); err != nil {
		return err
	}

	return unit.SetBaseUnit(base.ID, *req.ConversionFactor)
}

// checkChainAcyclic walks the base-unit chain starting at the proposed
// base. The chain must terminate without revisiting the unit being
// edited and within MaxBaseChainDepth hops.
func (s *UnitService) checkChainAcyclic(ctx context.Context, orgID, unitID uuid.UUID, base *catalog.Unit) error {
	current := base
	for depth := 0; depth < catalog.MaxBaseChainDepth; depth++ {
		if current.ID == unitID {
			return shared.ErrCyclicUnitChain
		}
		if !current.HasBaseUnit() {
			return nil
		}

		next, err := s.unitRepo.FindByIDForOrg(ctx, orgID, *current.BaseUnitID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_BASE_UNIT", "Base unit chain is broken")
			}
			return err
		}
		current = next
	}

	return shared.ErrCyclicUnitChain
}
