package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stockyard/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestRequireOrganization(t *testing.T) {
	t.Run("nil pointer rejected", func(t *testing.T) {
		assert.ErrorIs(t, RequireOrganization(nil), shared.ErrNoOrganization)
	})

	t.Run("nil uuid rejected", func(t *testing.T) {
		id := uuid.Nil
		assert.ErrorIs(t, RequireOrganization(&id), shared.ErrNoOrganization)
	})

	t.Run("valid org accepted", func(t *testing.T) {
		id := uuid.New()
		assert.NoError(t, RequireOrganization(&id))
	})
}
