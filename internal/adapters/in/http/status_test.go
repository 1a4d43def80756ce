package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"carveyor/internal/core/domain/model/actor"
	"carveyor/internal/core/domain/model/kernel"
	"carveyor/internal/core/domain/model/ledger"
	"carveyor/internal/core/domain/model/order"
	"carveyor/internal/core/domain/model/settlement"
	"carveyor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "missing aggregate is 404",
			err:      errs.NewObjectNotFoundError("order", kernel.NewUUID().String()),
			expected: http.StatusNotFound,
		},
		{
			name:     "wrapped not found is still 404",
			err:      fmt.Errorf("load order: %w", errs.NewObjectNotFoundError("order", "x")),
			expected: http.StatusNotFound,
		},
		{
			name:     "caller mismatch is 403",
			err:      order.ErrActorNotAllowed,
			expected: http.StatusForbidden,
		},
		{
			name:     "invalid transition is 409",
			err:      fmt.Errorf("assign: %w", order.ErrInvalidOrderStatus),
			expected: http.StatusConflict,
		},
		{
			name:     "cancelled order is 409",
			err:      order.ErrAlreadyCancelled,
			expected: http.StatusConflict,
		},
		{
			name:     "insufficient balance is 409",
			err:      ledger.ErrInsufficientBalance,
			expected: http.StatusConflict,
		},
		{
			name:     "duplicate refund is 409",
			err:      ledger.ErrAlreadyRefunded,
			expected: http.StatusConflict,
		},
		{
			name:     "duplicate settlement is 409",
			err:      settlement.ErrDuplicateSettlement,
			expected: http.StatusConflict,
		},
		{
			name:     "expired insurance is 409",
			err:      actor.ErrInsuranceExpired,
			expected: http.StatusConflict,
		},
		{
			name:     "bad value is 400",
			err:      errs.NewValueIsRequiredError("actorID"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "unrecognized failure is 500",
			err:      errors.New("connection reset"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}
