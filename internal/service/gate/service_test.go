package gate_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arena-comments/internal/domain"
	"arena-comments/internal/service/gate"
	"arena-comments/tests/mocks"
)

func TestCheckPost_Muted(t *testing.T) {
	mockSubs := new(mocks.SubmissionRepository)
	svc := gate.NewService(mockSubs)

	user := &domain.User{ID: uuid.New(), Role: string(domain.RoleMember), Muted: true}

	err := svc.CheckPost(context.Background(), user)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "muted")
	// Mute denies before standing is even looked at.
	mockSubs.AssertNotCalled(t, "HasFullScore")
}

func TestCheckPost_RequiresFullScoreSolve(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Role: string(domain.RoleMember)}

	t.Run("Denied Without Solve", func(t *testing.T) {
		mockSubs := new(mocks.SubmissionRepository)
		mockSubs.On("HasFullScore", ctx, user.ID).Return(false, nil).Once()
		svc := gate.NewService(mockSubs)

		err := svc.CheckPost(ctx, user)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Message, "full-score")
		mockSubs.AssertExpectations(t)
	})

	t.Run("Allowed After Solve", func(t *testing.T) {
		mockSubs := new(mocks.SubmissionRepository)
		mockSubs.On("HasFullScore", ctx, user.ID).Return(true, nil).Once()
		svc := gate.NewService(mockSubs)

		assert.NoError(t, svc.CheckPost(ctx, user))
		mockSubs.AssertExpectations(t)
	})
}

func TestCheckPost_StaffSkipProof(t *testing.T) {
	mockSubs := new(mocks.SubmissionRepository)
	svc := gate.NewService(mockSubs)

	for _, role := range []domain.UserRole{domain.RoleModerator, domain.RoleAdmin} {
		user := &domain.User{ID: uuid.New(), Role: string(role)}
		assert.NoError(t, svc.CheckPost(context.Background(), user))
	}
	mockSubs.AssertNotCalled(t, "HasFullScore")
}

func TestCheckPost_NilUserIsPreconditionViolation(t *testing.T) {
	svc := gate.NewService(new(mocks.SubmissionRepository))

	err := svc.CheckPost(context.Background(), nil)

	require.ErrorIs(t, err, gate.ErrUnauthenticated)
	_, isValidation := domain.AsValidationErrors(err)
	assert.False(t, isValidation)
}

// IsNewUser must agree with the posting gate: same inputs, same rule.
func TestIsNewUser_MatchesGateRule(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		role    domain.UserRole
		proven  bool
		newUser bool
	}{
		{"Member Unproven", domain.RoleMember, false, true},
		{"Member Proven", domain.RoleMember, true, false},
		{"Moderator Unproven", domain.RoleModerator, false, false},
		{"Admin Unproven", domain.RoleAdmin, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := &domain.User{ID: uuid.New(), Role: string(tc.role)}
			mockSubs := new(mocks.SubmissionRepository)
			mockSubs.On("HasFullScore", ctx, user.ID).Return(tc.proven, nil).Maybe()
			svc := gate.NewService(mockSubs)

			newUser, err := svc.IsNewUser(ctx, user)
			require.NoError(t, err)
			assert.Equal(t, tc.newUser, newUser)

			err = svc.CheckPost(ctx, user)
			if tc.newUser {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
