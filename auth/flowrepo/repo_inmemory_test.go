package flowrepo_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/eduflow/auth/flowrepo"
	apperrors "github.com/jrsteele09/eduflow/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	r := flowrepo.NewInMemoryRepo()

	_, err := r.Get("s1")
	require.ErrorIs(t, err, apperrors.ErrNoPendingFlow)

	require.NoError(t, r.Upsert("s1", &flowrepo.FlowState{State: "state-a", CodeVerifier: "v1", CreatedAt: time.Now()}))

	byState, err := r.GetByState("state-a")
	require.NoError(t, err)
	require.Equal(t, "s1", byState.SessionID)
	require.Equal(t, "v1", byState.CodeVerifier)

	t.Run("replacing a flow drops the old state", func(t *testing.T) {
		require.NoError(t, r.Upsert("s1", &flowrepo.FlowState{State: "state-b", CodeVerifier: "v2"}))
		_, err := r.GetByState("state-a")
		require.ErrorIs(t, err, apperrors.ErrNoPendingFlow)

		got, err := r.Get("s1")
		require.NoError(t, err)
		require.Equal(t, "v2", got.CodeVerifier)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		got, err := r.Get("s1")
		require.NoError(t, err)
		got.CodeVerifier = "mutated"

		again, err := r.Get("s1")
		require.NoError(t, err)
		require.Equal(t, "v2", again.CodeVerifier)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, r.Delete("s1"))
		require.NoError(t, r.Delete("s1"))
		_, err := r.GetByState("state-b")
		require.ErrorIs(t, err, apperrors.ErrNoPendingFlow)
	})

	t.Run("validation", func(t *testing.T) {
		require.Error(t, r.Upsert("", &flowrepo.FlowState{}))
		require.Error(t, r.Upsert("s2", nil))
		_, err := r.GetByState("")
		require.Error(t, err)
	})
}
