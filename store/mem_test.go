package store_test

import (
	"testing"
	"time"

	"shiphaus-platform/models"
	"shiphaus-platform/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrCounterWindowAnchoredToFirstUse(t *testing.T) {
	st := store.NewMemStore()
	base := time.Now()
	now := base
	st.Now = func() time.Time { return now }

	count, err := st.IncrCounter("ratelimit:cli-submit:1.2.3.4", 60*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Later hits inside the window increment without moving the window end.
	now = base.Add(50 * time.Second)
	count, err = st.IncrCounter("ratelimit:cli-submit:1.2.3.4", 60*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 70s after first use the window (anchored at first use) has lapsed,
	// even though only 20s passed since the last hit.
	now = base.Add(70 * time.Second)
	count, err = st.IncrCounter("ratelimit:cli-submit:1.2.3.4", 60*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestIncrCounterKeysAreIndependent(t *testing.T) {
	st := store.NewMemStore()

	for i := 0; i < 3; i++ {
		_, err := st.IncrCounter("ratelimit:cli-submit:a", time.Minute)
		require.NoError(t, err)
	}
	count, err := st.IncrCounter("ratelimit:cli-submit:b", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClaimSubmissionIsSingleWinner(t *testing.T) {
	st := store.NewMemStore()
	require.NoError(t, st.CreateSubmission(&models.Submission{
		ID:     "sub-1",
		Title:  "Weekend App",
		Status: models.SubmissionStatusPending,
	}))

	claimed, err := st.ClaimSubmission("sub-1")
	require.NoError(t, err)
	assert.True(t, claimed)

	// Second claim loses; the submission is already approved.
	claimed, err = st.ClaimSubmission("sub-1")
	require.NoError(t, err)
	assert.False(t, claimed)

	claimed, err = st.ClaimSubmission("sub-missing")
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestGetCliTokenFiltersExpired(t *testing.T) {
	st := store.NewMemStore()
	now := time.Now()
	st.Now = func() time.Time { return now }

	require.NoError(t, st.PutCliToken(&models.CliToken{
		Token:     "sh_cli_abc",
		Email:     "jo@example.com",
		ExpiresAt: now.Add(30 * time.Minute),
	}))

	row, err := st.GetCliToken("sh_cli_abc")
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", row.Email)

	// After the TTL the lookup fails exactly like an unknown token.
	now = now.Add(31 * time.Minute)
	_, expiredErr := st.GetCliToken("sh_cli_abc")
	_, unknownErr := st.GetCliToken("sh_cli_never-issued")
	assert.ErrorIs(t, expiredErr, store.ErrNotFound)
	assert.ErrorIs(t, unknownErr, store.ErrNotFound)
}

func TestPurgeExpired(t *testing.T) {
	st := store.NewMemStore()
	now := time.Now()

	require.NoError(t, st.PutCliToken(&models.CliToken{Token: "sh_cli_old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, st.PutCliToken(&models.CliToken{Token: "sh_cli_new", ExpiresAt: now.Add(time.Hour)}))
	_, err := st.IncrCounter("ratelimit:cli-token:x", -time.Minute)
	require.NoError(t, err)

	purged, err := st.PurgeExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)

	_, err = st.GetCliToken("sh_cli_new")
	assert.NoError(t, err)
}
