package source_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"cbrates-service/internal/application"
	"cbrates-service/internal/infrastructure/source"
)

func Test_Synthetic_NeverFails(t *testing.T) {
	t.Parallel()
	s := source.NewSynthetic(92.50, 0.2, 0.3, "USD",
		application.NewLockedRand(11), fakeClock{t: testNow})

	for i := 0; i < 50; i++ {
		q, err := s.Fetch(context.Background())
		require.NoError(t, err)
		require.Greater(t, q.Rate, 0.0)
	}
}

func Test_Synthetic_JitterStaysInRange(t *testing.T) {
	t.Parallel()
	s := source.NewSynthetic(92.50, 0.2, 0.3, "USD",
		application.NewLockedRand(12), fakeClock{t: testNow})

	for i := 0; i < 100; i++ {
		q, err := s.Fetch(context.Background())
		require.NoError(t, err)
		require.LessOrEqual(t, math.Abs(q.RawRate-92.50), 0.2)
		require.LessOrEqual(t, math.Abs(q.Change), 0.3)
	}
}

func Test_Synthetic_Provenance(t *testing.T) {
	t.Parallel()
	s := source.NewSynthetic(92.50, 0.2, 0.3, "USD",
		fracRand{frac: 1}, fakeClock{t: testNow})

	q, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.False(t, q.IsRealData)
	require.Equal(t, "synthetic", q.Source)
	require.Equal(t, "synthetic", s.Name())
	require.Equal(t, "2025-06-02", q.AsOfDate)
	require.Equal(t, 92.70, q.Rate)
}
