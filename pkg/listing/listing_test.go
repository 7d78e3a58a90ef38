package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	require.Equal(t, DefaultLimit, NormalizeLimit(0))
	require.Equal(t, DefaultLimit, NormalizeLimit(-5))
	require.Equal(t, 10, NormalizeLimit(10))
	require.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
}

func TestNormalize(t *testing.T) {
	p := Params{Limit: -1, Offset: -20}.Normalize()
	require.Equal(t, DefaultLimit, p.Limit)
	require.Equal(t, 0, p.Offset)

	p = Params{Limit: 50, Offset: 200}.Normalize()
	require.Equal(t, 50, p.Limit)
	require.Equal(t, 200, p.Offset)
}
