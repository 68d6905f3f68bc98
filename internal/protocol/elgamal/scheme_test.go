package elgamal

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

func TestRunFixture(t *testing.T) {
	tr, err := Run(ecelgamal.DefaultParameters())
	require.NoError(t, err)

	assert.Equal(t, "(0,1),(0,10),(1,5),(1,6),(2,0),(3,3),(3,8),(4,5),(4,6),(6,5),(6,6),(8,2),(8,9)", tr.Points.String())
	assert.Equal(t, "(0,1)", tr.PublicA.String())
	assert.Equal(t, "(6,6)", tr.PublicB.String())
	assert.Equal(t, "(3,3)", tr.SecretA.String())
	assert.Equal(t, "(3,3)", tr.SecretB.String())

	assert.Equal(t, int64(4), tr.Encoded.M.Int64())
	assert.Equal(t, int64(2), tr.Encoded.H.Int64())
	assert.Equal(t, "(6,5)", tr.Encoded.Point.String())

	assert.Equal(t, "(0,10)", tr.Ciphertext.C1.String())
	assert.Equal(t, "(0,1)", tr.Ciphertext.C2.String())
	assert.Equal(t, "(6,5)", tr.Decrypted.String())
	assert.Equal(t, int64(3), tr.Message.Int64())
}

func TestNewSchemeRejectsGenerator(t *testing.T) {
	c, _ := fixture()

	_, err := NewScheme(c, curves.NewPointInt64(1, 1))
	assert.True(t, errors.Is(err, ecelgamal.ErrInvalidPoint))

	_, err = NewScheme(c, curves.Infinity())
	assert.True(t, errors.Is(err, ecelgamal.ErrInvalidPoint))

	params := ecelgamal.DefaultParameters()
	params.Generator.Y = ecelgamal.NewInt(7)
	_, err = Run(params)
	assert.True(t, errors.Is(err, ecelgamal.ErrInvalidPoint))

	params = ecelgamal.DefaultParameters()
	params.Message = ecelgamal.NewInt(0)
	_, err = Run(params)
	assert.True(t, errors.Is(err, ecelgamal.ErrInvalidMessage))
}

func TestRunKeepsPartialTranscript(t *testing.T) {
	params := ecelgamal.DefaultParameters()
	params.Message = ecelgamal.NewInt(1)

	tr, err := Run(params)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ecelgamal.ErrEncodingNotFound))

	require.NotNil(t, tr)
	assert.Len(t, tr.Points, 13)
	assert.Equal(t, "(0,1)", tr.PublicA.String())
	assert.Equal(t, "(6,6)", tr.PublicB.String())
	assert.Equal(t, "(3,3)", tr.SecretA.String())
	assert.Nil(t, tr.Encoded)
	assert.Nil(t, tr.Ciphertext)
	assert.Nil(t, tr.Message)
}

func TestRunRoundTrip(t *testing.T) {
	reg := prometheus.NewRegistry()
	cache, err := curves.NewPointCache(curves.DefaultPointCacheSize, reg)
	require.NoError(t, err)

	c := curves.NewCurve(big.NewInt(1009), big.NewInt(1), big.NewInt(1))
	s, err := NewScheme(c, curves.NewPointInt64(0, 1), WithPointCache(cache))
	require.NoError(t, err)

	runs := 0
	for m := int64(3); m <= 30; m++ {
		if m&(m-1) == 0 {
			continue
		}
		tr, err := s.Run(big.NewInt(17), big.NewInt(29), big.NewInt(m))
		require.NoError(t, err, "m=%d", m)
		assert.Equal(t, m, tr.Message.Int64())
		assert.True(t, tr.Encoded.Point.Equal(tr.Decrypted))
		assert.True(t, tr.SecretA.Equal(tr.SecretB))
		runs++
	}

	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 1.0, cacheRequests(t, reg, "miss"))
	assert.Equal(t, float64(runs-1), cacheRequests(t, reg, "hit"))
}

func TestRunLogsWithoutPrivateScalars(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := Run(ecelgamal.DefaultParameters(), WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("exchange complete").Len())
	assert.Equal(t, 1, logs.FilterMessage("encoded message").Len())
	for _, entry := range logs.All() {
		for _, f := range entry.Context {
			assert.NotContains(t, []string{"da", "db", "dA", "dB", "private"}, f.Key)
		}
	}
}

func cacheRequests(t *testing.T, reg *prometheus.Registry, result string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "ecelgamal_points_cache_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "result" && lp.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
