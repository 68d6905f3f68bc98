package benchmark

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/smallyu/go-ec-elgamal/internal/crypto/curves"
	"github.com/smallyu/go-ec-elgamal/internal/crypto/message"
	"github.com/smallyu/go-ec-elgamal/internal/crypto/modular"
	"github.com/smallyu/go-ec-elgamal/internal/protocol/elgamal"
	"github.com/smallyu/go-ec-elgamal/internal/protocol/exchange"
	"github.com/smallyu/go-ec-elgamal/pkg/ecelgamal"
)

type MockPartyID struct {
	id string
}

func (m *MockPartyID) ID() string      { return m.id }
func (m *MockPartyID) Moniker() string { return m.id }

var fieldSizes = []int64{11, 101, 1009}

func BenchmarkEnumeratePoints(b *testing.B) {
	for _, p := range fieldSizes {
		c := curves.NewCurve(big.NewInt(p), big.NewInt(1), big.NewInt(1))
		b.Run(fmt.Sprintf("p=%d", p), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				c.Points()
			}
		})
	}
}

func BenchmarkPointCache(b *testing.B) {
	cache, err := curves.NewPointCache(curves.DefaultPointCacheSize, nil)
	if err != nil {
		b.Fatal(err)
	}
	c := curves.NewCurve(big.NewInt(1009), big.NewInt(1), big.NewInt(1))
	cache.Points(c)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Points(c)
	}
}

func BenchmarkModularInverse(b *testing.B) {
	c, g := curves.Secp256k1()
	a, p := g.X(), c.P()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := modular.ModularInverse(a, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScalarMultSecp256k1(b *testing.B) {
	c, g := curves.Secp256k1()
	k, _ := new(big.Int).SetString("c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5", 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.ScalarMult(k, g); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeOnCurveSecp256k1(b *testing.B) {
	c, _ := curves.Secp256k1()
	m := big.NewInt(123456789)

	for i := 0; i < b.N; i++ {
		if _, err := message.EncodeOnCurve(m, c); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSchemeRun benchmarks a full local run on the fixture.
func BenchmarkSchemeRun(b *testing.B) {
	params := ecelgamal.DefaultParameters()

	for i := 0; i < b.N; i++ {
		if _, err := elgamal.Run(params); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkExchange benchmarks the two-party protocol on secp256k1.
func BenchmarkExchange(b *testing.B) {
	c, g := curves.Secp256k1()
	pa, pb := &MockPartyID{id: "A"}, &MockPartyID{id: "B"}
	m := big.NewInt(42424242)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		smA, outA, err := exchange.NewStateMachine(&exchange.Config{
			PartyID: pa, Peer: pb, Role: exchange.Sender,
			Curve: c, Generator: g, Private: big.NewInt(int64(i) + 1000), Message: m,
		})
		if err != nil {
			b.Fatal(err)
		}
		smB, outB, err := exchange.NewStateMachine(&exchange.Config{
			PartyID: pb, Peer: pa, Role: exchange.Receiver,
			Curve: c, Generator: g, Private: big.NewInt(int64(i) + 2000),
		})
		if err != nil {
			b.Fatal(err)
		}

		if smB, _, err = smB.Update(outA[0]); err != nil {
			b.Fatal(err)
		}
		if _, outA, err = smA.Update(outB[0]); err != nil {
			b.Fatal(err)
		}
		if smB, _, err = smB.Update(outA[0]); err != nil {
			b.Fatal(err)
		}
		if got := smB.Result().(*exchange.Result).Message; got.Cmp(m) != 0 {
			b.Fatalf("recovered %s, want %s", got, m)
		}
	}
}
