package ecelgamal

import (
	"bytes"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Int is a big integer that decodes from a YAML integer or from a decimal
// or 0x-prefixed string. Values beyond 64 bits must be written as strings.
type Int struct {
	*big.Int
}

// NewInt returns an Int holding v.
func NewInt(v int64) Int {
	return Int{big.NewInt(v)}
}

func (i *Int) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case int:
		i.Int = big.NewInt(int64(v))
	case int64:
		i.Int = big.NewInt(v)
	case uint64:
		i.Int = new(big.Int).SetUint64(v)
	case string:
		n, ok := new(big.Int).SetString(v, 0)
		if !ok {
			return errors.Wrapf(ErrInvalidParameters, "cannot parse integer %q", v)
		}
		i.Int = n
	case float64:
		return errors.Wrapf(ErrInvalidParameters, "%v is not an integer, quote integers wider than 64 bits", v)
	default:
		return errors.Wrapf(ErrInvalidParameters, "unexpected value %v", raw)
	}
	return nil
}

func (i Int) MarshalYAML() (interface{}, error) {
	if i.Int == nil {
		return nil, nil
	}
	return i.Int.String(), nil
}

// CurveConfig holds the coefficients of y² = x³ + ax + b over F_p.
type CurveConfig struct {
	P Int `yaml:"p"`
	A Int `yaml:"a"`
	B Int `yaml:"b"`
}

// PointConfig holds affine coordinates.
type PointConfig struct {
	X Int `yaml:"x"`
	Y Int `yaml:"y"`
}

// Parameters holds every input of an EC-ElGamal run: the curve, the base
// point G, both private scalars and the message sent from A to B.
//
// The prime modulus and the curve coefficients are trusted; Validate only
// checks that values are present and in range.
type Parameters struct {
	Curve     CurveConfig `yaml:"curve"`
	Generator PointConfig `yaml:"generator"`
	PrivateA  Int         `yaml:"da"`
	PrivateB  Int         `yaml:"db"`
	Message   Int         `yaml:"message"`
}

// DefaultParameters returns the demonstration fixture
// p=11, a=1, b=1, G=(3,8), dA=3, dB=2, message=3.
func DefaultParameters() *Parameters {
	return &Parameters{
		Curve: CurveConfig{
			P: NewInt(11),
			A: NewInt(1),
			B: NewInt(1),
		},
		Generator: PointConfig{
			X: NewInt(3),
			Y: NewInt(8),
		},
		PrivateA: NewInt(3),
		PrivateB: NewInt(2),
		Message:  NewInt(3),
	}
}

// LoadParameters reads YAML parameters from configPath.
func LoadParameters(configPath string) (*Parameters, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "load parameters")
	}
	return ParseParameters(data)
}

// ParseParameters decodes YAML parameters and validates them.
func ParseParameters(data []byte) (*Parameters, error) {
	d := yaml.NewDecoder(bytes.NewReader(data))
	d.SetStrict(true)

	params := &Parameters{}
	if err := d.Decode(params); err != nil {
		return nil, errors.Wrap(err, "parse parameters")
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks that all fields are set, p > 1, the generator lies in
// [0, p), the private scalars are non-negative and the message is positive.
func (p *Parameters) Validate() error {
	fields := []struct {
		name  string
		value Int
	}{
		{"curve.p", p.Curve.P},
		{"curve.a", p.Curve.A},
		{"curve.b", p.Curve.B},
		{"generator.x", p.Generator.X},
		{"generator.y", p.Generator.Y},
		{"da", p.PrivateA},
		{"db", p.PrivateB},
		{"message", p.Message},
	}
	for _, f := range fields {
		if f.value.Int == nil {
			return errors.Wrapf(ErrInvalidParameters, "%s is missing", f.name)
		}
	}

	modulus := p.Curve.P.Int
	if modulus.Cmp(big.NewInt(1)) <= 0 {
		return errors.Wrapf(ErrInvalidParameters, "curve.p must be greater than 1, got %s", modulus)
	}

	for _, c := range []struct {
		name  string
		value *big.Int
	}{
		{"generator.x", p.Generator.X.Int},
		{"generator.y", p.Generator.Y.Int},
	} {
		if c.value.Sign() < 0 || c.value.Cmp(modulus) >= 0 {
			return errors.Wrapf(ErrInvalidParameters, "%s must be in [0, %s), got %s", c.name, modulus, c.value)
		}
	}

	if p.PrivateA.Sign() < 0 {
		return errors.Wrapf(ErrInvalidParameters, "da must be non-negative, got %s", p.PrivateA.Int)
	}
	if p.PrivateB.Sign() < 0 {
		return errors.Wrapf(ErrInvalidParameters, "db must be non-negative, got %s", p.PrivateB.Int)
	}

	if p.Message.Sign() <= 0 {
		return errors.Wrapf(ErrInvalidMessage, "got %s", p.Message.Int)
	}
	return nil
}
