package fixedn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFixed8FromInt64(t *testing.T) {
	values := []int64{9000, 100000000, 5, 10945, -42}

	for _, val := range values {
		assert.Equal(t, Fixed8(val*decimals), Fixed8FromInt64(val))
		assert.Equal(t, val, Fixed8FromInt64(val).IntegralValue())
		assert.Equal(t, int32(0), Fixed8FromInt64(val).FractionalValue())
	}
}

func TestFixed8FromString(t *testing.T) {
	ivalues := []string{"9000", "100000000", "5", "10945", "20.45", "0.00000001", "-42", "-0.5"}
	for _, val := range ivalues {
		n, err := Fixed8FromString(val)
		assert.NoError(t, err)
		assert.Equal(t, val, n.String())
	}

	n, err := Fixed8FromString("123456789.12345678")
	assert.NoError(t, err)
	assert.Equal(t, Fixed8(12345678912345678), n)

	n, err = Fixed8FromString("901.2341")
	assert.NoError(t, err)
	assert.Equal(t, Fixed8(90123410000), n)

	n, err = Fixed8FromString("0.000001")
	assert.NoError(t, err)
	assert.Equal(t, Fixed8(100), n)

	for _, bad := range []string{"", "90n1", "1.", ".5", "1.123456789", "--1", "1e5", "92233720369", "92233720368.99999999", "1.-5"} {
		_, err = Fixed8FromString(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestFixed8Parts(t *testing.T) {
	f := Fixed8(-250000001)
	assert.Equal(t, int64(-2), f.IntegralValue())
	assert.Equal(t, int32(-50000001), f.FractionalValue())
	assert.Equal(t, "-2.50000001", f.String())
}

func TestFixed8JSON(t *testing.T) {
	var v struct {
		Balance Fixed8 `json:"balance"`
		Frozen  Fixed8 `json:"frozen"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"balance":150000000,"frozen":"42"}`), &v))
	assert.Equal(t, Fixed8(150000000), v.Balance)
	assert.Equal(t, Fixed8(42), v.Frozen)
	assert.Equal(t, "1.5", v.Balance.String())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":150000000,"frozen":42}`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`{"balance":"1.5"}`), &v))
}

func TestFixed8YAML(t *testing.T) {
	var v struct {
		Fee Fixed8 `yaml:"Fee"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("Fee: 0.001\n"), &v))
	assert.Equal(t, Fixed8(100000), v.Fee)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "Fee: \"0.001\"\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("Fee: abc\n"), &v))
}
