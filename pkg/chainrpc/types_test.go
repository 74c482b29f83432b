package chainrpc

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethod(t *testing.T) {
	require.Equal(t, "Chain33.GetBalance", Method("", "GetBalance"))
	require.Equal(t, "token.CreateRawTokenMintTx", Method("token", "CreateRawTokenMintTx"))
}

func TestNewRequest(t *testing.T) {
	type params struct {
		Addr string `json:"addr,omitempty"`
	}
	for _, tc := range []struct {
		name     string
		params   interface{}
		expected string
	}{
		{"nil", nil, `{"id":1,"method":"Chain33.Version"}`},
		{"empty map", map[string]interface{}{}, `{"id":1,"method":"Chain33.Version"}`},
		{"empty slice", []string{}, `{"id":1,"method":"Chain33.Version"}`},
		{"nil pointer", (*params)(nil), `{"id":1,"method":"Chain33.Version"}`},
		{"empty struct", params{}, `{"id":1,"method":"Chain33.Version"}`},
		{"map", map[string]interface{}{"hash": "0x01"}, `{"id":1,"method":"Chain33.Version","params":[{"hash":"0x01"}]}`},
		{"struct", params{Addr: "1Ka"}, `{"id":1,"method":"Chain33.Version","params":[{"addr":"1Ka"}]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRequest(1, "", "Version", tc.params)
			b, err := json.Marshal(r)
			require.NoError(t, err)
			require.JSONEq(t, tc.expected, string(b))
		})
	}

	r := NewRequest(7, "evm", "CreateCallTx", map[string]interface{}{"fee": 1})
	require.Equal(t, "evm.CreateCallTx", r.Method)
	require.Equal(t, "evm", r.Namespace())
	require.Equal(t, uint64(7), r.ID)
}

func TestResponseErrorMessage(t *testing.T) {
	for raw, expected := range map[string]string{
		`{"id":1,"result":"0x01","error":null}`:                    "",
		`{"id":1,"result":"0x01"}`:                                 "",
		`{"id":1,"result":null,"error":"ErrNotFound"}`:              "ErrNotFound",
		`{"id":1,"error":{"code":-32601,"message":"no such method"}}`: "no such method",
		`{"id":1,"error":42}`:                                       "42",
	} {
		var r Response
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		require.Equal(t, expected, r.ErrorMessage(), raw)
	}

	var r Response
	require.NoError(t, json.Unmarshal([]byte(`{"result":true}`), &r))
	require.Nil(t, r.ID)
	require.True(t, r.HasResult())
}

func TestResponseHasResult(t *testing.T) {
	for raw, expected := range map[string]bool{
		`{"id":1,"result":"0x01","error":null}`: true,
		`{"id":1,"result":false}`:               true,
		`{"id":1,"result":null,"error":null}`:   false,
		`{"id":1,"error":null}`:                 false,
	} {
		var r Response
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		require.Equal(t, expected, r.HasResult(), raw)
	}
}

func TestRequestError(t *testing.T) {
	err := error(NewRequestError("Chain33.SendTransaction", &ServerError{Message: "ErrTxExpire"}))
	require.Equal(t, "Chain33.SendTransaction: ErrTxExpire", err.Error())

	var se *ServerError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "ErrTxExpire", se.Message)

	err = NewRequestError("Chain33.Version", ErrIDMismatch)
	require.ErrorIs(t, err, ErrIDMismatch)
}
