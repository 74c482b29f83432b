package actor

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/chain33-go/chain33/pkg/chainrpc"
	"github.com/chain33-go/chain33/pkg/config"
	"github.com/chain33-go/chain33/pkg/execer"
	"github.com/chain33-go/chain33/pkg/rpcclient"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	params any
}

// RPCClient is a scripted RPCActor. SignRawTx returns "signed(<tx>)",
// SendTransaction returns "hash(<data>)" and CreateNoBalanceTransaction
// returns "wrapped(<tx>)".
type RPCClient struct {
	err      error
	failOn   string
	gas      any
	calls    []call
	sendHash string
}

func (r *RPCClient) Call(method string, params any, v any) error {
	r.calls = append(r.calls, call{method, params})
	if r.err != nil && (r.failOn == "" || r.failOn == method) {
		return r.err
	}
	var res any
	switch method {
	case "CreateNoBalanceTransaction":
		res = fmt.Sprintf("wrapped(%s)", params.(noBalanceParams).TxHex)
	case "SignRawTx":
		res = fmt.Sprintf("signed(%s)", params.(signParams).TxHex)
	case "SendTransaction":
		res = fmt.Sprintf("hash(%s)", params.(sendParams).Data)
		if r.sendHash != "" {
			res = r.sendHash
		}
	case "Query":
		res = map[string]any{"gas": r.gas}
	default:
		return fmt.Errorf("unexpected method %s", method)
	}
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func (r *RPCClient) methods() []string {
	res := make([]string, len(r.calls))
	for i := range r.calls {
		res[i] = r.calls[i].method
	}
	return res
}

func (r *RPCClient) signCall(t *testing.T) signParams {
	for _, c := range r.calls {
		if c.method == "SignRawTx" {
			return c.params.(signParams)
		}
	}
	t.Fatal("no SignRawTx call")
	return signParams{}
}

func TestSignIndex(t *testing.T) {
	for _, tc := range []struct {
		name     string
		para     string
		key      string
		index    int32
		wrapped  bool
		expected []string
	}{
		{"main chain", "", "", DefaultSignIndex, false, []string{"SignRawTx"}},
		{"main chain with key", "", "0xkey", DefaultSignIndex, false, []string{"SignRawTx"}},
		{"para chain", "user.p.test.", "", DefaultSignIndex, false, []string{"SignRawTx"}},
		{"para chain with key", "user.p.test.", "0xkey", DelegatedSignIndex, true, []string{"CreateNoBalanceTransaction", "SignRawTx"}},
		{"malformed para name with key", "bad-namespace", "0xkey", DefaultSignIndex, false, []string{"SignRawTx"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rc := &RPCClient{}
			a := New(rc, execer.New(tc.para), Options{DelegateKey: tc.key})
			require.Equal(t, tc.wrapped, a.Delegates())

			signed, err := a.Sign("0a01", "0xpriv", 10)
			require.NoError(t, err)
			require.Equal(t, tc.expected, rc.methods())

			p := rc.signCall(t)
			require.Equal(t, tc.index, p.Index)
			require.Equal(t, Expire, p.Expire)
			require.Equal(t, "0xpriv", p.PrivKey)
			require.Equal(t, int64(10), p.Fee)
			if tc.wrapped {
				require.Equal(t, "signed(wrapped(0a01))", signed)
				nb := rc.calls[0].params.(noBalanceParams)
				require.Equal(t, "0xkey", nb.PrivKey)
				require.Equal(t, "0a01", nb.TxHex)
			} else {
				require.Equal(t, "signed(0a01)", signed)
			}
		})
	}
}

func TestSignIndexNotSticky(t *testing.T) {
	rc := &RPCClient{}
	a := New(rc, execer.New("user.p.test."), Options{DelegateKey: "0xkey"})
	_, err := a.Sign("01", "0xpriv", 0)
	require.NoError(t, err)

	// Another Actor over the same client must not inherit the index.
	b := New(rc, execer.New(""), Options{})
	rc.calls = nil
	_, err = b.Sign("01", "0xpriv", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultSignIndex, rc.signCall(t).Index)
}

func TestFinalSend(t *testing.T) {
	rc := &RPCClient{sendHash: "0xb6f7b9ba08b6ff8d0b1ea4b8c5e2f1d2f7c9a5c3f8e2a1b4c6d8e0f2a4b6c8d0"}
	a := New(rc, execer.New(""), Options{})

	hash, err := a.FinalSend("0a05636f696e73", "0xpriv", 100000)
	require.NoError(t, err)
	require.Equal(t, rc.sendHash, hash)
	require.Equal(t, []string{"SignRawTx", "SendTransaction"}, rc.methods())
	require.Equal(t, "signed(0a05636f696e73)", rc.calls[1].params.(sendParams).Data)
}

func TestFinalSendErrors(t *testing.T) {
	failure := errors.New("node failure")
	for _, tc := range []struct {
		method   string
		para     string
		expected []string
	}{
		{"CreateNoBalanceTransaction", "user.p.test.", []string{"CreateNoBalanceTransaction"}},
		{"SignRawTx", "", []string{"SignRawTx"}},
		{"SendTransaction", "", []string{"SignRawTx", "SendTransaction"}},
	} {
		t.Run(tc.method, func(t *testing.T) {
			rc := &RPCClient{err: failure, failOn: tc.method}
			a := New(rc, execer.New(tc.para), Options{DelegateKey: "0xkey"})
			hash, err := a.FinalSend("01", "0xpriv", 0)
			require.ErrorIs(t, err, failure)
			require.Empty(t, hash)
			require.Equal(t, tc.expected, rc.methods())
		})
	}
}

func TestSendEstimated(t *testing.T) {
	const gas = 123456
	for _, g := range []any{gas, "123456"} {
		rc := &RPCClient{gas: g}
		a := New(rc, execer.New("user.p.test."), Options{FeePayer: "1FeePayer"})

		var fees []int64
		build := func(fee int64) (string, error) {
			fees = append(fees, fee)
			return fmt.Sprintf("tx-%d", fee), nil
		}
		hash, err := a.SendEstimated(build, "0xpriv")
		require.NoError(t, err)
		require.Equal(t, []int64{ProvisionalGas, gas}, fees)
		require.Equal(t, "hash(signed(tx-123456))", hash)
		require.Equal(t, []string{"Query", "SignRawTx", "SendTransaction"}, rc.methods())

		q := rc.calls[0].params.(rpcclient.QueryParams)
		require.Equal(t, "user.p.test.evm", q.Execer)
		require.Equal(t, "EstimateGas", q.FuncName)
		require.Equal(t, map[string]string{"tx": "tx-300000", "from": "1FeePayer"}, q.Payload)

		p := rc.signCall(t)
		require.Equal(t, "tx-123456", p.TxHex)
		require.Equal(t, int64(gas), p.Fee)
	}
}

func TestSendEstimatedErrors(t *testing.T) {
	build := func(fee int64) (string, error) { return "tx", nil }

	t.Run("no fee payer", func(t *testing.T) {
		rc := &RPCClient{}
		a := New(rc, execer.New(""), Options{})
		_, err := a.SendEstimated(build, "0xpriv")
		var cfgErr *config.Error
		require.True(t, errors.As(err, &cfgErr))
		require.Empty(t, rc.calls)
	})
	t.Run("malformed para name", func(t *testing.T) {
		rc := &RPCClient{}
		a := New(rc, execer.New("bad-namespace"), Options{FeePayer: "1FeePayer"})
		_, err := a.SendEstimated(build, "0xpriv")
		require.ErrorIs(t, err, config.ErrMalformedParaName)
		require.Empty(t, rc.calls)
	})
	t.Run("estimation failure", func(t *testing.T) {
		failure := errors.New("estimation failed")
		rc := &RPCClient{err: failure, failOn: "Query"}
		a := New(rc, execer.New(""), Options{FeePayer: "1FeePayer"})
		var builds int
		_, err := a.SendEstimated(func(fee int64) (string, error) {
			builds++
			return "tx", nil
		}, "0xpriv")
		require.ErrorIs(t, err, failure)
		require.Equal(t, 1, builds)
		require.Equal(t, []string{"Query"}, rc.methods())
	})
	t.Run("build failure", func(t *testing.T) {
		failure := errors.New("create failed")
		rc := &RPCClient{gas: 10}
		a := New(rc, execer.New(""), Options{FeePayer: "1FeePayer"})
		var builds int
		_, err := a.SendEstimated(func(fee int64) (string, error) {
			builds++
			if builds == 2 {
				return "", failure
			}
			return "tx", nil
		}, "0xpriv")
		require.ErrorIs(t, err, failure)
		require.Equal(t, []string{"Query"}, rc.methods())
	})
	t.Run("bad gas", func(t *testing.T) {
		for _, g := range []any{nil, "abc", -5} {
			rc := &RPCClient{gas: g}
			a := New(rc, execer.New(""), Options{FeePayer: "1FeePayer"})
			_, err := a.SendEstimated(build, "0xpriv")
			var reqErr *chainrpc.RequestError
			require.True(t, errors.As(err, &reqErr), "gas %v: %v", g, err)
			require.Equal(t, "Chain33.Query", reqErr.Method)
			require.Equal(t, []string{"Query"}, rc.methods())
		}
	})
}
