package token

import (
	"context"
	"testing"

	"github.com/chain33-go/chain33/internal/fakechain"
	"github.com/chain33-go/chain33/pkg/execer"
	"github.com/chain33-go/chain33/pkg/rpcclient"
	"github.com/chain33-go/chain33/pkg/rpcclient/actor"
	"github.com/stretchr/testify/require"
)

const sentHash = "0x2f7e1a0c9b8d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2e1f"

func newContract(t *testing.T, fc *fakechain.FakeChain, paraName string) *Contract {
	c, err := rpcclient.New(context.TODO(), fc.URL, rpcclient.Options{})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return New(c, actor.New(c, execer.New(paraName), actor.Options{}))
}

func TestStateChanging(t *testing.T) {
	fc := fakechain.New(t)
	fc.Committer(sentHash)
	for _, m := range []string{"PreCreate", "Finish", "Revoke", "Mint", "Burn"} {
		fc.Result("token.CreateRawToken"+m+"Tx", "0a"+m)
	}
	c := newContract(t, fc, "user.p.test.")

	for _, tc := range []struct {
		method string
		params string
		do     func() (string, error)
	}{
		{"PreCreate", `{"name":"Coin","symbol":"CCNY","introduction":"intro","total":100,"price":0,"category":0,"owner":"1Owner"}`,
			func() (string, error) {
				return c.PreCreate(PreCreateParams{Name: "Coin", Symbol: "ccny", Introduction: "intro", Total: 100, Owner: "1Owner"}, "0xpriv")
			}},
		{"Finish", `{"symbol":"CCNY","owner":"1Owner"}`, func() (string, error) { return c.Finish("ccny", "1Owner", "0xpriv") }},
		{"Revoke", `{"symbol":"CCNY","owner":"1Owner"}`, func() (string, error) { return c.Revoke("ccny", "1Owner", "0xpriv") }},
		{"Mint", `{"symbol":"CCNY","amount":5}`, func() (string, error) { return c.Mint("ccny", 5, "0xpriv") }},
		{"Burn", `{"symbol":"CCNY","amount":5}`, func() (string, error) { return c.Burn("ccny", 5, "0xpriv") }},
	} {
		t.Run(tc.method, func(t *testing.T) {
			hash, err := tc.do()
			require.NoError(t, err)
			require.Equal(t, sentHash, hash)

			calls := fc.CallsOf("token.CreateRawToken" + tc.method + "Tx")
			require.Len(t, calls, 1)
			require.JSONEq(t, tc.params, string(calls[0].Params))

			signs := fc.CallsOf("Chain33.SignRawTx")
			var sp struct {
				TxHex string `json:"txHex"`
				Fee   int64  `json:"fee"`
			}
			require.NoError(t, signs[len(signs)-1].Decode(&sp))
			require.Equal(t, "0a"+tc.method, sp.TxHex)
			require.Zero(t, sp.Fee)
		})
	}
}

func TestQueries(t *testing.T) {
	fc := fakechain.New(t)
	fc.Handle("Chain33.Query", func(c fakechain.Call) (any, error) {
		var q rpcclient.QueryParams
		if err := c.Decode(&q); err != nil {
			return nil, err
		}
		switch q.FuncName {
		case "GetTokens":
			return map[string]any{"tokens": []Token{{Symbol: "CCNY", Status: StatusCreated}}}, nil
		case "GetTokenInfo":
			return Token{Symbol: "CCNY", Total: 100}, nil
		case "GetTxByToken":
			return map[string]any{"txInfos": []map[string]any{{"hash": "0x01"}}}, nil
		case "GetTokenHistory":
			return map[string]any{"logs": []map[string]any{{"ty": 211}}}, nil
		}
		return nil, nil
	})
	c := newContract(t, fc, "user.p.test.")

	tokens := c.List(StatusCreated, false)
	require.Equal(t, []Token{{Symbol: "CCNY", Status: StatusCreated}}, tokens)

	info, err := c.Info("ccny")
	require.NoError(t, err)
	require.Equal(t, int64(100), info.Total)

	txs, err := c.Tx(NewTxParams("ccny"))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	logs, err := c.History("ccny")
	require.NoError(t, err)
	require.Len(t, logs, 1)

	calls := fc.Calls()
	require.Len(t, calls, 4)
	require.JSONEq(t, `{"execer":"user.p.test.token","funcName":"GetTokens","payload":{"status":1,"queryAll":true,"symbolOnly":false}}`, string(calls[0].Params))
	require.JSONEq(t, `{"execer":"user.p.test.token","funcName":"GetTokenInfo","payload":{"data":"CCNY"}}`, string(calls[1].Params))
	require.JSONEq(t, `{"execer":"user.p.test.token","funcName":"GetTxByToken","payload":{"symbol":"CCNY","addr":"","count":100,"flag":0,"height":-1,"index":0,"direction":0}}`, string(calls[2].Params))
}

func TestListFailure(t *testing.T) {
	fc := fakechain.New(t)
	fc.Fail("Chain33.Query", "ErrTokenNotExist")
	c := newContract(t, fc, "")

	require.Equal(t, []Token{}, c.List(StatusPreCreated, true))
	_, err := c.Info("ccny")
	require.EqualError(t, err, "Chain33.Query: ErrTokenNotExist")
}
