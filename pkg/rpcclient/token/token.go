/*
Package token manages tokens issued by the token executor.

Issuing a token takes two steps: the owner pre-creates it (PreCreate) and an
address allowed by the chain manager finishes it (Finish). Pre-created tokens
can be revoked before that.
*/
package token

import (
	"strings"

	"github.com/chain33-go/chain33/pkg/execer"
)

// Invoker is used by Reader and Contract to perform RPC calls.
type Invoker interface {
	CallNS(namespace, method string, params any, v any) error
	Query(execer, funcName string, payload any, v any) error
}

// Actor is used by Contract to commit transactions.
type Actor interface {
	FinalSend(txHex string, privKey string, fee int64) (string, error)
	Resolver() *execer.Resolver
}

// Token statuses used by List.
const (
	StatusPreCreated int32 = 0
	StatusCreated    int32 = 1
)

// Token is a token description.
type Token struct {
	Name                string `json:"name"`
	Symbol              string `json:"symbol"`
	Introduction        string `json:"introduction"`
	Total               int64  `json:"total"`
	Price               int64  `json:"price"`
	Owner               string `json:"owner"`
	Creator             string `json:"creator"`
	Status              int32  `json:"status"`
	CreatedHeight       int64  `json:"createdHeight"`
	CreatedTime         int64  `json:"createdTime"`
	PrepareCreateHeight int64  `json:"prepareCreateHeight"`
	PrepareCreateTime   int64  `json:"prepareCreateTime"`
	Precision           int32  `json:"precision"`
	Category            int32  `json:"category"`
}

// PreCreateParams are parameters of a new token.
type PreCreateParams struct {
	Name         string `json:"name"`
	Symbol       string `json:"symbol"`
	Introduction string `json:"introduction"`
	Total        int64  `json:"total"`
	Price        int64  `json:"price"`
	Category     int32  `json:"category"`
	Owner        string `json:"owner"`
}

// TxParams filter token transactions, see NewTxParams for defaults.
type TxParams struct {
	Symbol    string `json:"symbol"`
	Addr      string `json:"addr"`
	Count     int32  `json:"count"`
	Flag      int32  `json:"flag"`
	Height    int64  `json:"height"`
	Index     int64  `json:"index"`
	Direction int32  `json:"direction"`
}

// NewTxParams returns parameters for the last 100 transactions of symbol.
func NewTxParams(symbol string) TxParams {
	return TxParams{Symbol: symbol, Count: 100, Height: -1}
}

// Reader provides token queries.
type Reader struct {
	invoker  Invoker
	resolver *execer.Resolver
}

// Contract provides token state-changing methods along with the Reader
// ones.
type Contract struct {
	Reader

	actor Actor
}

// NewReader creates a Reader.
func NewReader(inv Invoker, r *execer.Resolver) *Reader {
	return &Reader{invoker: inv, resolver: r}
}

// New creates a Contract.
func New(inv Invoker, act Actor) *Contract {
	return &Contract{Reader: *NewReader(inv, act.Resolver()), actor: act}
}

func (r *Reader) query(funcName string, payload any, v any) error {
	token, err := r.resolver.Resolve(execer.Token)
	if err != nil {
		return err
	}
	return r.invoker.Query(token, funcName, payload, v)
}

// List returns tokens with the given status. Nodes fail this query if there
// are no tokens at all, so an error results in an empty list.
func (r *Reader) List(status int32, symbolOnly bool) []Token {
	var res struct {
		Tokens []Token `json:"tokens"`
	}
	err := r.query("GetTokens", map[string]any{
		"status":     status,
		"queryAll":   true,
		"symbolOnly": symbolOnly,
	}, &res)
	if err != nil {
		return []Token{}
	}
	return res.Tokens
}

// Info returns token description.
func (r *Reader) Info(symbol string) (*Token, error) {
	var res = new(Token)
	err := r.query("GetTokenInfo", map[string]string{"data": strings.ToUpper(symbol)}, res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Tx returns token transactions.
func (r *Reader) Tx(p TxParams) ([]map[string]any, error) {
	p.Symbol = strings.ToUpper(p.Symbol)
	var res struct {
		TxInfos []map[string]any `json:"txInfos"`
	}
	err := r.query("GetTxByToken", p, &res)
	return res.TxInfos, err
}

// History returns token change logs.
func (r *Reader) History(symbol string) ([]map[string]any, error) {
	var res struct {
		Logs []map[string]any `json:"logs"`
	}
	err := r.query("GetTokenHistory", map[string]string{"data": strings.ToUpper(symbol)}, &res)
	return res.Logs, err
}

func (c *Contract) commit(method string, params any, privKey string) (string, error) {
	var txHex string
	if err := c.invoker.CallNS(execer.Token, method, params, &txHex); err != nil {
		return "", err
	}
	return c.actor.FinalSend(txHex, privKey, 0)
}

// PreCreate registers a new token signed by privKey.
func (c *Contract) PreCreate(p PreCreateParams, privKey string) (string, error) {
	p.Symbol = strings.ToUpper(p.Symbol)
	return c.commit("CreateRawTokenPreCreateTx", p, privKey)
}

// Finish completes token creation, privKey must belong to a finisher.
func (c *Contract) Finish(symbol string, owner string, privKey string) (string, error) {
	return c.commit("CreateRawTokenFinishTx", map[string]string{
		"symbol": strings.ToUpper(symbol),
		"owner":  owner,
	}, privKey)
}

// Revoke cancels pre-created token.
func (c *Contract) Revoke(symbol string, owner string, privKey string) (string, error) {
	return c.commit("CreateRawTokenRevokeTx", map[string]string{
		"symbol": strings.ToUpper(symbol),
		"owner":  owner,
	}, privKey)
}

// Mint issues additional amount of the token.
func (c *Contract) Mint(symbol string, amount int64, privKey string) (string, error) {
	return c.commit("CreateRawTokenMintTx", map[string]any{
		"symbol": strings.ToUpper(symbol),
		"amount": amount,
	}, privKey)
}

// Burn destroys amount of the token.
func (c *Contract) Burn(symbol string, amount int64, privKey string) (string, error) {
	return c.commit("CreateRawTokenBurnTx", map[string]any{
		"symbol": strings.ToUpper(symbol),
		"amount": amount,
	}, privKey)
}
