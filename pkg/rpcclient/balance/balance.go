/*
Package balance queries account balances: base coins, tokens and assets
deposited to executors.
*/
package balance

import (
	"strings"

	"github.com/chain33-go/chain33/pkg/encoding/fixedn"
	"github.com/chain33-go/chain33/pkg/execer"
)

// Invoker is used by Reader to perform RPC calls.
type Invoker interface {
	Call(method string, params any, v any) error
	CallNS(namespace, method string, params any, v any) error
	Query(execer, funcName string, payload any, v any) error
}

// Account is the balance of an address.
type Account struct {
	Currency int32         `json:"currency"`
	Balance  fixedn.Fixed8 `json:"balance"`
	Frozen   fixedn.Fixed8 `json:"frozen"`
	Addr     string        `json:"addr"`
}

// ExecAccount is the balance of an address in some executor.
type ExecAccount struct {
	Execer  string  `json:"execer"`
	Account Account `json:"account"`
}

// TokenAsset is the token balance of an address.
type TokenAsset struct {
	Symbol  string  `json:"symbol"`
	Account Account `json:"account"`
}

// Reader provides balance queries.
type Reader struct {
	invoker  Invoker
	resolver *execer.Resolver
}

// New creates a Reader.
func New(inv Invoker, r *execer.Resolver) *Reader {
	return &Reader{invoker: inv, resolver: r}
}

// Coins returns base coin balances of the given addresses, one per address
// in the same order.
func (r *Reader) Coins(addrs ...string) ([]Account, error) {
	var res []Account
	err := r.invoker.Call("GetBalance", map[string][]string{"addresses": addrs}, &res)
	return res, err
}

// Token returns token balances of the given addresses.
func (r *Reader) Token(symbol string, addrs ...string) ([]Account, error) {
	token, err := r.resolver.Resolve(execer.Token)
	if err != nil {
		return nil, err
	}
	var res []Account
	err = r.invoker.CallNS(execer.Token, "GetTokenBalance", map[string]any{
		"execer":      token,
		"tokenSymbol": strings.ToUpper(symbol),
		"addresses":   addrs,
	}, &res)
	return res, err
}

// All returns balances of the address in every executor.
func (r *Reader) All(addr string) ([]ExecAccount, error) {
	var res struct {
		ExecAccount []ExecAccount `json:"execAccount"`
	}
	err := r.invoker.Call("GetAllExecBalance", map[string]string{"addr": addr}, &res)
	return res.ExecAccount, err
}

// Assets returns all token balances of the address. Nodes fail this query
// for addresses that never held tokens, so any error results in an empty
// list.
func (r *Reader) Assets(addr string) []TokenAsset {
	var res struct {
		TokenAssets []TokenAsset `json:"tokenAssets"`
	}
	err := r.invoker.Query(execer.Token, "GetAccountTokenAssets", map[string]string{
		"address": addr,
		"execer":  execer.Token,
	}, &res)
	if err != nil {
		return []TokenAsset{}
	}
	return res.TokenAssets
}

// Exec returns the balance of symbol asset deposited by the address to the
// executor execName. coinSymbol is the chain base coin symbol (see
// system.Reader.CoinSymbol), it tells coins from tokens.
func (r *Reader) Exec(addr string, execName string, symbol string, coinSymbol string) ([]ExecAccount, error) {
	name, err := r.resolver.Resolve(execName)
	if err != nil {
		return nil, err
	}
	symbol = strings.ToUpper(symbol)
	assetExec := execer.Token
	if symbol == coinSymbol {
		assetExec = execer.Coins
	}
	var res struct {
		ExecAccount []ExecAccount `json:"execAccount"`
	}
	err = r.invoker.Call("GetAllExecBalance", map[string]string{
		"addr":         addr,
		"execer":       name,
		"asset_exec":   assetExec,
		"asset_symbol": symbol,
	}, &res)
	return res.ExecAccount, err
}
