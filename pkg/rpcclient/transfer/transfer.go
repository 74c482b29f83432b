/*
Package transfer moves coins and tokens between accounts and executors and
provides transaction lookups.

Every transfer is created by the node (CreateRawTransaction) and committed via
the Actor, so delegation and signing rules of the actor package apply. On
parallel chains the fee is always zero.
*/
package transfer

import (
	"strings"

	"github.com/chain33-go/chain33/pkg/execer"
)

// Invoker is used by Client to perform RPC calls.
type Invoker interface {
	Call(method string, params any, v any) error
}

// Actor is used by Client to commit transactions.
type Actor interface {
	FinalSend(txHex string, privKey string, fee int64) (string, error)
	Resolver() *execer.Resolver
}

// Client provides transfer and transaction query methods.
type Client struct {
	invoker Invoker
	actor   Actor
}

// Tx is a transaction description as returned by the node, its layout
// depends on the executor.
type Tx = map[string]any

// CreateParams are CreateRawTransaction parameters.
type CreateParams struct {
	To          string `json:"to"`
	Amount      int64  `json:"amount"`
	Fee         int64  `json:"fee"`
	Note        string `json:"note,omitempty"`
	IsToken     bool   `json:"isToken,omitempty"`
	IsWithdraw  bool   `json:"isWithdraw"`
	TokenSymbol string `json:"tokenSymbol,omitempty"`
	ExecName    string `json:"execName,omitempty"`
	Execer      string `json:"execer,omitempty"`
}

// New creates a transfer Client.
func New(inv Invoker, act Actor) *Client {
	return &Client{invoker: inv, actor: act}
}

func (c *Client) create(p CreateParams) (string, error) {
	var txHex string
	err := c.invoker.Call("CreateRawTransaction", p, &txHex)
	return txHex, err
}

func (c *Client) fee(fee int64) int64 {
	if c.actor.Resolver().IsParaChain() {
		return 0
	}
	return fee
}

// Coins transfers amount of base coins to the given address and returns
// transaction hash.
func (c *Client) Coins(to string, amount int64, privKey string, fee int64, note string) (string, error) {
	fee = c.fee(fee)
	coins, err := c.actor.Resolver().Resolve(execer.Coins)
	if err != nil {
		return "", err
	}
	tx, err := c.create(CreateParams{
		To:     to,
		Amount: amount,
		Fee:    fee,
		Note:   note,
		Execer: coins,
	})
	if err != nil {
		return "", err
	}
	return c.actor.FinalSend(tx, privKey, fee)
}

// Token transfers amount of the token with the given symbol.
func (c *Client) Token(to string, symbol string, amount int64, privKey string, fee int64, note string) (string, error) {
	fee = c.fee(fee)
	token, err := c.actor.Resolver().Resolve(execer.Token)
	if err != nil {
		return "", err
	}
	tx, err := c.create(CreateParams{
		To:          to,
		Amount:      amount,
		Fee:         fee,
		Note:        note,
		IsToken:     true,
		TokenSymbol: strings.ToUpper(symbol),
		Execer:      token,
	})
	if err != nil {
		return "", err
	}
	return c.actor.FinalSend(tx, privKey, fee)
}

// ToExec deposits assets to the executor execName (short name, resolved for
// the current chain).
func (c *Client) ToExec(execName string, amount int64, symbol string, privKey string) (string, error) {
	return c.execTransfer(execName, amount, symbol, privKey, false)
}

// FromExec withdraws assets from the executor execName.
func (c *Client) FromExec(execName string, amount int64, symbol string, privKey string) (string, error) {
	return c.execTransfer(execName, amount, symbol, privKey, true)
}

func (c *Client) execTransfer(execName string, amount int64, symbol string, privKey string, withdraw bool) (string, error) {
	name, err := c.actor.Resolver().Resolve(execName)
	if err != nil {
		return "", err
	}
	var addr string
	if err := c.invoker.Call("ConvertExectoAddr", map[string]string{"execname": name}, &addr); err != nil {
		return "", err
	}
	var sym struct {
		Data string `json:"data"`
	}
	if err := c.invoker.Call("GetCoinSymbol", nil, &sym); err != nil {
		return "", err
	}
	symbol = strings.ToUpper(symbol)
	tx, err := c.create(CreateParams{
		To:          addr,
		Amount:      amount,
		IsToken:     symbol != sym.Data,
		IsWithdraw:  withdraw,
		TokenSymbol: symbol,
		ExecName:    name,
	})
	if err != nil {
		return "", err
	}
	return c.actor.FinalSend(tx, privKey, 0)
}

// Query returns transaction by its hash.
func (c *Client) Query(hash string) (Tx, error) {
	var res Tx
	err := c.invoker.Call("QueryTransaction", map[string]string{"hash": hash}, &res)
	return res, err
}

// TxByAddrParams are GetTxByAddr parameters. Flag selects transactions where
// the address is any party (0), a sender (1) or a receiver (2); Direction 0
// goes from lower heights to higher and -1 backwards; Height -1 starts from
// the latest block.
type TxByAddrParams struct {
	Addr      string `json:"addr"`
	Flag      int32  `json:"flag"`
	Count     int32  `json:"count"`
	Direction int32  `json:"direction"`
	Height    int64  `json:"height"`
	Index     int64  `json:"index"`
}

// NewTxByAddrParams returns parameters for the last 100 transactions of addr.
func NewTxByAddrParams(addr string) TxByAddrParams {
	return TxByAddrParams{Addr: addr, Count: 100, Height: -1}
}

// TxByAddr returns transaction infos for the address.
func (c *Client) TxByAddr(p TxByAddrParams) ([]Tx, error) {
	var res struct {
		TxInfos []Tx `json:"txInfos"`
	}
	err := c.invoker.Call("GetTxByAddr", p, &res)
	return res.TxInfos, err
}

// Overview returns address summary (balance, number of transactions).
func (c *Client) Overview(addr string) (map[string]any, error) {
	var res map[string]any
	err := c.invoker.Call("GetAddrOverview", map[string]string{"addr": addr}, &res)
	return res, err
}

// TxByHashes returns transactions by their hashes, disableDetail omits
// receipts.
func (c *Client) TxByHashes(hashes []string, disableDetail bool) ([]Tx, error) {
	var res struct {
		Txs []Tx `json:"txs"`
	}
	err := c.invoker.Call("GetTxByHashes", map[string]any{
		"hashes":        hashes,
		"disableDetail": disableDetail,
	}, &res)
	return res.Txs, err
}

// HexTxByHash returns serialized transaction in hex.
func (c *Client) HexTxByHash(hash string) (string, error) {
	var res string
	err := c.invoker.Call("GetHexTxByHash", map[string]string{"hash": hash}, &res)
	return res, err
}

// CreateTxGroup combines unsigned transactions into a group.
func (c *Client) CreateTxGroup(txs []string) (string, error) {
	var res string
	err := c.invoker.Call("CreateRawTxGroup", map[string][]string{"txs": txs}, &res)
	return res, err
}
