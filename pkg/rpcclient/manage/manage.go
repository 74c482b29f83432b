/*
Package manage changes chain configuration items kept by the manage executor
(token finishers, token blacklist, tendermint managers) and adds consensus
nodes. All transactions must be signed by the chain super manager.
*/
package manage

import (
	"strings"

	"github.com/chain33-go/chain33/pkg/execer"
)

// Invoker is used by Contract to perform RPC calls.
type Invoker interface {
	Call(method string, params any, v any) error
	Query(execer, funcName string, payload any, v any) error
}

// Actor is used by Contract to commit transactions.
type Actor interface {
	FinalSend(txHex string, privKey string, fee int64) (string, error)
}

// Op is a configuration item modification.
type Op string

// Supported operations.
const (
	OpAdd    Op = "add"
	OpDelete Op = "delete"
)

// Configuration item keys.
const (
	KeyFinisher          = "token-finisher"
	KeyBlacklist         = "token-blacklist"
	KeyTendermintManager = "tendermint-manager"
)

// DefaultPower is the voting power of new consensus nodes.
const DefaultPower int64 = 10

type createParams struct {
	Execer     string `json:"execer"`
	ActionName string `json:"actionName"`
	Payload    any    `json:"payload"`
}

type modify struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Op    Op     `json:"op"`
}

// Contract provides manage methods.
type Contract struct {
	invoker    Invoker
	actor      Actor
	managerKey string
}

// New creates a Contract signing transactions with managerKey.
func New(inv Invoker, act Actor, managerKey string) *Contract {
	return &Contract{invoker: inv, actor: act, managerKey: managerKey}
}

func (c *Contract) send(p createParams) (string, error) {
	var txHex string
	if err := c.invoker.Call("CreateTransaction", p, &txHex); err != nil {
		return "", err
	}
	return c.actor.FinalSend(txHex, c.managerKey, 0)
}

func (c *Contract) modify(key string, value string, op Op) (string, error) {
	return c.send(createParams{
		Execer:     execer.Manage,
		ActionName: "Modify",
		Payload:    modify{Key: key, Value: value, Op: op},
	})
}

// Finisher adds or removes an address allowed to finish token creation.
func (c *Contract) Finisher(addr string, op Op) (string, error) {
	return c.modify(KeyFinisher, addr, op)
}

// Blacklist adds or removes a token symbol nobody can issue.
func (c *Contract) Blacklist(symbol string, op Op) (string, error) {
	return c.modify(KeyBlacklist, symbol, op)
}

// Tendermint adds or removes a tendermint manager address.
func (c *Contract) Tendermint(addr string, op Op) (string, error) {
	return c.modify(KeyTendermintManager, addr, op)
}

// AddConsensusNode adds a validator node with the given public key and
// voting power.
func (c *Contract) AddConsensusNode(pubKey string, power int64) (string, error) {
	return c.send(createParams{
		Execer:     execer.ValNode,
		ActionName: "NodeUpdate",
		Payload: map[string]any{
			"pubKey": pubKey,
			"power":  power,
		},
	})
}

// Get returns values of the "token-<typ>" item, e.g. Get("finisher").
func (c *Contract) Get(typ string) ([]string, error) {
	var res struct {
		Value string `json:"value"`
	}
	err := c.invoker.Query(execer.Manage, "GetConfigItem", map[string]string{"data": "token-" + typ}, &res)
	if err != nil {
		return nil, err
	}
	return strings.Fields(strings.NewReplacer("[", "", "]", "").Replace(res.Value)), nil
}
