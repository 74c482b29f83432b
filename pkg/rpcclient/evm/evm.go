/*
Package evm deploys and calls EVM contracts.

Contract calls need gas estimation: transactions are first created with
actor.ProvisionalGas, the node estimates gas for them and they are created
again with the estimated value as the fee before signing (see
actor.Actor.SendEstimated).
*/
package evm

import (
	"errors"
	"strings"
	"unicode"

	"github.com/chain33-go/chain33/pkg/chainrpc"
	"github.com/chain33-go/chain33/pkg/execer"
	"github.com/chain33-go/chain33/pkg/rpcclient/actor"
)

// Invoker is used by Reader and Contract to perform RPC calls.
type Invoker interface {
	CallNS(namespace, method string, params any, v any) error
	Query(execer, funcName string, payload any, v any) error
}

// Actor is used by Contract to commit transactions.
type Actor interface {
	SendEstimated(build actor.BuildFunc, privKey string) (string, error)
	Resolver() *execer.Resolver
}

// ErrNoResult is returned by Query (wrapped into *chainrpc.RequestError) when
// the node unpacked nothing.
var ErrNoResult = errors.New("empty call result")

// Reader provides contract queries.
type Reader struct {
	invoker  Invoker
	resolver *execer.Resolver
}

// Contract provides contract deployment and calls along with the Reader
// methods.
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

type callParams struct {
	Abi          string `json:"abi"`
	Fee          int64  `json:"fee"`
	Note         string `json:"note"`
	Parameter    string `json:"parameter"`
	ContractAddr string `json:"contractAddr"`
	ParaName     string `json:"paraName"`
}

type deployParams struct {
	Code      string `json:"code"`
	Abi       string `json:"abi"`
	Fee       int64  `json:"fee"`
	Note      string `json:"note"`
	Alias     string `json:"alias"`
	Parameter string `json:"parameter"`
	ParaName  string `json:"paraName"`
}

// CompactABI removes all whitespace from ABI JSON.
func CompactABI(abi string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, abi)
}

// Invoke calls contract method described by parameter (like
// "transfer(1A, 100)") and returns transaction hash.
func (c *Contract) Invoke(contractAddr string, abi string, parameter string, privKey string, note string) (string, error) {
	paraName, err := c.resolver.Resolve("")
	if err != nil {
		return "", err
	}
	p := callParams{
		Abi:          CompactABI(abi),
		Note:         note,
		Parameter:    parameter,
		ContractAddr: contractAddr,
		ParaName:     paraName,
	}
	return c.actor.SendEstimated(func(fee int64) (string, error) {
		p.Fee = fee
		var tx string
		err := c.invoker.CallNS(execer.EVM, "CreateCallTx", p, &tx)
		return tx, err
	}, privKey)
}

// Deploy deploys contract code with constructor parameter and returns
// transaction hash. The contract address can then be calculated with
// ContractAddress.
func (c *Contract) Deploy(code string, abi string, parameter string, alias string, privKey string, note string) (string, error) {
	paraName, err := c.resolver.Resolve("")
	if err != nil {
		return "", err
	}
	p := deployParams{
		Code:      code,
		Abi:       CompactABI(abi),
		Note:      note,
		Alias:     alias,
		Parameter: parameter,
		ParaName:  paraName,
	}
	return c.actor.SendEstimated(func(fee int64) (string, error) {
		p.Fee = fee
		var tx string
		err := c.invoker.CallNS(execer.EVM, "CreateDeployTx", p, &tx)
		return tx, err
	}, privKey)
}

// ContractAddress returns the address of the contract deployed by caller in
// the transaction txHash.
func (r *Reader) ContractAddress(caller string, txHash string) (string, error) {
	var res string
	err := r.invoker.CallNS(execer.EVM, "CalcNewContractAddr", map[string]string{
		"caller": caller,
		"txhash": strings.TrimPrefix(txHash, "0x"),
	}, &res)
	return res, err
}

func (r *Reader) query(funcName string, payload any, v any) error {
	evm, err := r.resolver.Resolve(execer.EVM)
	if err != nil {
		return err
	}
	return r.invoker.Query(evm, funcName, payload, v)
}

// AddressInfo describes an EVM address.
type AddressInfo struct {
	Contract     bool   `json:"contract"`
	ContractAddr string `json:"contractAddr"`
	ContractName string `json:"contractName"`
	AliasName    string `json:"aliasName"`
}

// CheckAddress tells whether addr is a contract.
func (r *Reader) CheckAddress(addr string) (*AddressInfo, error) {
	var res = new(AddressInfo)
	if err := r.query("CheckAddrExists", map[string]string{"addr": addr}, res); err != nil {
		return nil, err
	}
	return res, nil
}

// PackData encodes method call described by parameter.
func (r *Reader) PackData(abi string, parameter string) (string, error) {
	var res struct {
		PackData string `json:"packData"`
	}
	err := r.query("GetPackData", map[string]string{
		"abi":       abi,
		"parameter": parameter,
	}, &res)
	return res.PackData, err
}

// UnpackData decodes data returned by method described by parameter.
func (r *Reader) UnpackData(abi string, parameter string, data string) ([]string, error) {
	var res struct {
		UnpackData []string `json:"unpackData"`
	}
	err := r.query("GetUnpackData", map[string]string{
		"abi":       abi,
		"parameter": parameter,
		"data":      data,
	}, &res)
	return res.UnpackData, err
}

// Query calls read-only contract method and returns its first result.
func (r *Reader) Query(addr string, abi string, input string, caller string) (string, error) {
	packed, err := r.PackData(abi, input)
	if err != nil {
		return "", err
	}
	var res struct {
		RawData string `json:"rawData"`
	}
	err = r.query("Query", map[string]string{
		"address": addr,
		"input":   packed,
		"caller":  caller,
	}, &res)
	if err != nil {
		return "", err
	}
	out, err := r.UnpackData(abi, input, res.RawData)
	if err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", chainrpc.NewRequestError(chainrpc.Method("", "Query"), ErrNoResult)
	}
	return out[0], nil
}
