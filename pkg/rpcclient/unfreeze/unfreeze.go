/*
Package unfreeze works with timed asset releases of the unfreeze executor.

A creator locks some amount of an asset for a beneficiary, who can then
withdraw it in portions over time according to the release algorithm
(FixAmount or LeftProportion). The creator can terminate the release, the
rest of the assets returns to them.
*/
package unfreeze

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/chain33-go/chain33/pkg/chainrpc"
	"github.com/chain33-go/chain33/pkg/config"
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

// Release algorithms.
const (
	// FixAmount releases Parameter units every Period seconds.
	FixAmount = "FixAmount"
	// LeftProportion releases Parameter ten-thousandths of the rest every
	// Period seconds.
	LeftProportion = "LeftProportion"
)

// ErrNoBalance is returned by Balance (wrapped into *chainrpc.RequestError)
// when the node doesn't report available amount.
var ErrNoBalance = errors.New("no balance in execer")

// CreateParams describe a new release.
type CreateParams struct {
	Beneficiary string
	AssetSymbol string
	AssetExec   string
	Total       int64
	StartTime   time.Time
	Means       string
	Period      int64
	Parameter   int64
}

type fixAmount struct {
	Period int64 `json:"period"`
	Amount int64 `json:"amount"`
}

type leftProportion struct {
	Period        int64 `json:"period"`
	TenThousandth int64 `json:"tenThousandth"`
}

type createParams struct {
	AssetSymbol    string          `json:"assetSymbol"`
	AssetExec      string          `json:"assetExec"`
	TotalCount     int64           `json:"totalCount"`
	Beneficiary    string          `json:"beneficiary"`
	StartTime      int64           `json:"startTime"`
	Means          string          `json:"means"`
	FixAmount      *fixAmount      `json:"FixAmount,omitempty"`
	LeftProportion *leftProportion `json:"LeftProportion,omitempty"`
}

// ListParams filter releases by creator and beneficiary.
type ListParams struct {
	Initiator   string `json:"initiator"`
	Beneficiary string `json:"beneficiary"`
	Count       int32  `json:"count"`
	Direction   int32  `json:"direction"`
	FromKey     string `json:"fromKey"`
}

// Reader provides release queries.
type Reader struct {
	invoker  Invoker
	resolver *execer.Resolver
}

// Contract provides state-changing release methods along with the Reader
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
	name, err := r.resolver.Resolve(execer.Unfreeze)
	if err != nil {
		return err
	}
	return r.invoker.Query(name, funcName, payload, v)
}

// Status returns release state.
func (r *Reader) Status(id string) (map[string]any, error) {
	var res map[string]any
	err := r.query("GetUnfreeze", map[string]string{"data": strings.TrimPrefix(id, "0x")}, &res)
	return res, err
}

// Balance returns the amount the beneficiary can withdraw now.
func (r *Reader) Balance(id string) (int64, error) {
	var res struct {
		AvailableAmount *json64 `json:"availableAmount"`
	}
	err := r.query("GetUnfreezeWithdraw", map[string]string{"data": strings.TrimPrefix(id, "0x")}, &res)
	if err != nil {
		return 0, err
	}
	if res.AvailableAmount == nil {
		return 0, chainrpc.NewRequestError(chainrpc.Method("", "Query"), ErrNoBalance)
	}
	return int64(*res.AvailableAmount), nil
}

// ByCreator lists releases created by p.Initiator.
func (r *Reader) ByCreator(p ListParams) ([]map[string]any, error) {
	return r.list("ListUnfreezeByCreator", p)
}

// ByBeneficiary lists releases for p.Beneficiary.
func (r *Reader) ByBeneficiary(p ListParams) ([]map[string]any, error) {
	return r.list("ListUnfreezeByBeneficiary", p)
}

func (r *Reader) list(funcName string, p ListParams) ([]map[string]any, error) {
	if p.Count == 0 {
		p.Count = 100
	}
	var res struct {
		Unfreeze []map[string]any `json:"unfreeze"`
	}
	err := r.query(funcName, p, &res)
	return res.Unfreeze, err
}

// Create starts a new release paid by privKey owner. Unknown algorithms are
// rejected with *config.Error before any call to the node.
func (c *Contract) Create(p CreateParams, privKey string) (string, error) {
	params := createParams{
		AssetSymbol: p.AssetSymbol,
		AssetExec:   p.AssetExec,
		TotalCount:  p.Total,
		Beneficiary: p.Beneficiary,
		StartTime:   p.StartTime.Unix(),
		Means:       p.Means,
	}
	switch p.Means {
	case FixAmount:
		params.FixAmount = &fixAmount{Period: p.Period, Amount: p.Parameter}
	case LeftProportion:
		params.LeftProportion = &leftProportion{Period: p.Period, TenThousandth: p.Parameter}
	default:
		return "", &config.Error{Field: "Means", Msg: "unsupported unfreeze algorithm " + strconv.Quote(p.Means)}
	}
	return c.commit("CreateRawUnfreezeCreate", params, privKey)
}

// Withdraw takes available assets of the release, privKey must belong to
// the beneficiary.
func (c *Contract) Withdraw(id string, privKey string) (string, error) {
	return c.commit("CreateRawUnfreezeWithdraw", map[string]string{"unfreezeID": strings.TrimPrefix(id, "0x")}, privKey)
}

// Terminate stops the release, privKey must belong to the creator.
func (c *Contract) Terminate(id string, privKey string) (string, error) {
	return c.commit("CreateRawUnfreezeTerminate", map[string]string{"unfreezeID": strings.TrimPrefix(id, "0x")}, privKey)
}

func (c *Contract) commit(method string, params any, privKey string) (string, error) {
	var txHex string
	if err := c.invoker.CallNS(execer.Unfreeze, method, params, &txHex); err != nil {
		return "", err
	}
	return c.actor.FinalSend(txHex, privKey, 0)
}
