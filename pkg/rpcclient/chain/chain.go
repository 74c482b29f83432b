/*
Package chain provides block, header and push subscription queries.
*/
package chain

import (
	"fmt"

	"github.com/chain33-go/chain33/pkg/execer"
)

// Invoker is used by Reader to perform RPC calls.
type Invoker interface {
	Call(method string, params any, v any) error
}

// Push types.
const (
	PushBlock     int32 = 0
	PushHeader    int32 = 1
	PushTxReceipt int32 = 2
)

// Block is a block description as returned by the node.
type Block = map[string]any

// Header is a block header.
type Header struct {
	Version    int64  `json:"version"`
	ParentHash string `json:"parentHash"`
	TxHash     string `json:"txHash"`
	StateHash  string `json:"stateHash"`
	Height     int64  `json:"height"`
	BlockTime  int64  `json:"blockTime"`
	TxCount    int64  `json:"txCount"`
	Hash       string `json:"hash"`
	Difficulty uint32 `json:"difficulty"`
}

// Version is the node version info.
type Version struct {
	Title   string `json:"title"`
	App     string `json:"app"`
	Chain33 string `json:"chain33"`
	LocalDb string `json:"localDb"`
	ChainID int32  `json:"chainID"`
}

// Push is a push subscription.
type Push struct {
	Name          string          `json:"name"`
	URL           string          `json:"URL"`
	Encode        string          `json:"encode"`
	LastSequence  int64           `json:"lastSequence"`
	LastHeight    int64           `json:"lastHeight"`
	LastBlockHash string          `json:"lastBlockHash"`
	Type          int32           `json:"type"`
	Contract      map[string]bool `json:"contract,omitempty"`
}

// Reader provides chain queries.
type Reader struct {
	invoker  Invoker
	resolver *execer.Resolver
}

// New creates a Reader.
func New(inv Invoker, r *execer.Resolver) *Reader {
	return &Reader{invoker: inv, resolver: r}
}

type rangeParams struct {
	Start    int64 `json:"start"`
	End      int64 `json:"end"`
	IsDetail bool  `json:"isDetail"`
}

// Version returns node version.
func (r *Reader) Version() (*Version, error) {
	var res = new(Version)
	if err := r.invoker.Call("Version", nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Blocks returns blocks from start to end heights (both inclusive).
func (r *Reader) Blocks(start, end int64, detailed bool) ([]Block, error) {
	var res struct {
		Items []Block `json:"items"`
	}
	err := r.invoker.Call("GetBlocks", rangeParams{start, end, detailed}, &res)
	return res.Items, err
}

// LastHeader returns the header of the latest block.
func (r *Reader) LastHeader() (*Header, error) {
	var res = new(Header)
	if err := r.invoker.Call("GetLastHeader", nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Headers returns headers from start to end heights.
func (r *Reader) Headers(start, end int64, detailed bool) ([]Header, error) {
	var res struct {
		Items []Header `json:"items"`
	}
	err := r.invoker.Call("GetHeaders", rangeParams{start, end, detailed}, &res)
	return res.Items, err
}

// BlockHash returns the hash of the block at the given height.
func (r *Reader) BlockHash(height int64) (string, error) {
	var res struct {
		Hash string `json:"hash"`
	}
	err := r.invoker.Call("GetBlockHash", map[string]int64{"height": height}, &res)
	return res.Hash, err
}

// BlockOverview returns block header with transaction hashes.
func (r *Reader) BlockOverview(hash string) (map[string]any, error) {
	var res map[string]any
	err := r.invoker.Call("GetBlockOverview", map[string]string{"hash": hash}, &res)
	return res, err
}

// BlockOverviewAt is BlockOverview for the block at the given height.
func (r *Reader) BlockOverviewAt(height int64) (map[string]any, error) {
	hash, err := r.BlockHash(height)
	if err != nil {
		return nil, err
	}
	return r.BlockOverview(hash)
}

// BlocksByHashes returns blocks with the given hashes.
func (r *Reader) BlocksByHashes(hashes []string, disableDetail bool) ([]Block, error) {
	var res struct {
		Items []Block `json:"items"`
	}
	err := r.invoker.Call("GetBlockByHashes", map[string]any{
		"hashes":        hashes,
		"disableDetail": disableDetail,
	}, &res)
	return res.Items, err
}

// Sequences returns block sequence infos from start to end.
func (r *Reader) Sequences(start, end int64, detailed bool) ([]map[string]any, error) {
	var res struct {
		BlkSeqInfos []map[string]any `json:"blkseqInfos"`
	}
	err := r.invoker.Call("GetBlockSequences", rangeParams{start, end, detailed}, &res)
	return res.BlkSeqInfos, err
}

// LastSequence returns the latest block sequence number.
func (r *Reader) LastSequence() (int64, error) {
	var res int64
	err := r.invoker.Call("GetLastBlockSequence", nil, &res)
	return res, err
}

// AddPush subscribes url to pushes of the given type. contract is only used
// for PushTxReceipt and can be empty.
func (r *Reader) AddPush(name string, url string, typ int32, contract string) error {
	p := Push{
		Name:   name,
		URL:    url,
		Encode: "json",
		Type:   typ,
	}
	if typ == PushTxReceipt && contract != "" {
		p.Contract = map[string]bool{contract: true}
	}
	var res struct {
		IsOk bool   `json:"isOK"`
		Msg  string `json:"msg"`
	}
	if err := r.invoker.Call("AddPushSubscribe", p, &res); err != nil {
		return err
	}
	if res.Msg != "Succeed" {
		return fmt.Errorf("push subscription rejected: %q", res.Msg)
	}
	return nil
}

// Pushes lists push subscriptions.
func (r *Reader) Pushes() ([]Push, error) {
	var res struct {
		Pushes []Push `json:"pushes"`
	}
	err := r.invoker.Call("ListPushes", nil, &res)
	return res.Pushes, err
}

// LastPush returns the last sequence pushed to the named subscription.
func (r *Reader) LastPush(name string) (int64, error) {
	var res struct {
		Data int64 `json:"data"`
	}
	err := r.invoker.Call("GetPushSeqLastNum", map[string]string{"data": name}, &res)
	return res.Data, err
}

// ExecAddress returns the address of the executor with the given short name.
func (r *Reader) ExecAddress(name string) (string, error) {
	name, err := r.resolver.Resolve(name)
	if err != nil {
		return "", err
	}
	var res string
	err = r.invoker.Call("ConvertExectoAddr", map[string]string{"execname": name}, &res)
	return res, err
}
