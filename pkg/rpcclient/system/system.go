/*
Package system provides node and network status queries.

Peer and network information is only available on the main chain, parallel
chain nodes don't run p2p and these methods return empty values there without
calling the node.
*/
package system

import "github.com/chain33-go/chain33/pkg/execer"

// Invoker is used by Reader to perform RPC calls.
type Invoker interface {
	Call(method string, params any, v any) error
}

// Chain types returned by Reader.Type.
const (
	TypeMain = "main"
	TypePara = "para"
)

// Peer is a p2p peer of the node.
type Peer struct {
	Addr        string         `json:"addr"`
	Port        int32          `json:"port"`
	Name        string         `json:"name"`
	MempoolSize int32          `json:"mempoolSize"`
	Self        bool           `json:"self"`
	Header      map[string]any `json:"header"`
	Version     string         `json:"version"`
	RunningTime string         `json:"runningTime"`
}

// NetInfo is the node network status.
type NetInfo struct {
	Externaladdr string `json:"externalAddr"`
	Localaddr    string `json:"localAddr"`
	Service      bool   `json:"service"`
	Outbounds    int32  `json:"outbounds"`
	Inbounds     int32  `json:"inbounds"`
}

// TimeStatus is the node clock status.
type TimeStatus struct {
	NtpTime   string `json:"ntpTime"`
	LocalTime string `json:"localTime"`
	Diff      int64  `json:"diff"`
}

// Reader provides system queries.
type Reader struct {
	invoker  Invoker
	resolver *execer.Resolver
}

// New creates a Reader.
func New(inv Invoker, r *execer.Resolver) *Reader {
	return &Reader{invoker: inv, resolver: r}
}

// IsParaChain tells whether the client is configured for a parallel chain.
func (r *Reader) IsParaChain() bool {
	return r.resolver.IsParaChain()
}

// Type returns TypePara or TypeMain.
func (r *Reader) Type() string {
	if r.IsParaChain() {
		return TypePara
	}
	return TypeMain
}

// Peers returns p2p peers of the node.
func (r *Reader) Peers() ([]Peer, error) {
	if r.IsParaChain() {
		return []Peer{}, nil
	}
	var res struct {
		Peers []Peer `json:"peers"`
	}
	err := r.invoker.Call("GetPeerInfo", nil, &res)
	return res.Peers, err
}

// NetInfo returns node network status, nil on parallel chains.
func (r *Reader) NetInfo() (*NetInfo, error) {
	if r.IsParaChain() {
		return nil, nil
	}
	var res = new(NetInfo)
	if err := r.invoker.Call("GetNetInfo", nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// TimeStatus returns node clock status.
func (r *Reader) TimeStatus() (*TimeStatus, error) {
	var res = new(TimeStatus)
	if err := r.invoker.Call("GetTimeStatus", nil, res); err != nil {
		return nil, err
	}
	return res, nil
}

// IsSync tells whether the node is synchronized with the network.
func (r *Reader) IsSync() (bool, error) {
	var res bool
	err := r.invoker.Call("IsSync", nil, &res)
	return res, err
}

// CoinSymbol returns base coin symbol of the chain.
func (r *Reader) CoinSymbol() (string, error) {
	var res struct {
		Data string `json:"data"`
	}
	err := r.invoker.Call("GetCoinSymbol", nil, &res)
	return res.Data, err
}

// Cryptos returns signature algorithms supported by the node.
func (r *Reader) Cryptos() ([]map[string]any, error) {
	var res struct {
		Cryptos []map[string]any `json:"cryptos"`
	}
	err := r.invoker.Call("GetCryptoList", nil, &res)
	return res.Cryptos, err
}

// ClockSync tells whether node clock is synchronized via NTP.
func (r *Reader) ClockSync() (bool, error) {
	var res bool
	err := r.invoker.Call("IsNtpClockSync", nil, &res)
	return res, err
}

// FatalFailure returns the node fatal failure code, 0 if there is none.
func (r *Reader) FatalFailure() (int64, error) {
	var res int64
	err := r.invoker.Call("GetFatalFailure", nil, &res)
	return res, err
}

// Decode decodes transaction in hex.
func (r *Reader) Decode(txHex string) (map[string]any, error) {
	var res map[string]any
	err := r.invoker.Call("DecodeRawTransaction", map[string]string{"txHex": txHex}, &res)
	return res, err
}
