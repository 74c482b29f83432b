/*
Package actor provides a way to change chain state via RPC client.

Chain33 nodes build, sign and broadcast transactions themselves, so the Actor
only drives the sequence of calls: an unsigned transaction created by some
"Create*" method is optionally wrapped for fee delegation (parallel chains
only), signed with the given private key and sent to the network. Every step
is a separate RPC call depending on the previous one, any failure aborts the
whole sequence and nothing is kept locally.
*/
package actor

import (
	"github.com/chain33-go/chain33/pkg/execer"
	"go.uber.org/zap"
)

const (
	// DefaultSignIndex makes the node sign every transaction of a group.
	DefaultSignIndex int32 = 0
	// DelegatedSignIndex is the index of the original transaction in a
	// group created by fee delegation wrapping, the delegate's one is 1.
	DelegatedSignIndex int32 = 2
	// Expire is the transaction expiration interval passed to the node for
	// every signed transaction.
	Expire = "300s"
)

// RPCActor is an interface required from the RPC client to successfully
// create and send transactions. It's implemented by *rpcclient.Client.
type RPCActor interface {
	Call(method string, params any, v any) error
}

// Options are used to create Actor.
type Options struct {
	// DelegateKey is the private key paying fees for parallel chain
	// transactions. Delegation is only used on parallel chains and only
	// if this key is set.
	DelegateKey string
	// FeePayer is the address passed to gas estimation.
	FeePayer string
	// Logger is used for per-step debug logging, zap.NewNop() is used if
	// it's nil.
	Logger *zap.Logger
}

// Actor commits transactions via RPC node. It holds no mutable state and can
// be used concurrently.
type Actor struct {
	client   RPCActor
	resolver *execer.Resolver
	opts     Options
	log      *zap.Logger
}

// New creates an Actor using the given RPC client and executor resolver.
func New(ra RPCActor, resolver *execer.Resolver, opts Options) *Actor {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Actor{
		client:   ra,
		resolver: resolver,
		opts:     opts,
		log:      opts.Logger,
	}
}

// Resolver returns the executor resolver used by Actor.
func (a *Actor) Resolver() *execer.Resolver {
	return a.resolver
}

// Delegates tells whether transactions are wrapped for fee delegation before
// signing.
func (a *Actor) Delegates() bool {
	return a.resolver.IsParaChain() && a.opts.DelegateKey != ""
}

type noBalanceParams struct {
	TxHex   string `json:"txHex"`
	PrivKey string `json:"privkey"`
}

type signParams struct {
	PrivKey string `json:"privkey"`
	TxHex   string `json:"txHex"`
	Expire  string `json:"expire"`
	Index   int32  `json:"index"`
	Fee     int64  `json:"fee"`
}

type sendParams struct {
	Data string `json:"data"`
}

// Wrap applies fee delegation to the unsigned transaction if it's enabled
// (see Delegates). It returns the transaction to sign and the index that must
// be used to sign it: DelegatedSignIndex for wrapped transactions and
// DefaultSignIndex otherwise.
func (a *Actor) Wrap(txHex string) (string, int32, error) {
	if !a.Delegates() {
		return txHex, DefaultSignIndex, nil
	}
	var wrapped string
	err := a.client.Call("CreateNoBalanceTransaction", noBalanceParams{
		TxHex:   txHex,
		PrivKey: a.opts.DelegateKey,
	}, &wrapped)
	if err != nil {
		return "", 0, err
	}
	a.log.Debug("transaction wrapped for fee delegation", zap.String("para", a.resolver.Namespace()))
	return wrapped, DelegatedSignIndex, nil
}

// Sign wraps the transaction (see Wrap) and signs it with privKey. fee
// overrides the one set in the transaction. It returns signed transaction in
// hex.
func (a *Actor) Sign(txHex string, privKey string, fee int64) (string, error) {
	txHex, index, err := a.Wrap(txHex)
	if err != nil {
		return "", err
	}
	var signed string
	err = a.client.Call("SignRawTx", signParams{
		PrivKey: privKey,
		TxHex:   txHex,
		Expire:  Expire,
		Index:   index,
		Fee:     fee,
	}, &signed)
	if err != nil {
		return "", err
	}
	a.log.Debug("transaction signed", zap.Int32("index", index), zap.Int64("fee", fee))
	return signed, nil
}

// Send broadcasts signed transaction and returns its hash exactly as the node
// reported it.
func (a *Actor) Send(signed string) (string, error) {
	var hash string
	err := a.client.Call("SendTransaction", sendParams{Data: signed}, &hash)
	if err != nil {
		return "", err
	}
	a.log.Info("transaction sent", zap.String("hash", hash))
	return hash, nil
}

// FinalSend signs and sends unsigned transaction, it's the way every
// state-changing operation is committed.
func (a *Actor) FinalSend(txHex string, privKey string, fee int64) (string, error) {
	signed, err := a.Sign(txHex, privKey, fee)
	if err != nil {
		return "", err
	}
	return a.Send(signed)
}
