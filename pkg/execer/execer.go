/*
Package execer resolves executor (contract) names for the configured chain.
On a parallel chain every executor lives under the chain prefix, so "token"
becomes "user.p.<name>.token" there, while the main chain uses short names as
is.
*/
package execer

import "github.com/chain33-go/chain33/pkg/config"

// Well-known executor names.
const (
	Coins    = "coins"
	Token    = "token"
	EVM      = "evm"
	Unfreeze = "unfreeze"
	Manage   = "manage"
	ValNode  = "valnode"
)

// Resolver qualifies executor names. It's immutable and safe for concurrent
// use.
type Resolver struct {
	paraName string
}

// New creates a Resolver for the given parallel chain prefix, empty prefix
// means the main chain.
func New(paraName string) *Resolver {
	return &Resolver{paraName: paraName}
}

// NewFromConfig creates a Resolver for cfg.
func NewFromConfig(cfg config.Config) *Resolver {
	return New(cfg.ParaName)
}

// Resolve returns a fully-qualified executor name. It fails with
// config.ErrMalformedParaName if the prefix is set but is not a valid
// parallel chain name.
func (r *Resolver) Resolve(name string) (string, error) {
	if r.paraName == "" {
		return name, nil
	}
	if !config.IsParaName(r.paraName) {
		return "", config.ErrMalformedParaName
	}
	return r.paraName + name, nil
}

// IsParaChain tells whether the resolver works with a parallel chain.
func (r *Resolver) IsParaChain() bool {
	return config.IsParaName(r.paraName)
}

// Namespace returns the configured parallel chain prefix.
func (r *Resolver) Namespace() string {
	return r.paraName
}
