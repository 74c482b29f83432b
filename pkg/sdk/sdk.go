/*
Package sdk builds a ready to use set of Chain33 clients from configuration.

All components share one RPC client and one Actor:

	cfg, err := config.LoadEnv()
	...
	s, err := sdk.New(context.Background(), cfg, logger)
	...
	defer s.Close()
	hash, err := s.Transfer.Coins(to, 100, key, 100000, "")
*/
package sdk

import (
	"context"
	"fmt"

	"github.com/chain33-go/chain33/pkg/config"
	"github.com/chain33-go/chain33/pkg/execer"
	"github.com/chain33-go/chain33/pkg/rpcclient"
	"github.com/chain33-go/chain33/pkg/rpcclient/actor"
	"github.com/chain33-go/chain33/pkg/rpcclient/balance"
	"github.com/chain33-go/chain33/pkg/rpcclient/chain"
	"github.com/chain33-go/chain33/pkg/rpcclient/evm"
	"github.com/chain33-go/chain33/pkg/rpcclient/manage"
	"github.com/chain33-go/chain33/pkg/rpcclient/system"
	"github.com/chain33-go/chain33/pkg/rpcclient/token"
	"github.com/chain33-go/chain33/pkg/rpcclient/transfer"
	"github.com/chain33-go/chain33/pkg/rpcclient/unfreeze"
	"go.uber.org/zap"
)

// SDK holds all clients for the configured chain.
type SDK struct {
	Client   *rpcclient.Client
	Resolver *execer.Resolver
	Actor    *actor.Actor

	Balance  *balance.Reader
	Chain    *chain.Reader
	System   *system.Reader
	Transfer *transfer.Client
	Token    *token.Contract
	EVM      *evm.Contract
	Unfreeze *unfreeze.Contract
	Manage   *manage.Contract
}

// New validates cfg and creates all clients. log can be nil.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*SDK, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	c, err := rpcclient.New(ctx, cfg.Endpoint(), rpcclient.Options{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("failed to create RPC client: %w", err)
	}
	return NewWithClient(c, cfg, log), nil
}

// NewWithClient creates all clients on top of the given RPC client, cfg must
// already be validated.
func NewWithClient(c *rpcclient.Client, cfg config.Config, log *zap.Logger) *SDK {
	if log == nil {
		log = zap.NewNop()
	}
	r := execer.NewFromConfig(cfg)
	a := actor.New(c, r, actor.Options{
		DelegateKey: cfg.ParaPayPrivateKey,
		FeePayer:    cfg.SuperManager.Address,
		Logger:      log,
	})
	return &SDK{
		Client:   c,
		Resolver: r,
		Actor:    a,

		Balance:  balance.New(c, r),
		Chain:    chain.New(c, r),
		System:   system.New(c, r),
		Transfer: transfer.New(c, a),
		Token:    token.New(c, a),
		EVM:      evm.New(c, a),
		Unfreeze: unfreeze.New(c, a),
		Manage:   manage.New(c, a, cfg.SuperManager.PrivateKey),
	}
}

// Close releases idle connections of the RPC client.
func (s *SDK) Close() {
	s.Client.Close()
}
