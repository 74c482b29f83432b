package actor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/chain33-go/chain33/pkg/chainrpc"
	"github.com/chain33-go/chain33/pkg/config"
	"github.com/chain33-go/chain33/pkg/execer"
	"github.com/chain33-go/chain33/pkg/rpcclient"
	"go.uber.org/zap"
)

// ProvisionalGas is the fee used to build a transaction for gas estimation.
const ProvisionalGas int64 = 300000

// BuildFunc creates unsigned transaction with the given fee. It must produce
// the same transaction for every call except for the fee: the node embeds fee
// into transaction bytes, so changing it requires building the transaction
// again.
type BuildFunc func(fee int64) (string, error)

// EstimateGas asks EVM executor for the gas needed by the unsigned
// transaction if it's paid by from.
func (a *Actor) EstimateGas(txHex string, from string) (int64, error) {
	evm, err := a.resolver.Resolve(execer.EVM)
	if err != nil {
		return 0, err
	}
	var res struct {
		Gas json.RawMessage `json:"gas"`
	}
	err = a.client.Call("Query", rpcclient.QueryParams{
		Execer:   evm,
		FuncName: "EstimateGas",
		Payload: map[string]string{
			"tx":   txHex,
			"from": from,
		},
	}, &res)
	if err != nil {
		return 0, err
	}
	gas, err := parseGas(res.Gas)
	if err != nil {
		return 0, chainrpc.NewRequestError(chainrpc.Method("", "Query"), err)
	}
	return gas, nil
}

// SendEstimated builds transaction with ProvisionalGas, estimates real gas
// for it, builds it once more with the estimated gas as the fee and commits
// the second one via FinalSend. Options.FeePayer must be set.
func (a *Actor) SendEstimated(build BuildFunc, privKey string) (string, error) {
	if a.opts.FeePayer == "" {
		return "", &config.Error{Field: "SuperManager.Address", Msg: "fee payer is required for gas estimation"}
	}
	tx, err := build(ProvisionalGas)
	if err != nil {
		return "", err
	}
	gas, err := a.EstimateGas(tx, a.opts.FeePayer)
	if err != nil {
		return "", fmt.Errorf("gas estimation: %w", err)
	}
	a.log.Debug("gas estimated", zap.Int64("gas", gas))
	tx, err = build(gas)
	if err != nil {
		return "", err
	}
	return a.FinalSend(tx, privKey, gas)
}

// parseGas accepts both numbers and decimal strings, nodes encode 64-bit
// integers as strings in query results.
func parseGas(raw json.RawMessage) (int64, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, fmt.Errorf("no gas in estimation result")
	}
	gas, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid gas value %q: %w", s, err)
	}
	if gas < 0 {
		return 0, fmt.Errorf("negative gas value %d", gas)
	}
	return gas, nil
}
