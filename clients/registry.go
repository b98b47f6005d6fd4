package clients

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/onchain"
	"github.com/zapproject/zappy-sub000/types"
)

// registryABI is the read-only slice of the registry contract used here
const registryABI = `[
	{
		"constant": true,
		"inputs": [
			{"name": "provider", "type": "address"},
			{"name": "endpoint", "type": "bytes32"}
		],
		"name": "getProviderCurve",
		"outputs": [{"name": "", "type": "int256[]"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "provider", "type": "address"},
			{"name": "endpoint", "type": "bytes32"}
		],
		"name": "getProviderCurveLength",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	}
]`

const (
	methodProviderCurve       = "getProviderCurve"
	methodProviderCurveLength = "getProviderCurveLength"
)

// RegistryClient reads provider curves from the registry contract with eth_call
type RegistryClient struct {
	caller   ethereum.ContractCaller
	registry common.Address
	abi      abi.ABI
	closer   func()
}

// NewRegistryClient wraps any contract caller, usually an *ethclient.Client
func NewRegistryClient(caller ethereum.ContractCaller, registry common.Address) (*RegistryClient, error) {
	parsed, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry ABI: %w", err)
	}

	return &RegistryClient{
		caller:   caller,
		registry: registry,
		abi:      parsed,
		closer:   func() {},
	}, nil
}

// DialRegistry connects to an RPC endpoint and returns a client for the
// registry deployed at registry
func DialRegistry(rpcURL string, registry common.Address) (*RegistryClient, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
	}

	r, err := NewRegistryClient(client, registry)
	if err != nil {
		client.Close()
		return nil, err
	}
	r.closer = client.Close
	return r, nil
}

// Close releases the RPC connection when the client owns one
func (r *RegistryClient) Close() {
	r.closer()
}

// Registry returns the contract address queried
func (r *RegistryClient) Registry() common.Address {
	return r.registry
}

// EndpointKey converts an endpoint specifier to the bytes32 the registry is
// keyed by. The name is right padded with zero bytes.
func EndpointKey(endpoint string) ([32]byte, error) {
	var key [32]byte
	if endpoint == "" || len(endpoint) > len(key) {
		return key, types.NewCurveError(types.ErrInvalidEndpoint,
			"endpoint %q must be between 1 and %d bytes", endpoint, len(key))
	}
	copy(key[:], endpoint)
	return key, nil
}

// ProviderCurve returns the raw encoding stored for provider's endpoint.
// The result is not validated.
func (r *RegistryClient) ProviderCurve(ctx context.Context, provider common.Address, endpoint string) ([]decimal.Decimal, error) {
	out, err := r.call(ctx, methodProviderCurve, provider, endpoint)
	if err != nil {
		return nil, err
	}

	values, ok := out[0].([]*big.Int)
	if !ok {
		return nil, types.NewCurveError(types.ErrInvalidEncoding,
			"unexpected %s result type %T", methodProviderCurve, out[0])
	}
	return onchain.FromBigInts(values), nil
}

// ProviderCurveLength returns the number of words in provider's stored curve
func (r *RegistryClient) ProviderCurveLength(ctx context.Context, provider common.Address, endpoint string) (int64, error) {
	out, err := r.call(ctx, methodProviderCurveLength, provider, endpoint)
	if err != nil {
		return 0, err
	}

	length, ok := out[0].(*big.Int)
	if !ok || !length.IsInt64() {
		return 0, types.NewCurveError(types.ErrInvalidEncoding,
			"unexpected %s result %v", methodProviderCurveLength, out[0])
	}
	return length.Int64(), nil
}

func (r *RegistryClient) call(ctx context.Context, method string, provider common.Address, endpoint string) ([]interface{}, error) {
	key, err := EndpointKey(endpoint)
	if err != nil {
		return nil, err
	}

	callData, err := r.abi.Pack(method, provider, key)
	if err != nil {
		return nil, err
	}

	msg := ethereum.CallMsg{
		To:   &r.registry,
		Data: callData,
	}

	raw, err := r.caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, &types.CurveError{
			Code:    types.ErrRegistryCall,
			Message: fmt.Sprintf("%s(%s, %q) failed: %v", method, provider.Hex(), endpoint, err),
			Data:    types.ExtraData{"provider": provider.Hex(), "endpoint": endpoint},
		}
	}

	out, err := r.abi.Unpack(method, raw)
	if err != nil {
		return nil, types.NewCurveError(types.ErrInvalidEncoding,
			"failed to decode %s result: %v", method, err)
	}
	if len(out) != 1 {
		return nil, types.NewCurveError(types.ErrInvalidEncoding,
			"%s returned %d values", method, len(out))
	}
	return out, nil
}
