// Package zappy prices dots on piecewise polynomial bonding curves. It
// validates the flat curve encoding read from the registry contract,
// evaluates prices and bonding costs, and converts curves to and from an
// algebraic text form with ether denominations.
package zappy

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/curve"
	"github.com/zapproject/zappy-sub000/logger"
	"github.com/zapproject/zappy-sub000/metrics"
	"github.com/zapproject/zappy-sub000/onchain"
	"github.com/zapproject/zappy-sub000/types"
	"github.com/zapproject/zappy-sub000/units"
	"github.com/zapproject/zappy-sub000/utils"
	"golang.org/x/sync/errgroup"
)

// Engine wraps the pure curve operations with logging and metrics. It holds
// no curve state and is safe for concurrent use.
type Engine struct {
	logger           logger.Logger
	metrics          metrics.Recorder
	config           *types.EngineConfig
	batchConcurrency int
}

// New creates an Engine from the given configuration. Options are applied
// after the configuration and take precedence over it.
func New(config *types.EngineConfig, opts ...Option) (*Engine, error) {
	if config == nil {
		config = &types.EngineConfig{}
	}
	if err := utils.ValidateEngineConfig(config); err != nil {
		return nil, err
	}

	e := &Engine{
		logger:           logger.NoopLogger{},
		metrics:          metrics.NoopRecorder{},
		config:           config,
		batchConcurrency: runtime.GOMAXPROCS(0),
	}

	if config.LogLevel != "" {
		l, err := logger.NewZapLogger(config.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
		e.logger = l
	}

	if config.EnableMetrics {
		r, err := metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer, config.MetricsNamespace)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		e.metrics = r
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// NewWithDefaults creates an Engine that neither logs nor records metrics
// unless options say otherwise
func NewWithDefaults(opts ...Option) *Engine {
	e, _ := New(&types.EngineConfig{}, opts...)
	return e
}

// Validate parses a raw encoding into a curve
func (e *Engine) Validate(raw []decimal.Decimal) (c *curve.Curve, err error) {
	defer e.observe("validate", time.Now(), &err, map[string]any{"length": len(raw)})

	c, err = curve.Validate(raw)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"pieces": c.Len()}
	if domainMax, ok := c.DomainMax(); ok {
		fields["domain_max"] = domainMax.String()
	}
	e.logger.Debug("curve validated", fields)
	return c, nil
}

// PriceAt returns the price of the dot at supply position x
func (e *Engine) PriceAt(c *curve.Curve, x decimal.Decimal) (price decimal.Decimal, err error) {
	defer e.observe("price_at", time.Now(), &err, map[string]any{"x": x.String()})

	return curve.PriceAt(c, x)
}

// CostOfRange returns the cost of bonding count dots starting at start
func (e *Engine) CostOfRange(c *curve.Curve, start, count decimal.Decimal) (total decimal.Decimal, err error) {
	defer e.observe("cost_of_range", time.Now(), &err, map[string]any{
		"start": start.String(),
		"count": count.String(),
	})

	return curve.CostOfRange(c, start, count)
}

// Quote itemises the cost of bonding count dots starting at start
func (e *Engine) Quote(c *curve.Curve, start, count decimal.Decimal) (quote *types.Quote, err error) {
	defer e.observe("quote", time.Now(), &err, map[string]any{
		"start": start.String(),
		"count": count.String(),
	})

	prices, err := curve.Prices(c, start, count)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p)
	}

	return &types.Quote{
		Start:  start,
		Count:  count,
		Prices: prices,
		Total:  total,
	}, nil
}

// BatchPriceAt prices many supply positions concurrently. The first failure
// cancels the remaining work and is returned.
func (e *Engine) BatchPriceAt(ctx context.Context, c *curve.Curve, xs []decimal.Decimal) (prices []decimal.Decimal, err error) {
	defer e.observe("batch_price_at", time.Now(), &err, map[string]any{"positions": len(xs)})

	prices = make([]decimal.Decimal, len(xs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.batchConcurrency)

	for i, x := range xs {
		i, x := i, x
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := curve.PriceAt(c, x)
			if err != nil {
				return fmt.Errorf("position %d: %w", i, err)
			}
			prices[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}

// Render writes the curve in its algebraic text form
func (e *Engine) Render(c *curve.Curve) string {
	return curve.Render(c)
}

// Parse reads an algebraic expression into a single-piece raw encoding
func (e *Engine) Parse(domainUpperBound decimal.Decimal, expression string) (raw []decimal.Decimal, err error) {
	defer e.observe("parse", time.Now(), &err, map[string]any{"expression": expression})

	raw, err = curve.Parse(domainUpperBound, expression)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("expression parsed", map[string]any{"encoding": curve.Strings(raw)})
	return raw, nil
}

// ParseCurve parses a request's expression and validates the result
func (e *Engine) ParseCurve(req *types.ParseRequest) (*curve.Curve, error) {
	if err := utils.ValidateParseRequest(req); err != nil {
		e.observe("parse", time.Now(), &err, map[string]any{})
		return nil, err
	}

	raw, err := e.Parse(req.DomainUpperBound, req.Expression)
	if err != nil {
		return nil, err
	}
	return e.Validate(raw)
}

// PackCurve ABI encodes the curve as the int256[] stored by the registry
func (e *Engine) PackCurve(c *curve.Curve) (data []byte, err error) {
	defer e.observe("pack", time.Now(), &err, map[string]any{})

	return onchain.Pack(c.Encode())
}

// UnpackCurve decodes and validates an ABI encoded int256[] curve
func (e *Engine) UnpackCurve(data []byte) (*curve.Curve, error) {
	var err error
	defer e.observe("unpack", time.Now(), &err, map[string]any{"bytes": len(data)})

	raw, err := onchain.Unpack(data)
	if err != nil {
		return nil, err
	}

	c, err := curve.Validate(raw)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Encode returns the raw encoding of a validated curve
func (e *Engine) Encode(c *curve.Curve) []decimal.Decimal {
	return c.Encode()
}

// CurveSource supplies stored raw encodings, see clients.RegistryClient
type CurveSource interface {
	ProviderCurve(ctx context.Context, provider common.Address, endpoint string) ([]decimal.Decimal, error)
}

// LoadCurve fetches the curve a provider registered for endpoint and
// validates it
func (e *Engine) LoadCurve(ctx context.Context, src CurveSource, provider common.Address, endpoint string) (c *curve.Curve, err error) {
	source := map[string]any{
		"provider": provider.Hex(),
		"endpoint": endpoint,
	}
	defer e.observe("load", time.Now(), &err, source)

	raw, err := src.ProviderCurve(ctx, provider, endpoint)
	if err != nil {
		return nil, err
	}

	c, err = curve.Validate(raw)
	if err != nil {
		return nil, err
	}

	log := e.logger.With(source)
	if c.IsEmpty() {
		log.Info("provider has no curve", nil)
	} else {
		log.Debug("provider curve loaded", map[string]any{"pieces": c.Len()})
	}
	return c, nil
}

// CurveHash identifies a curve by the keccak256 of its packed encoding
func (e *Engine) CurveHash(c *curve.Curve) (hash common.Hash, err error) {
	defer e.observe("hash", time.Now(), &err, map[string]any{})

	return onchain.Hash(c.Encode())
}

func (e *Engine) observe(op string, start time.Time, errp *error, fields map[string]any) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		err := *errp
		outcome = types.CodeOf(err)
		if outcome == "" {
			outcome = "error"
		}

		fields["code"] = outcome
		fields["error"] = err
		e.logger.Warn(op+" failed", fields)
	}

	e.metrics.IncCounter(op, map[string]string{"outcome": outcome})
	e.metrics.ObserveLatency(op, time.Since(start), nil)
}

// Version information
const (
	Version = "1.0.0"
)

// GetVersion returns version information
func GetVersion() map[string]interface{} {
	return map[string]interface{}{
		"library_version": Version,
		"max_exponent":    curve.MaxExponent,
		"units":           units.Names(),
	}
}
