package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
)

// labelBinding maps a strategy indicator label to a module, a preset
// configuration, and optionally a pinned output column.
type labelBinding struct {
	module types.ModuleID
	config map[string]any
	column optional.Option[string]
}

// labelTable is the indicator label mapping. It is data, not dispatch logic:
// a label either binds here, names a module id directly, or the strategy is
// rejected. There is no fallback module.
var labelTable = map[string]labelBinding{
	"rsi":       {module: types.ModuleIDRSI},
	"adx":       {module: types.ModuleIDADX},
	"macd":      {module: types.ModuleIDMACD},
	"atr":       {module: types.ModuleIDATR},
	"price":     {module: types.ModuleIDPrice},
	"sma_20":    {module: types.ModuleIDSMA, config: map[string]any{"period": 20}},
	"sma_50":    {module: types.ModuleIDSMA, config: map[string]any{"period": 50}},
	"sma_200":   {module: types.ModuleIDSMA, config: map[string]any{"period": 200}},
	"ema_20":    {module: types.ModuleIDEMA, config: map[string]any{"period": 20}},
	"ema_50":    {module: types.ModuleIDEMA, config: map[string]any{"period": 50}},
	"bb_upper":  {module: types.ModuleIDBollingerBands, column: optional.Some("bollinger_bands_upper")},
	"bb_middle": {module: types.ModuleIDBollingerBands, column: optional.Some("bollinger_bands_middle")},
	"bb_lower":  {module: types.ModuleIDBollingerBands, column: optional.Some("bollinger_bands_lower")},
}

// moduleIDs is the set of directly addressable module identifiers.
var moduleIDs = map[types.ModuleID]struct{}{
	types.ModuleIDRSI:             {},
	types.ModuleIDStochastic:      {},
	types.ModuleIDCCI:             {},
	types.ModuleIDWilliamsR:       {},
	types.ModuleIDROC:             {},
	types.ModuleIDMFI:             {},
	types.ModuleIDSMA:             {},
	types.ModuleIDEMA:             {},
	types.ModuleIDMACD:            {},
	types.ModuleIDADX:             {},
	types.ModuleIDSupertrend:      {},
	types.ModuleIDIchimoku:        {},
	types.ModuleIDATR:             {},
	types.ModuleIDBollingerBands:  {},
	types.ModuleIDKeltnerChannels: {},
	types.ModuleIDVWAP:            {},
	types.ModuleIDOBV:             {},
	types.ModuleIDCMF:             {},
	types.ModuleIDPivotPoints:     {},
	types.ModuleIDFibonacci:       {},
	types.ModuleIDFairValueGaps:   {},
	types.ModuleIDOrderBlocks:     {},
	types.ModuleIDLiquiditySweep:  {},
	types.ModuleIDDisplacement:    {},
	types.ModuleIDKillZones:       {},
	types.ModuleIDMarketBias:      {},
	types.ModuleIDPrice:           {},
}

// resolveLabel binds an indicator label. Unknown labels are a build error,
// never a substitution.
func resolveLabel(label string) (labelBinding, error) {
	if binding, ok := labelTable[label]; ok {
		return binding, nil
	}

	if _, ok := moduleIDs[types.ModuleID(label)]; ok {
		return labelBinding{module: types.ModuleID(label)}, nil
	}

	return labelBinding{}, errors.NewDetailed(errors.ErrCodeUnknownLabel,
		"unknown indicator label "+label,
		map[string]string{"label": label})
}
