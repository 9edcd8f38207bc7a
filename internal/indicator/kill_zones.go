package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Session state values emitted by kill_zones_session.
const (
	SessionTokyo   = "tokyo"
	SessionLondon  = "london"
	SessionNewYork = "newyork"
	SessionOff     = ""
)

// KillZones marks bars that fall inside configured intraday session windows.
// Hours are interpreted in UTC against the bar open time. A window whose end
// hour is below its start hour wraps past midnight.
type KillZones struct{}

// NewKillZones creates the kill zones module.
func NewKillZones() Module {
	return &KillZones{}
}

// ID implements Module.
func (k *KillZones) ID() types.ModuleID {
	return types.ModuleIDKillZones
}

// Schema implements Module.
func (k *KillZones) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "tokyo_start", Label: "Tokyo Start (UTC hour)", Type: FieldTypeInt, Default: 0, Min: 0, Max: 23},
			{Name: "tokyo_end", Label: "Tokyo End (UTC hour)", Type: FieldTypeInt, Default: 6, Min: 0, Max: 23},
			{Name: "london_start", Label: "London Start (UTC hour)", Type: FieldTypeInt, Default: 7, Min: 0, Max: 23},
			{Name: "london_end", Label: "London End (UTC hour)", Type: FieldTypeInt, Default: 12, Min: 0, Max: 23},
			{Name: "newyork_start", Label: "New York Start (UTC hour)", Type: FieldTypeInt, Default: 13, Min: 0, Max: 23},
			{Name: "newyork_end", Label: "New York End (UTC hour)", Type: FieldTypeInt, Default: 20, Min: 0, Max: 23},
		},
	}
}

// Compute implements Module.
func (k *KillZones) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := k.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	windows := []struct {
		name       string
		start, end int
	}{
		{SessionTokyo, cfg.Int("tokyo_start"), cfg.Int("tokyo_end")},
		{SessionLondon, cfg.Int("london_start"), cfg.Int("london_end")},
		{SessionNewYork, cfg.Int("newyork_start"), cfg.Int("newyork_end")},
	}

	times := series.Times()
	n := series.Len()

	inZone := make([]bool, n)
	session := make([]string, n)

	for i := 0; i < n; i++ {
		hour := times[i].UTC().Hour()
		for _, w := range windows {
			if hourInWindow(hour, w.start, w.end) {
				inZone[i] = true
				session[i] = w.name

				break
			}
		}
	}

	return ColumnSet{
		"kill_zones":         FlagColumn(inZone),
		"kill_zones_session": StateColumn(session),
	}, nil
}

func hourInWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour < end
	}

	// Wraps past midnight.
	return hour >= start || hour < end
}
