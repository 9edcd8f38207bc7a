package indicator

import (
	"sync"

	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
)

// Registry manages all available indicator modules. The condition evaluator
// receives it as an injected lookup capability; there is no process-wide
// mutable registry state.
type Registry interface {
	Register(module Module) error
	Resolve(id types.ModuleID) (Module, error)
	List() []types.ModuleID
	Remove(id types.ModuleID) error
}

// RegistryV1 manages all available indicator modules.
type RegistryV1 struct {
	modules map[types.ModuleID]Module
	mu      sync.RWMutex
}

// NewRegistry creates an empty module registry.
func NewRegistry() Registry {
	return &RegistryV1{
		modules: make(map[types.ModuleID]Module),
		mu:      sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry with every built-in module registered.
func NewDefaultRegistry() Registry {
	registry := NewRegistry()

	builtins := []Module{
		NewRSI(),
		NewStochastic(),
		NewCCI(),
		NewWilliamsR(),
		NewROC(),
		NewMFI(),
		NewSMA(),
		NewEMA(),
		NewMACD(),
		NewADX(),
		NewSupertrend(),
		NewIchimoku(),
		NewATR(),
		NewBollingerBands(),
		NewKeltnerChannels(),
		NewVWAP(),
		NewOBV(),
		NewCMF(),
		NewPivotPoints(),
		NewFibonacci(),
		NewFairValueGaps(),
		NewOrderBlocks(),
		NewLiquiditySweep(),
		NewDisplacement(),
		NewKillZones(),
		NewMarketBias(),
		NewPrice(),
	}

	for _, module := range builtins {
		// Built-in ids are unique by construction.
		_ = registry.Register(module)
	}

	return registry
}

// Register adds a module to the registry.
func (r *RegistryV1) Register(module Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := module.ID()
	if _, exists := r.modules[id]; exists {
		return errors.Newf(errors.ErrCodeModuleAlreadyExists, "Register: module with id %s already registered", id)
	}

	r.modules[id] = module

	return nil
}

// Resolve retrieves a module by id.
func (r *RegistryV1) Resolve(id types.ModuleID) (Module, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	module, exists := r.modules[id]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeModuleNotFound, "Resolve: module with id %s not found", id)
	}

	return module, nil
}

// List returns all registered module ids.
func (r *RegistryV1) List() []types.ModuleID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]types.ModuleID, 0, len(r.modules))
	for id := range r.modules {
		ids = append(ids, id)
	}

	return ids
}

// Remove removes a module from the registry.
func (r *RegistryV1) Remove(id types.ModuleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[id]; !exists {
		return errors.Newf(errors.ErrCodeModuleNotFound, "Remove: module with id %s not found", id)
	}

	delete(r.modules, id)

	return nil
}
