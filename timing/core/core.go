// Package core provides the cycle-level vector core model.
// It wraps the functional emulator and charges each instruction the latency
// of its execution unit plus, for memory instructions, the vector cache.
package core

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/sarchlab/lanealu/emu"
	"github.com/sarchlab/lanealu/insts"
	"github.com/sarchlab/lanealu/timing/cache"
	"github.com/sarchlab/lanealu/timing/latency"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Stalls is the number of cycles spent waiting on a busy unit.
	Stalls uint64
	// CacheHits and CacheMisses count vector cache accesses.
	CacheHits   uint64
	CacheMisses uint64
	// Writebacks counts dirty lines evicted by VLD/VST.
	Writebacks uint64
}

// CPI returns cycles per instruction, or 0 before the first instruction.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}

// Core is an in-order core that issues one instruction when the previous one
// has finished.
type Core struct {
	emulator *emu.Emulator
	latency  *latency.Table
	l1v      *cache.Cache // nil means memory costs only its base latency
	log      logr.Logger

	stats   Stats
	busy    uint64
	halting bool
	err     error
}

// Option configures a Core.
type Option func(*Core)

// WithLogger sets the logger. Every issued instruction is logged at V(1).
func WithLogger(log logr.Logger) Option {
	return func(c *Core) {
		c.log = log
	}
}

// WithCache attaches a vector data cache.
func WithCache(l1v *cache.Cache) Option {
	return func(c *Core) {
		c.l1v = l1v
	}
}

// NewCore creates a Core that times the given emulator.
func NewCore(emulator *emu.Emulator, table *latency.Table, opts ...Option) *Core {
	c := &Core{
		emulator: emulator,
		latency:  table,
		log:      logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Emulator returns the emulator holding the architectural state.
func (c *Core) Emulator() *emu.Emulator {
	return c.emulator
}

// Halted returns true once HALT has issued and its latency has elapsed.
func (c *Core) Halted() bool {
	return c.halting && c.busy == 0
}

// Err returns the error that stopped the core, if any.
func (c *Core) Err() error {
	return c.err
}

// Tick advances the core by one cycle.
func (c *Core) Tick() {
	if c.Halted() || c.err != nil {
		return
	}

	c.stats.Cycles++

	if c.busy > 0 {
		c.busy--
		c.stats.Stalls++
		return
	}

	result := c.emulator.Step()
	if result.Err != nil {
		c.err = result.Err
		return
	}

	c.stats.Instructions++
	cost := c.cost(result.Inst)
	c.busy = cost - 1
	c.halting = result.Halted

	c.log.V(1).Info("issue",
		"cycle", c.stats.Cycles,
		"pc", fmt.Sprintf("0x%X", result.PC),
		"inst", result.Inst.String(),
		"latency", cost)
}

// cost returns the cycles inst occupies the core, at least 1.
func (c *Core) cost(inst *insts.Instruction) uint64 {
	cycles := c.latency.GetLatency(inst)

	if c.l1v != nil && inst.IsMemory() {
		access := c.l1v.Access(inst.Address(), c.latency.IsStoreOp(inst))
		cycles += access.Latency
		if access.Hit {
			c.stats.CacheHits++
		} else {
			c.stats.CacheMisses++
		}
		if access.Writeback {
			c.stats.Writebacks++
		}
	}

	if cycles == 0 {
		cycles = 1
	}
	return cycles
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	return c.stats
}

// Run ticks the core until it halts or the emulator reports an error.
func (c *Core) Run() (Stats, error) {
	for !c.Halted() && c.err == nil {
		c.Tick()
	}
	return c.stats, c.err
}

// RunCycles executes the core for the specified number of cycles.
// Returns true if still running, false if halted or stopped by an error.
func (c *Core) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles; i++ {
		if c.Halted() || c.err != nil {
			return false
		}
		c.Tick()
	}
	return !c.Halted() && c.err == nil
}

// Reset clears timing state and the cache. Registers, memory and the PC
// belong to the emulator and are left as they are.
func (c *Core) Reset() {
	c.stats = Stats{}
	c.busy = 0
	c.halting = false
	c.err = nil
	if c.l1v != nil {
		c.l1v.Reset()
	}
}
