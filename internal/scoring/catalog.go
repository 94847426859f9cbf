package scoring

import (
	"fmt"
	"sort"
)

// Dims lists the six use-case dimensions in scoring order: time-to-value,
// integrations, knowledge/RAG, multi-agent, privacy/compliance, maturity.
var Dims = []string{"D1", "D2", "D3", "D4", "D5", "D6"}

// CapabilityVector rates a framework on the fixed capability axes. Values
// must stay within [0,1].
type CapabilityVector map[string]float64

// WeightVector maps a subset of capability axes to non-negative weights.
// Weights above 1 act as amplifiers.
type WeightVector map[string]float64

// DimVector holds one value per D1..D6 dimension.
type DimVector map[string]float64

// Catalog is the immutable scoring reference data: per-framework capability
// vectors, per-signal weight vectors and the dimension weight/multiplier
// tables. Construct it once at process start and pass it by reference.
type Catalog struct {
	capabilities map[string]CapabilityVector
	weights      map[string]WeightVector
	priorityDims map[string]DimVector
	agentMults   map[string]DimVector
	skillMults   map[string]DimVector
}

// NewCatalog builds a catalog from explicit tables. Nil tables are allowed
// and behave as empty.
func NewCatalog(capabilities map[string]CapabilityVector, weights map[string]WeightVector, priorityDims, agentMults, skillMults map[string]DimVector) *Catalog {
	return &Catalog{
		capabilities: capabilities,
		weights:      weights,
		priorityDims: priorityDims,
		agentMults:   agentMults,
		skillMults:   skillMults,
	}
}

// Frameworks returns the names of all frameworks with a capability vector,
// sorted for deterministic iteration.
func (c *Catalog) Frameworks() []string {
	names := make([]string, 0, len(c.capabilities))
	for name := range c.capabilities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Capability returns the capability vector for the named framework.
func (c *Catalog) Capability(framework string) (CapabilityVector, bool) {
	cap, ok := c.capabilities[framework]
	return cap, ok
}

// Weight returns the weight vector registered under the given signal key.
func (c *Catalog) Weight(key string) (WeightVector, bool) {
	w, ok := c.weights[key]
	return w, ok
}

// PriorityDimWeights returns the D1..D6 weight row for a priority key,
// falling back to a neutral all-1.0 row for unknown priorities.
func (c *Catalog) PriorityDimWeights(priority string) DimVector {
	if row, ok := c.priorityDims[priority]; ok {
		return row
	}
	return neutralDims()
}

// AgentTypeMultipliers returns the per-dimension multipliers for the given
// agent type, neutral when the type is unrecognized.
func (c *Catalog) AgentTypeMultipliers(agentType string) DimVector {
	if row, ok := c.agentMults[agentType]; ok {
		return row
	}
	return neutralDims()
}

// SkillMultipliers returns the per-dimension multipliers for the given
// experience level, neutral when the level is empty or unrecognized.
func (c *Catalog) SkillMultipliers(level string) DimVector {
	if level == "" {
		return neutralDims()
	}
	if row, ok := c.skillMults[level]; ok {
		return row
	}
	return neutralDims()
}

// Validate checks the catalog invariants: capability values within [0,1] and
// no negative weights or multipliers.
func (c *Catalog) Validate() error {
	for name, cap := range c.capabilities {
		for axis, v := range cap {
			if v < 0 || v > 1 {
				return fmt.Errorf("framework %q: capability %q is %v, must be within [0,1]", name, axis, v)
			}
		}
	}
	for key, w := range c.weights {
		for axis, v := range w {
			if v < 0 {
				return fmt.Errorf("signal %q: weight %q is negative", key, axis)
			}
		}
	}
	for _, tables := range []map[string]DimVector{c.priorityDims, c.agentMults, c.skillMults} {
		for key, row := range tables {
			for d, v := range row {
				if v < 0 {
					return fmt.Errorf("dimension table %q: %s is negative", key, d)
				}
			}
		}
	}
	return nil
}

func neutralDims() DimVector {
	row := make(DimVector, len(Dims))
	for _, d := range Dims {
		row[d] = 1.0
	}
	return row
}
