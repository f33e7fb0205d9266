package model

// Particle is a particle effect definition. The emitter payload is
// opaque to the module system.
type Particle struct {
	Name    string         `json:"name"`
	Sprite  string         `json:"sprite"`
	Emitter map[string]any `json:"emitter"`
}

func (Particle) Kind() Kind { return KindParticle }

// StateRules is a named set of state-driven selector rules.
type StateRules struct {
	Name  string           `json:"name"`
	Rules []map[string]any `json:"rules"`
}

func (StateRules) Kind() Kind { return KindStateRules }
