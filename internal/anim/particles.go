package anim

import (
	"math/rand"

	"github.com/chillax-ai/codemap/internal/graph"
)

// Particle is one short-lived decorative spark. Purely visual: particles
// never affect entity timing or state.
type Particle struct {
	Pos         graph.Vec2
	Vel         graph.Vec2
	Color       string
	Lifetime    float64
	MaxLifetime float64
	Size        float64
}

// Alive reports whether the particle should still be drawn.
func (p *Particle) Alive() bool {
	return p.Lifetime > 0
}

// Alpha is the fade factor for drawing, 1 at birth down to 0 at death.
// Eased so a young spark holds near-full brightness before dropping off.
func (p *Particle) Alpha() float64 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	a := p.Lifetime / p.MaxLifetime
	if a < 0 {
		return 0
	}
	return InOutQuad(a)
}

// ParticleSystem owns all live particles. The rand source is injected so
// tests can seed it; it is never shared with other components.
type ParticleSystem struct {
	particles []*Particle
	rng       *rand.Rand
}

// NewParticleSystem creates an empty system using the given source.
func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{rng: rng}
}

// Emit spawns count particles at pos with random velocities within spread.
func (s *ParticleSystem) Emit(pos graph.Vec2, color string, count int, spread, lifetime, size float64) {
	for i := 0; i < count; i++ {
		s.particles = append(s.particles, &Particle{
			Pos: pos,
			Vel: graph.Vec2{
				X: s.rng.Float64()*2*spread - spread,
				Y: s.rng.Float64()*2*spread - spread,
			},
			Color:       color,
			Lifetime:    lifetime,
			MaxLifetime: lifetime,
			Size:        size,
		})
	}
}

// Update advances all particles by dt and drops the dead ones.
func (s *ParticleSystem) Update(dt float64) {
	live := s.particles[:0]
	for _, p := range s.particles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt * 60))
		p.Lifetime -= dt
		if p.Alive() {
			live = append(live, p)
		}
	}
	s.particles = live
}

// Live returns the current particles for drawing.
func (s *ParticleSystem) Live() []*Particle {
	return s.particles
}

// Chance returns true with the given probability.
func (s *ParticleSystem) Chance(p float64) bool {
	return s.rng.Float64() < p
}
