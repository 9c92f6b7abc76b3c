package game

import (
	"gleap/geom"
	"gleap/input"
)

// Update advances the simulation by one frame. It does nothing unless the
// session is Playing.
func (s *Session) Update(in input.State) {
	if s.mode != Playing {
		return
	}
	s.lostThisFrame = false

	s.updatePlayer(in)
	s.updatePlatforms()
	s.updateEnemies()

	// A frame that cost a life cannot also finish the level.
	if s.mode == Playing && !s.lostThisFrame && geom.Collides(s.player.Rect(), s.level.Portal) {
		s.completeLevel()
	}
	if s.mode == Playing && !s.lostThisFrame && s.player.Pos.Y > s.rules.CanvasHeight {
		s.loseLife()
	}

	if s.lostThisFrame && s.mode == Playing && s.levelReset {
		s.loadLevel()
	}

	s.updateParticles()

	s.shake -= s.rules.ShakeDecay
	if s.shake < 0 {
		s.shake = 0
	}
}

func (s *Session) updatePlayer(in input.State) {
	p := &s.player

	p.Vel.X = 0
	if in.Left {
		p.Vel.X = -s.rules.PlayerSpeed
	}
	if in.Right {
		p.Vel.X = s.rules.PlayerSpeed
	}

	if in.Jump && p.OnGround {
		p.Vel.Y = s.rules.JumpForce
		p.OnGround = false
		s.play(cueJump)
		r := p.Rect()
		s.spawnParticles(r.CenterX(), r.Bottom(), s.rules.JumpParticles)
	}

	p.Vel.Y += s.level.Gravity
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
}

func (s *Session) updatePlatforms() {
	p := &s.player
	p.OnGround = false

	for i := range s.level.Platforms {
		plat := &s.level.Platforms[i]
		plat.X += plat.VX

		// Land only when falling and the player's top is still above the platform's.
		if geom.Collides(p.Rect(), plat.Rect) && p.Vel.Y > 0 && p.Pos.Y < plat.Top() {
			p.Pos.Y = plat.Top() - p.H
			p.Vel.Y = 0
			p.OnGround = true
			s.shake = s.rules.LandingShake
			if plat.Falls {
				plat.Falling = true
			}
		}

		if plat.Falling {
			plat.Y += s.rules.FallRate
		}
	}
}

func (s *Session) updateEnemies() {
	maxX := s.rules.CanvasWidth

	for i := range s.level.Enemies {
		e := &s.level.Enemies[i]
		e.X += e.VX
		if e.X < 0 || e.X > maxX-e.W {
			e.VX = -e.VX
		}
		if s.level.Chaos > 0 && s.rng.Float64() < s.rules.ChaosReversalChance {
			e.VX = -e.VX
		}

		if s.mode != Playing || (s.singleLoss && s.lostThisFrame) {
			continue
		}
		if geom.Collides(s.player.Rect(), e.Rect) {
			s.loseLife()
		}
	}
}

func (s *Session) updateParticles() {
	alive := s.particles[:0]
	for _, pt := range s.particles {
		pt.Pos.X += pt.Vel.X
		pt.Pos.Y += pt.Vel.Y
		pt.Life--
		if pt.Life > 0 {
			alive = append(alive, pt)
		}
	}
	s.particles = alive
}

func (s *Session) spawnParticles(x, y float64, count int) {
	for i := 0; i < count; i++ {
		s.particles = append(s.particles, Particle{
			Pos:  geom.Vec2{X: x + s.rng.Float64()*20 - 10, Y: y},
			Vel:  geom.Vec2{X: s.rng.Float64()*4 - 2, Y: s.rng.Float64() * -4},
			Life: s.rules.ParticleLife,
		})
	}
}

func (s *Session) loseLife() {
	s.lostThisFrame = true
	s.lives--
	s.shake = s.rules.DeathShake
	s.play(cueDeath)
	feet := s.player.Rect()
	s.spawnParticles(feet.CenterX(), feet.Bottom(), s.rules.DeathParticles)

	if s.lives <= 0 {
		s.lives = 0
		s.gameOver()
		return
	}

	s.resetPlayer()
}

func (s *Session) completeLevel() {
	s.mode = LevelComplete
	s.score += 100 * s.current
	s.play(cueComplete)
}
