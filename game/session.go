package game

import "github.com/plus3/invaders/ecs"

// Input is the presentation layer's view of the controls for one tick.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Restart bool
}

// Playfield is half the visible area; the origin is the center of the screen.
type Playfield struct {
	HalfWidth  float32
	HalfHeight float32
}

// PlayfieldFor returns the playfield of a w x h window.
func PlayfieldFor(w, h int) Playfield {
	return Playfield{HalfWidth: float32(w) / 2, HalfHeight: float32(h) / 2}
}

// Clock is the monotonic simulation time in seconds.
type Clock struct {
	Elapsed float64
}

type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	s.Clock.Get().Elapsed += frame.DeltaTime
}

// never marks a timestamp that has not happened yet.
const never = -1

// PlayerState tracks the player's life cycle between spawns.
type PlayerState struct {
	Alive     bool
	LastDeath float64 // seconds; negative means never
	LastFire  float64 // seconds; negative means never
}

func (p *PlayerState) Spawned() {
	p.Alive = true
	p.LastDeath = never
}

func (p *PlayerState) Shot(now float64) {
	p.Alive = false
	p.LastDeath = now
}

// Session holds the counters shared by the gameplay systems for one round.
type Session struct {
	Score      uint32
	EnemyCount uint32
	PlayerLife uint32
	Player     PlayerState
}

func newSession(maxLife uint32) Session {
	return Session{
		PlayerLife: maxLife,
		Player:     PlayerState{LastDeath: never, LastFire: never},
	}
}

// Reset starts a new round.
func (s *Session) Reset(maxLife uint32) {
	*s = newSession(maxLife)
}

// EnemyDestroyed credits a kill. EnemyCount never goes below zero.
func (s *Session) EnemyDestroyed() {
	if s.EnemyCount > 0 {
		s.EnemyCount--
	}
	s.Score++
}

// LoseLife takes one life, never going below zero, and returns what is left.
func (s *Session) LoseLife() uint32 {
	if s.PlayerLife > 0 {
		s.PlayerLife--
	}
	return s.PlayerLife
}
