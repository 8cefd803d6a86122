package component

type Clip string

const (
	ClipIdle   Clip = "idle"
	ClipWalk   Clip = "walk"
	ClipSprint Clip = "sprint"
	ClipJump   Clip = "jump"
	ClipFall   Clip = "fall"
	ClipLand   Clip = "land"
)

// Animation receives locomotion signals every tick and holds the clip chosen
// from them. It implements locomotion.AnimationSink.
type Animation struct {
	Grounded bool
	Forward  float64
	Vertical float64
	Jumped   bool

	Current  Clip
	Previous Clip
	// Time is seconds spent in Current.
	Time float64

	// WalkThreshold and SprintThreshold are forward speeds that switch clips.
	WalkThreshold   float64
	SprintThreshold float64
}

func NewAnimation(walkSpeed, sprintSpeed float64) *Animation {
	return &Animation{
		Current:         ClipIdle,
		Grounded:        true,
		WalkThreshold:   walkSpeed * 0.1,
		SprintThreshold: (walkSpeed + sprintSpeed) / 2,
	}
}

func (a *Animation) SetGrounded(grounded bool) { a.Grounded = grounded }
func (a *Animation) DoJump()                   { a.Jumped = true }

func (a *Animation) SetSpeeds(forward, vertical float64) {
	a.Forward = forward
	a.Vertical = vertical
}

var AnimationComponent = NewComponent[Animation]()
