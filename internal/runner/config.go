package runner

// Config holds the simulation constants. All distances are in canvas units
// and all rates are per Advance call.
type Config struct {
	CanvasWidth  float64
	CanvasHeight float64
	GroundY      float64 // y of the ground line

	ActorX       float64
	ActorY       float64 // resting y (top edge) of the actor
	ActorWidth   float64
	ActorHeight  float64
	Gravity      float64
	JumpImpulse  float64 // initial velocityY of a jump, negative is up
	InitialSpeed float64

	SpeedStep  float64 // added to speed every SpeedEvery score units
	SpeedEvery int

	SpawnOffset float64 // new obstacles appear at CanvasWidth+SpawnOffset
	SpawnGap    float64 // trailing obstacle must be left of CanvasWidth-SpawnGap-jitter
	SpawnJitter float64 // upper bound of the random part of the gap
}

// DefaultConfig matches the classic 800x200 canvas.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  800,
		CanvasHeight: 200,
		GroundY:      180,
		ActorX:       50,
		ActorY:       150,
		ActorWidth:   20,
		ActorHeight:  20,
		Gravity:      0.5,
		JumpImpulse:  -12,
		InitialSpeed: 2,
		SpeedStep:    0.2,
		SpeedEvery:   100,
		SpawnOffset:  100,
		SpawnGap:     200,
		SpawnJitter:  200,
	}
}

// profile is the fixed size and vertical offset of an obstacle kind.
type profile struct {
	y, width, height float64
}

var profiles = map[Kind]profile{
	Low:    {y: 160, width: 10, height: 20},
	Flying: {y: 130, width: 15, height: 10},
}
