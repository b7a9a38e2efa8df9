package runner

// Status of a runner session.
type Status string

const (
	Idle     Status = "idle"
	Playing  Status = "playing"
	Paused   Status = "paused"
	GameOver Status = "gameOver"
)

// Kind is the obstacle variety.
type Kind string

const (
	Low    Kind = "low"    // ground obstacle, must be jumped
	Flying Kind = "flying" // passes over a standing actor
)

// Kinds lists obstacle kinds in draw order; spawn picks uniformly.
var Kinds = []Kind{Low, Flying}

// Obstacle is an axis-aligned box moving right to left.
type Obstacle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Kind   Kind    `json:"kind"`
}

// Actor is the player-controlled box.
type Actor struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	VelocityY float64 `json:"velocityY"`
	IsJumping bool    `json:"isJumping"`
}

// State is the mutable simulation state, replaced wholesale on restart.
type State struct {
	Actor     Actor      `json:"actor"`
	Obstacles []Obstacle `json:"obstacles"`
	Score     int        `json:"score"`
	Speed     float64    `json:"speed"`
	GroundY   float64    `json:"groundY"`
}

// Snapshot is the renderer view of one frame.
type Snapshot struct {
	State
	Status       Status  `json:"status"`
	Frame        uint64  `json:"frame"`
	DisplayScore int     `json:"displayScore"`
	HighScore    int     `json:"highScore"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
}
