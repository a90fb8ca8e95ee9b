package game

// Snapshot captures the session state for determinism testing and replay
// checks. Uses primitive types only for stable serialization.
type Snapshot struct {
	Run             int
	Tick            uint64
	Score           int
	FoodEaten       int
	SnakeLen        int
	HeadX           int
	HeadZ           int
	Dir             string
	FoodX           int
	FoodZ           int
	SpeedLevel      int
	SpeedMultiplier float64
	IntervalMS      int64
	Status          string
	Reason          string
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	r := s.run
	head := r.grid.Head()
	food := r.grid.Food()

	return Snapshot{
		Run:             s.runs,
		Tick:            r.ticks,
		Score:           r.score,
		FoodEaten:       r.foodEaten,
		SnakeLen:        r.grid.Len(),
		HeadX:           head.X,
		HeadZ:           head.Z,
		Dir:             r.direction.String(),
		FoodX:           food.X,
		FoodZ:           food.Z,
		SpeedLevel:      r.speedLevel,
		SpeedMultiplier: s.SpeedMultiplier(),
		IntervalMS:      s.Interval().Milliseconds(),
		Status:          r.status.String(),
		Reason:          r.reason.String(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)
	h = h*31 + uint64(snap.Run)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SnakeLen)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HeadX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HeadZ)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FoodX+1)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FoodZ+1)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SpeedLevel) //#nosec G115 -- hash computation
	for _, c := range snap.Dir + snap.Status + snap.Reason {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	return h
}

