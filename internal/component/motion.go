package component

// Position is an entity's location on the simulation plane.
// Pure data; systems do all mutation.
type Position struct {
	X float64
	Y float64
}

// Velocity is applied to Position once per second of simulated time.
type Velocity struct {
	DX float64
	DY float64
}

// Frozen marks an entity the movement system must skip.
type Frozen struct{}
