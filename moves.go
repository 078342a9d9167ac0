package cubebot

// Predefined moves for convenience.
//
// Example:
//
//	robot.Apply(ctx, cubebot.R, cubebot.U, cubebot.RPrime, cubebot.UPrime)
var (
	// Up face moves
	U      = Move{Face: Up, Degrees: Clockwise}
	UPrime = Move{Face: Up, Degrees: CounterClockwise}
	U2     = Move{Face: Up, Degrees: HalfTurn}

	// Front face moves
	F      = Move{Face: Front, Degrees: Clockwise}
	FPrime = Move{Face: Front, Degrees: CounterClockwise}
	F2     = Move{Face: Front, Degrees: HalfTurn}

	// Right face moves
	R      = Move{Face: Right, Degrees: Clockwise}
	RPrime = Move{Face: Right, Degrees: CounterClockwise}
	R2     = Move{Face: Right, Degrees: HalfTurn}

	// Down face moves
	D      = Move{Face: Down, Degrees: Clockwise}
	DPrime = Move{Face: Down, Degrees: CounterClockwise}
	D2     = Move{Face: Down, Degrees: HalfTurn}

	// Back face moves
	B      = Move{Face: Back, Degrees: Clockwise}
	BPrime = Move{Face: Back, Degrees: CounterClockwise}
	B2     = Move{Face: Back, Degrees: HalfTurn}

	// Left face moves
	L      = Move{Face: Left, Degrees: Clockwise}
	LPrime = Move{Face: Left, Degrees: CounterClockwise}
	L2     = Move{Face: Left, Degrees: HalfTurn}
)

// SexyMove is R U R' U', a common test sequence.
var SexyMove = []Move{R, U, RPrime, UPrime}
