// Package cubebot drives a two-motor robot that grips, spins and flips a
// twisty puzzle cube, turning symbolic face-turn notation into physical moves.
//
// # Features
//
//   - Strict move notation parsing (U, U', U2 ...)
//   - Orientation tracking of the faces held at Up, Front and Right
//   - Minimal reorientation planning before every face turn
//   - Backlash-compensated turntable and grip sequencing
//   - Colour scan and solve workflow over pluggable collaborators
//
// # Quick Start
//
// Plan a move without any hardware:
//
//	plan, err := cubebot.PlanMove(cubebot.DefaultOrientation, cubebot.R)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(plan.Actions()) // release spin(-90) flip grab spin(-90,22)
//
// Drive a robot through a Mechanism (see internal/motion for the motor rig):
//
//	robot := cubebot.NewRobot(rig, cubebot.WithLogger(logger))
//	if err := robot.Home(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := robot.Moves(ctx, "R U R' U'"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Scanning and Solving
//
// The robot presents each face to a FaceReader in a fixed order, assembles
// the 54 facelet colours and hands them to a Solver:
//
//	solution, err := robot.Solve(ctx, camera, resolver)
//
// # Orientation Model
//
// The robot only ever turns the face resting on the turntable (the physical
// bottom). Every other face is first brought down by flipping the cube about
// its horizontal axis and spinning it on the turntable. The Orientation type
// records which logical face sits at Up, Front and Right so the next move can
// be planned from the current grip.
package cubebot
