// Package viewer implements the interactive parameter controller of the
// fluid viewer.
//
// A [Controller] owns the runtime settings of a viewing session and keeps
// two collaborators in sync with them:
//
//   - [Simulation]: the fluid engine (solver flags, grid resolution, reset)
//   - [Renderer]: the display (one visibility setter per layer, mesher)
//
// Keyboard input arrives one character at a time through
// [Controller.HandleKey]. Each key either toggles a visibility layer or
// runs a controller action, after which the settings are pushed to both
// collaborators by [Controller.Apply].
//
// # Key Bindings
//
//	H - Toggle help          F - Frame rate
//	R - Reset simulation     Y - Grid lines
//	+ - Increase resolution  G - Grid velocity
//	- - Decrease resolution  L - Level set
//	D - Restore defaults     U - Particle velocity
//	B - Boundary order       P - Pressure
//	V - Variational solver   N - Neighbors
//	S - Spring correction    Z - Particle anisotropy
//	T - Next scene           K - Matrix connections
//	A - Adaptive sampling    J - External mesh
//	M - Grid remeshing
//	X - Surface extractor
//
// # Thread Safety
//
// A Controller is driven by a single event loop and is NOT safe for
// concurrent use.
package viewer
