package viewer

// Simulation is the fluid engine as seen by the controller.
type Simulation interface {
	SetBoundaryAccuracy(order int)
	SetVariation(enabled bool)
	SetCorrection(mode int)
	SetAdaptiveSampling(enabled bool)
	SetRemesh(enabled bool)
	// Init discards the current state and starts over on a grid of
	// resolution cells per axis.
	Init(resolution int, param0, param1, timescale float64)
	GridSize() int
}

// Renderer has one setter per visibility layer plus the surface
// extraction selector.
type Renderer interface {
	SetFrameRateVisibility(bool)
	SetGridLineVisibility(bool)
	SetGridVelocityVisibility(bool)
	SetLevelSetVisibility(bool)
	SetParticleVelocityVisibility(bool)
	SetPressureVisibility(bool)
	SetNeighborVisibility(bool)
	SetParticleAnisotropyVisibility(bool)
	SetMatrixConnectionVisibility(bool)
	SetExternalMeshVisibility(bool)
	SetSurfaceExtractor(variant int)
}

// Surface is where the overlay is drawn. Coordinates are normalized to
// [0,1] with y pointing up.
type Surface interface {
	Size() (width, height int)
	// Shade covers the whole surface with black at the given opacity.
	Shade(alpha float64)
	DrawText(x, y, scale float64, text string)
}

// Scene is one entry of the scene table.
type Scene struct {
	Name           string
	Param0, Param1 float64
}

// visibilitySetters maps every layer to its Renderer setter.
var visibilitySetters = [NumVisibility]func(Renderer, bool){
	FrameRate:          Renderer.SetFrameRateVisibility,
	GridLines:          Renderer.SetGridLineVisibility,
	GridVelocity:       Renderer.SetGridVelocityVisibility,
	LevelSet:           Renderer.SetLevelSetVisibility,
	ParticleVelocity:   Renderer.SetParticleVelocityVisibility,
	Pressure:           Renderer.SetPressureVisibility,
	Neighbors:          Renderer.SetNeighborVisibility,
	ParticleAnisotropy: Renderer.SetParticleAnisotropyVisibility,
	MatrixConnections:  Renderer.SetMatrixConnectionVisibility,
	ExternalMesh:       Renderer.SetExternalMeshVisibility,
}

func init() {
	for v, set := range visibilitySetters {
		if set == nil {
			panic("viewer: no renderer setter for visibility " + Visibility(v).String())
		}
	}
}
