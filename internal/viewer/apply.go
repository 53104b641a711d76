package viewer

// Apply pushes every setting to the renderer and the simulation, refreshes
// the status strings against the grid that is live before any reset, then
// resets the simulation when forced or when its grid no longer matches the
// resolution setting.
func (c *Controller) Apply(forceReset bool) {
	s := c.store
	for v, set := range visibilitySetters {
		set(c.render, s.Visible(Visibility(v)))
	}

	c.sim.SetBoundaryAccuracy(s.Get(SlotBoundaryOrder))
	c.sim.SetVariation(s.Flag(SlotVariational))
	c.sim.SetCorrection(s.Get(SlotCorrection))
	c.sim.SetAdaptiveSampling(s.Flag(SlotAdaptive))
	c.sim.SetRemesh(s.Flag(SlotRemesh))
	c.render.SetSurfaceExtractor(s.Get(SlotMesher))

	c.status = FormatStatus(s.Controller(), c.sim.GridSize())
	if forceReset || c.sim.GridSize() != s.Get(SlotResolution) {
		c.Reset()
	}
}
