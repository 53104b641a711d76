package viewer

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Controller", func() {
	var (
		sim    *fakeSim
		render *fakeRender
		ctrl   *Controller
	)

	newController := func(opts Options) {
		var err error
		ctrl, err = New(sim, render, opts)
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		sim = &fakeSim{gn: 16}
		render = &fakeRender{}
		newController(testOptions())
	})

	Describe("New", func() {
		It("requires both collaborators", func() {
			_, err := New(nil, render, testOptions())
			Expect(err).To(MatchError(ErrMissingCollaborator))
		})

		It("rejects an empty scene table", func() {
			opts := testOptions()
			opts.Scenes = nil
			_, err := New(sim, render, opts)
			Expect(err).To(MatchError(ErrNoScenes))
		})

		It("rejects out of range seed settings", func() {
			opts := testOptions()
			opts.Settings[SlotResolution] = MaxRes + 1
			_, err := New(sim, render, opts)
			Expect(err).To(MatchError(ErrOutOfRange))
		})

		It("rejects a key shared by both keyspaces", func() {
			keys, err := DefaultKeyMap().WithOverrides(map[string]string{"fps": "h"})
			Expect(err).NotTo(HaveOccurred())
			opts := testOptions()
			opts.Keys = &keys
			_, err = New(sim, render, opts)
			Expect(err).To(MatchError(ErrKeyCollision))
		})

		It("leaves the collaborators alone", func() {
			Expect(sim.inits).To(BeEmpty())
			Expect(render.meshers).To(BeEmpty())
		})
	})

	Describe("HandleKey", func() {
		It("toggles a visibility layer and pushes it to the renderer", func() {
			Expect(ctrl.HandleKey('g')).To(BeTrue())
			Expect(ctrl.Store().Visible(GridVelocity)).To(BeTrue())
			Expect(render.layers[GridVelocity]).To(BeTrue())
		})

		It("matches keys case-insensitively", func() {
			Expect(ctrl.HandleKey('T')).To(BeTrue())
			Expect(ctrl.Store().Get(SlotScene)).To(Equal(1))
			Expect(ctrl.HandleKey('M')).To(BeTrue())
			Expect(ctrl.Store().Flag(SlotRemesh)).To(BeFalse())
			Expect(ctrl.HandleKey('X')).To(BeTrue())
			Expect(ctrl.Store().Get(SlotMesher)).To(Equal(1))
		})

		It("ignores unbound keys", func() {
			vis, settings := ctrl.Store().Visibility(), ctrl.Store().Controller()
			Expect(ctrl.HandleKey('!')).To(BeFalse())
			Expect(ctrl.Store().Visibility()).To(Equal(vis))
			Expect(ctrl.Store().Controller()).To(Equal(settings))
			Expect(sim.inits).To(BeEmpty())
		})

		It("toggles help", func() {
			ctrl.HandleKey('h')
			Expect(ctrl.Store().Flag(SlotHelp)).To(BeTrue())
			ctrl.HandleKey('h')
			Expect(ctrl.Store().Flag(SlotHelp)).To(BeFalse())
		})

		It("resets on request without changing settings", func() {
			Expect(ctrl.HandleKey('r')).To(BeTrue())
			Expect(sim.inits).To(Equal([]initCall{{16, 0.4, 0.8, 1.0}}))
		})

		It("resets once the live grid no longer matches the resolution", func() {
			Expect(ctrl.HandleKey('+')).To(BeTrue())
			Expect(ctrl.Store().Get(SlotResolution)).To(Equal(17))
			Expect(sim.inits).To(Equal([]initCall{{17, 0.4, 0.8, 1.0}}))
		})

		It("previews the resolution from the grid that was live before the reset", func() {
			ctrl.HandleKey('+')
			Expect(ctrl.Status()[ActionIncrease]).To(Equal("To 17^2"))
			Expect(ctrl.Status()[ActionDecrease]).To(Equal("To 15^2"))

			ctrl.HandleKey('h')
			Expect(ctrl.Status()[ActionIncrease]).To(Equal("To 18^2"))
			Expect(ctrl.Status()[ActionDecrease]).To(Equal("To 16^2"))
		})

		It("clamps the resolution at the ceiling", func() {
			opts := testOptions()
			opts.Settings[SlotResolution] = MaxRes
			sim.gn = MaxRes
			newController(opts)
			for i := 0; i < 3; i++ {
				Expect(ctrl.HandleKey('+')).To(BeTrue())
			}
			Expect(ctrl.Store().Get(SlotResolution)).To(Equal(MaxRes))
			Expect(sim.inits).To(BeEmpty())
		})

		It("clamps the resolution at the floor", func() {
			opts := testOptions()
			opts.Settings[SlotResolution] = MinRes
			sim.gn = MinRes
			newController(opts)
			Expect(ctrl.HandleKey('-')).To(BeTrue())
			Expect(ctrl.Store().Get(SlotResolution)).To(Equal(MinRes))
		})

		It("swaps the boundary order", func() {
			ctrl.HandleKey('b')
			Expect(sim.order).To(Equal(1))
			ctrl.HandleKey('b')
			Expect(sim.order).To(Equal(2))
		})

		It("returns a boolean slot to its value after two toggles", func() {
			ctrl.HandleKey('v')
			ctrl.HandleKey('v')
			Expect(sim.variations).To(Equal([]bool{false, true}))
			ctrl.HandleKey('s')
			ctrl.HandleKey('s')
			Expect(sim.corrections).To(Equal([]int{1, 1, 0, 1}))
			ctrl.HandleKey('a')
			ctrl.HandleKey('a')
			Expect(sim.adaptives[len(sim.adaptives)-2:]).To(Equal([]bool{false, true}))
			ctrl.HandleKey('m')
			ctrl.HandleKey('m')
			Expect(sim.remeshes[len(sim.remeshes)-2:]).To(Equal([]bool{false, true}))
			Expect(ctrl.Store().Controller()).To(Equal(testSettings))
		})

		It("wraps the scene and resets on every press", func() {
			for i := 1; i <= len(testScenes); i++ {
				ctrl.HandleKey('t')
				Expect(sim.inits).To(HaveLen(i))
			}
			Expect(ctrl.Store().Get(SlotScene)).To(Equal(0))
			Expect(sim.inits[0].param0).To(Equal(testScenes[1].Param0))
			Expect(sim.inits[2].param1).To(Equal(testScenes[0].Param1))
		})

		It("wraps the mesher modulo four", func() {
			for i := 0; i < NumMeshers; i++ {
				ctrl.HandleKey('x')
			}
			Expect(render.meshers).To(Equal([]int{1, 2, 3, 0}))
			Expect(ctrl.Store().Get(SlotMesher)).To(Equal(0))
		})
	})

	Describe("restoring defaults", func() {
		It("forces a reset when the scene was not the first", func() {
			ctrl.HandleKey('t')
			ctrl.HandleKey('t')
			Expect(ctrl.Store().Get(SlotScene)).To(Equal(2))
			sim.inits = nil

			Expect(ctrl.HandleKey('d')).To(BeTrue())
			Expect(ctrl.Store().Get(SlotScene)).To(Equal(0))
			Expect(sim.inits).To(Equal([]initCall{{16, 0.4, 0.8, 1.0}}))
		})

		It("does not reset when nothing relevant changed", func() {
			ctrl.HandleKey('v')
			ctrl.HandleKey('d')
			Expect(sim.inits).To(BeEmpty())
		})

		It("pushes exactly the construction values", func() {
			for _, ch := range "fyglupnzkjhbvsamx++" {
				ctrl.HandleKey(ch)
			}
			ctrl.HandleKey('d')
			Expect(render.layers).To(Equal(testVisibility))
			Expect(render.mesher).To(Equal(testSettings[SlotMesher]))
			Expect(sim.order).To(Equal(testSettings[SlotBoundaryOrder]))
			Expect(sim.variation).To(BeTrue())
			Expect(sim.correction).To(Equal(1))
			Expect(sim.adaptive).To(BeTrue())
			Expect(sim.remesh).To(BeTrue())
			Expect(sim.gn).To(Equal(16))
			Expect(ctrl.Store().Controller()).To(Equal(testSettings))
		})
	})

	Describe("overlay", func() {
		It("shows only the help line while help is hidden", func() {
			controller, visibility := ctrl.Overlay()
			Expect(controller).To(HaveLen(1))
			Expect(controller[0].String()).To(Equal("H Toggle help."))
			Expect(visibility).To(BeEmpty())
		})

		It("shows every line with annotations while help is visible", func() {
			ctrl.HandleKey('h')
			controller, visibility := ctrl.Overlay()
			Expect(controller).To(HaveLen(int(NumActions)))
			Expect(visibility).To(HaveLen(int(NumVisibility)))
			Expect(controller[ActionBoundary].String()).To(
				Equal("B Change the accuracy of boundary condition. ( Current: 2nd order )"))
			Expect(visibility[FrameRate].Status).To(Equal("Current: shown"))
			Expect(visibility[GridVelocity].Status).To(Equal("Current: hidden"))
		})

		It("draws a single unshaded line while help is hidden", func() {
			s := &fakeSurface{w: 800, h: 600}
			ctrl.Draw(s)
			Expect(s.shades).To(BeEmpty())
			Expect(s.texts).To(HaveLen(1))
			Expect(s.texts[0].x).To(BeNumerically("~", 20.0/800))
			Expect(s.texts[0].y).To(BeNumerically("~", 1-50.0/600))
		})

		It("shades the surface and stacks every line top to bottom", func() {
			ctrl.HandleKey('h')
			s := &fakeSurface{w: 800, h: 600}
			ctrl.Draw(s)
			Expect(s.shades).To(Equal([]float64{0.5}))
			Expect(s.texts).To(HaveLen(int(NumActions) + int(NumVisibility)))
			for i := 1; i < len(s.texts); i++ {
				Expect(s.texts[i].y).To(BeNumerically("<", s.texts[i-1].y))
			}
			first := s.texts[NumActions]
			Expect(strings.HasPrefix(first.text, "F ")).To(BeTrue())
			gap := s.texts[NumActions-1].y - first.y
			Expect(gap).To(BeNumerically("~", 1.5*30/600))
		})

		It("draws nothing on an empty surface", func() {
			s := &fakeSurface{}
			ctrl.Draw(s)
			Expect(s.texts).To(BeEmpty())
		})
	})
})
