package viewer

import "fmt"

// Overlay layout, in pixels of the target surface.
const (
	marginPx    = 20
	linePitchPx = 30
	textScale   = 0.00027
	shadeAlpha  = 0.5
)

// Line is one row of the help overlay.
type Line struct {
	Key    string
	Text   string
	Status string
}

func (l Line) String() string {
	if l.Status == "" {
		return fmt.Sprintf("%s %s", l.Key, l.Text)
	}
	return fmt.Sprintf("%s %s ( %s )", l.Key, l.Text, l.Status)
}

// Overlay returns the controller lines followed by the visibility lines.
// The help line is always present; everything else only while help is
// visible.
func (c *Controller) Overlay() (controller, visibility []Line) {
	help := c.store.Flag(SlotHelp)
	for a, b := range c.keys.Controller {
		if a != int(ActionHelp) && !help {
			continue
		}
		controller = append(controller, Line{Key: label(b), Text: b.Help().Desc, Status: c.status[a]})
	}
	if !help {
		return controller, nil
	}
	for v, b := range c.keys.Visibility {
		visibility = append(visibility, Line{
			Key:    label(b),
			Text:   b.Help().Desc,
			Status: visibilityStatus(c.store.Visible(Visibility(v))),
		})
	}
	return controller, visibility
}

// Draw lays the overlay out on s.
func (c *Controller) Draw(s Surface) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	dw, dh := 1/float64(w), 1/float64(h)
	if c.store.Flag(SlotHelp) {
		s.Shade(shadeAlpha)
	}

	controller, visibility := c.Overlay()
	for i, l := range controller {
		y := 1 - float64(i+1)*linePitchPx*dh - marginPx*dh
		s.DrawText(marginPx*dw, y, textScale, l.String())
	}
	// visibility rows sit half a line below the last controller row
	base := float64(len(controller)) + 1.5
	for j, l := range visibility {
		y := 1 - (float64(j)+base)*linePitchPx*dh - marginPx*dh
		s.DrawText(marginPx*dw, y, textScale, l.String())
	}
}
