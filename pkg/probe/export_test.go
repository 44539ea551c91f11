package probe

import "gocv.io/x/gocv"

type Capture = capture

func OverloadOpenCapture(overload func(string) (Capture, error)) func() {
	openCaptureRef := openCapture
	openCapture = overload
	return func() { openCapture = openCaptureRef }
}

// FakeCapture reports fixed property values.
type FakeCapture struct {
	Props  map[gocv.VideoCaptureProperties]float64
	Opened bool
	Closed bool
}

func (c *FakeCapture) Get(prop gocv.VideoCaptureProperties) float64 { return c.Props[prop] }
func (c *FakeCapture) IsOpened() bool                               { return c.Opened }
func (c *FakeCapture) Close() error {
	c.Closed = true
	return nil
}
