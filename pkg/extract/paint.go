package extract

import (
	"os"

	"github.com/fatih/color"
	"github.com/tauraamui/mvextract/pkg/motion"
	"golang.org/x/term"
)

var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var (
	highMotion = color.New(color.BgRed)
	lowMotion  = color.New(color.BgYellow)
)

// Painter colours intensity map cells when f is a terminal and leaves
// them as plain symbols otherwise.
func Painter(f *os.File) func(motion.Intensity, string) string {
	if !isTerminal(f) {
		return nil
	}
	return func(i motion.Intensity, s string) string {
		switch i {
		case motion.IntensityHigh:
			return highMotion.Sprint(s)
		case motion.IntensityLow:
			return lowMotion.Sprint(s)
		default:
			return s
		}
	}
}
