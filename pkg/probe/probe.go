// Package probe reads container level properties of media files.
package probe

import (
	"strings"

	"github.com/tauraamui/mvextract/pkg/log"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

const UnreadableMediaError = xerror.Kind("UNREADABLE_MEDIA")

type capture interface {
	Get(gocv.VideoCaptureProperties) float64
	IsOpened() bool
	Close() error
}

var openCapture = func(path string) (capture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, err
	}
	return vc, nil
}

type Info struct {
	Path          string
	Width, Height int
	FPS           float64
	Frames        int
	FOURCC        uint32
}

// Length is the duration in whole seconds.
func (i Info) Length() int {
	if i.FPS <= 0 {
		return 0
	}
	return int(float64(i.Frames) / i.FPS)
}

// Codec spells out the FOURCC code.
func (i Info) Codec() string {
	var sb strings.Builder
	for shift := 0; shift < 32; shift += 8 {
		c := byte(i.FOURCC >> shift)
		if c == 0 {
			continue
		}
		sb.WriteByte(c)
	}
	return strings.TrimSpace(sb.String())
}

func Probe(path string) (Info, error) {
	vc, err := openCapture(path)
	if err != nil {
		return Info{}, xerror.Errorf("unable to open media %s: %w", path, err).AsKind(UnreadableMediaError)
	}
	defer vc.Close()

	if !vc.IsOpened() {
		return Info{}, xerror.NewWithKind(UnreadableMediaError, "media "+path+" could not be opened")
	}

	info := Info{
		Path:   path,
		Width:  int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(vc.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    vc.Get(gocv.VideoCaptureFPS),
		Frames: int(vc.Get(gocv.VideoCaptureFrameCount)),
		FOURCC: uint32(vc.Get(gocv.VideoCaptureFOURCC)),
	}
	log.Debug("Probed [%s]: %dx%d %.2ffps %d frames (%s)", path, info.Width, info.Height, info.FPS, info.Frames, info.Codec())
	return info, nil
}
