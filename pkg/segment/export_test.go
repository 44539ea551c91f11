package segment

import (
	"context"

	"github.com/spf13/afero"
)

func OverloadFS(overload afero.Fs) func() {
	fsRef := fs
	fs = overload
	return func() { fs = fsRef }
}

func OverloadRunFFmpeg(overload func(context.Context, []string) error) func() {
	runFFmpegRef := runFFmpeg
	runFFmpeg = overload
	return func() { runFFmpeg = runFFmpegRef }
}
