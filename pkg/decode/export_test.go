package decode

import "github.com/spf13/afero"

func OverloadFS(overload afero.Fs) func() {
	fsRef := fs
	fs = overload
	return func() { fs = fsRef }
}

func MockWithFrames(frames int) Backend {
	return &mockBackend{frames: frames}
}
