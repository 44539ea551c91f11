package extract

import (
	"os"

	"github.com/spf13/afero"
)

func OverloadFS(overload afero.Fs) func() {
	fsRef := fs
	fs = overload
	return func() { fs = fsRef }
}

func OverloadIsTerminal(overload func(*os.File) bool) func() {
	isTerminalRef := isTerminal
	isTerminal = overload
	return func() { isTerminal = isTerminalRef }
}
