// Package all imports all backends implemented by the input package.
package all

import (
	_ "github.com/noriah/showcqt/input/ffmpeg"
	_ "github.com/noriah/showcqt/input/parec"
	_ "github.com/noriah/showcqt/input/pipewire"
	_ "github.com/noriah/showcqt/input/stdinput"
	_ "github.com/noriah/showcqt/input/wavfile"
)
