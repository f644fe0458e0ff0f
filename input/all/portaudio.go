//go:build cgo && portaudio

package all

import _ "github.com/noriah/showcqt/input/portaudio"
