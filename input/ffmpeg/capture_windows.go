package ffmpeg

import "github.com/noriah/showcqt/input"

func init() {
	input.RegisterBackend("ffmpeg-dshow", DShow{})
}
