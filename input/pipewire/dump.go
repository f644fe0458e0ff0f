package pipewire

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

type pwObjects []pwObject

func pwDump(ctx context.Context) (pwObjects, error) {
	cmd := exec.CommandContext(ctx, "pw-dump")
	cmd.Stderr = os.Stderr

	dumpOutput, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(err, "failed to run pw-dump")
	}

	return parseDump(dumpOutput)
}

func parseDump(data []byte) (pwObjects, error) {
	var dump pwObjects
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, errors.Wrap(err, "failed to parse pw-dump output")
	}

	return dump, nil
}

// Filter filters for the objects that satisfy all of fns.
func (d pwObjects) Filter(fns ...func(pwObject) bool) pwObjects {
	filtered := make(pwObjects, 0, len(d))
loop:
	for _, object := range d {
		for _, f := range fns {
			if !f(object) {
				continue loop
			}
		}
		filtered = append(filtered, object)
	}
	return filtered
}

type pwObjectID int64

type pwObjectType string

const (
	pwInterfaceNode pwObjectType = "PipeWire:Interface:Node"
)

type pwObject struct {
	ID   pwObjectID   `json:"id"`
	Type pwObjectType `json:"type"`
	Info struct {
		Props pwNodeProps `json:"props"`
	} `json:"info"`
}

type pwNodeProps struct {
	NodeName        string `json:"node.name"`
	NodeDescription string `json:"node.description"`
	MediaClass      string `json:"media.class"`
}

// Constants for MediaClass.
const (
	pwAudioSink         = "Audio/Sink"
	pwAudioSource       = "Audio/Source"
	pwStreamOutputAudio = "Stream/Output/Audio"
)

// isCaptureTarget reports whether pw-cat can record from o: sinks are
// recorded through their monitor.
func isCaptureTarget(o pwObject) bool {
	if o.Type != pwInterfaceNode || o.Info.Props.NodeName == "" {
		return false
	}

	switch o.Info.Props.MediaClass {
	case pwAudioSink, pwAudioSource, pwStreamOutputAudio:
		return true
	}

	return false
}
