package input

import (
	"testing"

	"github.com/pkg/errors"
)

type testDevice string

func (d testDevice) String() string { return string(d) }

type testBackend struct {
	inits int
}

func (b *testBackend) Init() error  { b.inits++; return nil }
func (b *testBackend) Close() error { return nil }

func (b *testBackend) Devices() ([]Device, error) {
	return []Device{testDevice("one"), testDevice("two")}, nil
}

func (b *testBackend) DefaultDevice() (Device, error) {
	return testDevice("one"), nil
}

func (b *testBackend) Start(SessionConfig) (Session, error) {
	return nil, errors.New("not implemented")
}

type testParser struct {
	testBackend
}

func (p *testParser) ParseDevice(name string) (Device, error) {
	return testDevice("parsed:" + name), nil
}

func withBackends(t *testing.T) {
	saved := Backends
	t.Cleanup(func() { Backends = saved })

	Backends = nil
	RegisterBackend("test", &testBackend{})
	RegisterBackend("parser", &testParser{})
}

func TestRegistry(t *testing.T) {
	withBackends(t)

	if names := GetAllBackendNames(); len(names) != 2 || names[0] != "test" || names[1] != "parser" {
		t.Fatalf("names: %q", names)
	}

	if !HasBackend("test") || HasBackend("missing") {
		t.Error("HasBackend")
	}

	backend, err := InitBackend("test")
	if err != nil {
		t.Fatal(err)
	}

	if backend.(*testBackend).inits != 1 {
		t.Error("backend not initialized")
	}

	if _, err := InitBackend("missing"); err == nil {
		t.Error("missing backend initialized")
	}
}

func TestGetDevice(t *testing.T) {
	withBackends(t)

	backend := FindBackend("test")

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"", "one", true},
		{"two", "two", true},
		{"three", "", false},
	}

	for _, test := range tests {
		d, err := GetDevice(backend, test.name)
		if (err == nil) != test.ok {
			t.Errorf("%q: err %v", test.name, err)
			continue
		}
		if test.ok && d.String() != test.want {
			t.Errorf("%q: got %q", test.name, d)
		}
	}

	d, err := GetDevice(FindBackend("parser"), "song.flac")
	if err != nil || d.String() != "parsed:song.flac" {
		t.Errorf("parser: got %v, %v", d, err)
	}
}

func TestSessionConfigSamples(t *testing.T) {
	cfg := SessionConfig{FrameSize: 2, SampleSize: 320}
	if cfg.Samples() != 640 {
		t.Errorf("got %d", cfg.Samples())
	}
}
