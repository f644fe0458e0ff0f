package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/integrii/flaggy"
	"github.com/noriah/showcqt"
	"github.com/noriah/showcqt/graphic"
	"github.com/noriah/showcqt/input"
	"github.com/sirupsen/logrus"

	_ "github.com/noriah/showcqt/input/all"
)

// AppName is the app name
const AppName = "showcqt"

// AppDesc is the app description
const AppDesc = "Constant-Q Transform spectrum in the terminal"

// AppSite is the app website
const AppSite = "https://github.com/noriah/showcqt"

var version = "unknown"

func main() {
	log.SetFlags(0)

	opts := newOptions()

	if doFlags(&opts) {
		return
	}

	chk(opts.validate(), "invalid config")

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if opts.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := showcqt.Config{
		Backend:    opts.backend,
		Device:     opts.device,
		SampleSize: opts.sampleSize,
		Engine:     opts.engine,
		Logger:     logger,
	}

	if opts.raw {
		cfg.Output = NewRawOutput(os.Stdout, opts.rawColumns)
	} else {
		display := graphic.New(opts.engine.Bins)

		cfg.Output = display
		cfg.SetupFunc = func() error {
			if err := display.Init(); err != nil {
				return err
			}

			// the terminal belongs to the display now
			if !opts.verbose {
				logger.SetLevel(logrus.WarnLevel)
			}

			return nil
		}
		cfg.StartFunc = func(ctx context.Context) (context.Context, error) {
			return display.Start(ctx), nil
		}
		cfg.CleanupFunc = display.Close
	}

	// Root Context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	chk(showcqt.Run(ctx, &cfg), "failed to run showcqt")
}

func doFlags(opts *options) bool {
	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.AdditionalHelpPrepend = AppSite
	parser.Version = version

	listBackendsCmd := flaggy.Subcommand{
		Name:                 "list-backends",
		ShortName:            "lb",
		Description:          "list all supported backends",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listBackendsCmd, 1)

	listDevicesCmd := flaggy.Subcommand{
		Name:                 "list-devices",
		ShortName:            "ld",
		Description:          "list all devices for a backend",
		AdditionalHelpAppend: "\nuse the full name after the '-'",
	}

	parser.AttachSubcommand(&listDevicesCmd, 1)

	engine := &opts.engine

	parser.String(&opts.backend, "b", "backend", "backend name")
	parser.String(&opts.device, "d", "device", "device name")
	parser.Int(&opts.sampleSize, "n", "samples", "frames per read (0 reads one hop)")
	parser.Int(&engine.SampleRate, "r", "rate", "sample rate, divisible by fps*count")
	parser.Float64(&engine.Volume, "v", "volume", "kernel volume (0, 100]")
	parser.Float64(&engine.TimeClamp, "tc", "timeclamp", "longest window in seconds [0.1, 1]")
	parser.Float64(&engine.CoeffClamp, "cc", "coeffclamp", "kernel pruning [0.1, 10]")
	parser.Float64(&engine.Gamma, "g", "gamma", "intensity curve [1, 7]")
	parser.Int(&engine.FPS, "f", "fps", "frames per second [10, 100]")
	parser.Int(&engine.Count, "c", "count", "transforms per frame [1, 30]")
	parser.Int(&engine.Bins, "k", "bins", "number of bins")
	parser.Float64(&engine.BaseFreq, "bf", "basefreq", "center frequency of the first bin")
	parser.Int(&engine.Workers, "w", "workers", "kernel build goroutines (0 for all cpus)")
	parser.Bool(&opts.raw, "R", "raw", "print numbers instead of drawing")
	parser.Int(&opts.rawColumns, "rc", "rawcolumns", "numbers per line with --raw")
	parser.Bool(&opts.verbose, "V", "verbose", "log debug messages")

	chk(parser.Parse(), "failed to parse arguments")

	switch {
	case listBackendsCmd.Used:
		for _, backend := range input.Backends {
			fmt.Printf("- %s\n", backend.Name)
		}

		return true

	case listDevicesCmd.Used:
		backend, err := input.InitBackend(opts.backend)
		chk(err, "failed to init backend")

		devices, err := backend.Devices()
		chk(err, "failed to get devices")

		// We don't really need the default device to be indicated.
		defaultDevice, _ := backend.DefaultDevice()

		fmt.Printf("all devices for %q backend. '*' marks default\n", opts.backend)

		for idx := range devices {
			star := ' '
			if defaultDevice != nil && devices[idx].String() == defaultDevice.String() {
				star = '*'
			}

			fmt.Printf("- %v %c\n", devices[idx], star)
		}

		return true
	}

	return false
}

func chk(err error, wrap string) {
	if err != nil {
		log.Fatalln(wrap+": ", err)
	}
}
