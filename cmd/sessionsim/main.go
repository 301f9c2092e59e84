package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/aimsight/internal/sessionsim"
)

// Default configuration constants.
const (
	defaultFrames     = 600
	defaultWidth      = 640
	defaultHeight     = 360
	defaultSeed       = 1
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		frames     = flag.Int("frames", defaultFrames, "Number of frames to simulate")
		width      = flag.Int("width", defaultWidth, "Frame width in pixels")
		height     = flag.Int("height", defaultHeight, "Frame height in pixels")
		seed       = flag.Int64("seed", defaultSeed, "Random seed for opponent placement")
		outputFile = flag.String("output", "", "Output file for emitted tips (default: session_tips_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for simulator output (default: session_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Log every emitted tip as it happens")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sessionsim.ShowHelp()
		return
	}

	if err := sessionsim.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &sessionsim.Config{
		Frames:     *frames,
		Width:      *width,
		Height:     *height,
		Seed:       *seed,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := sessionsim.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
