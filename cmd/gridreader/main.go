package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/grid-reader/internal/binairo"
	"github.com/ironsheep/grid-reader/internal/config"
	"github.com/ironsheep/grid-reader/internal/debugview"
	"github.com/ironsheep/grid-reader/internal/gridfile"
	"github.com/ironsheep/grid-reader/internal/pipeline"
	"github.com/ironsheep/grid-reader/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "gridreader - read a colored tile grid from a board photo")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gridreader <image_path> [True|False]   Detect the grid and write result.txt;")
	fmt.Fprintln(w, "                                         True shows the annotated board")
	fmt.Fprintln(w, "  gridreader solve <result.txt>          Solve the grid as a Binairo puzzle")
	fmt.Fprintln(w, "  gridreader serve                       Run as an MCP server on stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=<file>         Config file (default ./%s if present)\n", config.EnvConfig, config.DefaultFile)
	fmt.Fprintf(w, "  %s=debug       Enable debug logging\n", config.EnvLogLevel)
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return 1
	}

	switch args[0] {
	case "--version", "-v", "version":
		fmt.Fprintf(stdout, "gridreader %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	case "--help", "-h", "help":
		printUsage(stdout)
		return 0
	}

	// Configure logging to stderr (stdout is for results and MCP protocol)
	logger := log.New(stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
	debug := config.DebugEnabled()

	cfg, cfgPath, err := config.Resolve()
	if err != nil {
		logger.Printf("Config error: %v", err)
		return 1
	}
	if debug {
		logger.Printf("gridreader v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		if cfgPath != "" {
			logger.Printf("using config %s", cfgPath)
		}
	}

	switch args[0] {
	case "serve":
		return runServe(cfg, stdin, stdout, logger)
	case "solve":
		if len(args) != 2 {
			printUsage(stdout)
			return 1
		}
		return runSolve(args[1], stdout, logger)
	}

	show := false
	if len(args) > 1 {
		if show, err = strconv.ParseBool(args[1]); err != nil {
			fmt.Fprintf(stdout, "invalid show flag %q\n\n", args[1])
			printUsage(stdout)
			return 1
		}
	}
	return runDetect(cfg, args[0], show, logger, debug)
}

func runDetect(cfg config.Config, path string, show bool, logger *log.Logger, debug bool) int {
	det, err := cfg.NewDetector(logger, debug)
	if err != nil {
		logger.Printf("Detector error: %v", err)
		return 1
	}

	out, err := pipeline.NewReader(nil, cfg.Crop, det).ReadFile(path)
	if err != nil {
		logger.Printf("Failed to read grid from %s: %v", path, err)
		return 1
	}

	if show {
		opts := debugview.Options{SavePath: cfg.Overlay, Logger: logger}
		if err := debugview.Show("Result", out.Overlay(), opts); err != nil {
			logger.Printf("Failed to show overlay: %v", err)
			return 1
		}
	}

	if err := gridfile.WriteFile(cfg.Output, out.Result.Grid.Codes()); err != nil {
		logger.Printf("Failed to write result: %v", err)
		return 1
	}
	if debug {
		logger.Printf("wrote %dx%d grid (%d tiles, %d contours skipped) to %s",
			out.Result.Grid.Size(), out.Result.Grid.Size(), out.Result.Grid.Count(), out.Result.Skipped, cfg.Output)
	}
	return 0
}

func runSolve(path string, stdout io.Writer, logger *log.Logger) int {
	codes, err := gridfile.Read(path)
	if err != nil {
		logger.Printf("Failed to read grid: %v", err)
		return 1
	}
	board, err := binairo.FromCodes(codes)
	if err != nil {
		logger.Printf("Cannot solve %s: %v", path, err)
		return 1
	}

	board.Print(stdout)
	fmt.Fprintln(stdout)
	if !board.Solve() {
		fmt.Fprintln(stdout, "no solution")
		return 1
	}
	board.Print(stdout)
	return 0
}

func runServe(cfg config.Config, stdin io.Reader, stdout io.Writer, logger *log.Logger) int {
	srv, err := server.New(cfg, Version, logger)
	if err != nil {
		logger.Printf("Server error: %v", err)
		return 1
	}
	if err := srv.Run(stdin, stdout); err != nil {
		logger.Printf("Server error: %v", err)
		return 1
	}
	return 0
}
