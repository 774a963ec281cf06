package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/ironsheep/image-fill-mcp/internal/config"
	"github.com/ironsheep/image-fill-mcp/internal/fill"
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
	"github.com/ironsheep/image-fill-mcp/internal/runner"
	"github.com/ironsheep/image-fill-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-fill %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol and results)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("IMAGE_FILL_LOG_LEVEL") == "debug"
	if debug {
		fill.Debug = true
		log.Printf("Image Fill v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if len(os.Args) > 1 && os.Args[1] == "run" {
		if err := runJob(os.Args[2:], debug); err != nil {
			log.Fatalf("Run failed: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	server.Version = Version
	srv := server.New()
	srv.SetVerbose(debug)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("image-fill - multi-seed flood fill with animation, as an MCP server or CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  image-fill                       Serve MCP over stdin/stdout")
	fmt.Println("  image-fill run [flags] job.yaml  Execute a fill job file")
	fmt.Println()
	fmt.Println("Run flags (override the job file):")
	fmt.Println("  -mode bfs|dfs    Traversal order")
	fmt.Println("  -frame-freq N    Record a frame every N painted pixels")
	fmt.Println("  -tolerance T     HSL distance threshold")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_FILL_LOG_LEVEL=debug   Enable debug logging")
}

// runJob executes a job file and prints the result summary as JSON on stdout.
func runJob(args []string, verbose bool) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	mode := fs.String("mode", "", "traversal order: bfs or dfs")
	frameFreq := fs.Int("frame-freq", 0, "record a frame every N painted pixels")
	tolerance := fs.Float64("tolerance", 0, "HSL distance threshold")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("expected exactly one job file, got %d arguments", fs.NArg())
	}

	job, err := config.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	// Only flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			job.Mode = *mode
		case "frame-freq":
			job.FrameFreq = *frameFreq
		case "tolerance":
			job.Tolerance = *tolerance
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := runner.New(imaging.NewImageCache())
	r.SetVerbose(verbose)
	result, err := r.Run(ctx, job)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
