// Package main provides the CLI entry point for droneframes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/droneframes/pkg/adapters/ffmpegsource"
	"github.com/user/droneframes/pkg/adapters/filesink"
	"github.com/user/droneframes/pkg/adapters/imagecodec"
	"github.com/user/droneframes/pkg/adapters/logger"
	"github.com/user/droneframes/pkg/adapters/nullsink"
	"github.com/user/droneframes/pkg/adapters/osfilesystem"
	"github.com/user/droneframes/pkg/adapters/progress"
	"github.com/user/droneframes/pkg/adapters/smartsource"
	"github.com/user/droneframes/pkg/batch"
	"github.com/user/droneframes/pkg/config"
	"github.com/user/droneframes/pkg/extractor"
	"github.com/user/droneframes/pkg/pipeline"
	"github.com/user/droneframes/pkg/ports"
	"github.com/user/droneframes/pkg/scanner"
	"github.com/user/droneframes/pkg/summarizer"
)

var version = "dev"

const defaultDebugDir = "./debug"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "droneframes",
		Usage:   l10n.T("Extract still frames from drone videos for photogrammetry"),
		Version: version,
		Commands: []*cli.Command{
			extractCommand(),
			batchCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("droneframes version %s", version))
					return nil
				},
			},
		},
	}
}

func extractCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Usage:    l10n.T("Input video file"),
			Required: true,
			Category: l10n.T("Input and output"),
		},
		&cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Output directory for frames"),
			Required: true,
			Category: l10n.T("Input and output"),
		},
	}

	return &cli.Command{
		Name:   "extract",
		Usage:  l10n.T("Extract frames from a single video"),
		Flags:  append(flags, extractionFlags()...),
		Action: runExtract,
	}
}

func batchCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "input-dir",
			Aliases:  []string{"i"},
			Usage:    l10n.T("Directory containing video files"),
			Required: true,
			Category: l10n.T("Input and output"),
		},
		&cli.StringFlag{
			Name:     "output-dir",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Base output directory for frames"),
			Required: true,
			Category: l10n.T("Input and output"),
		},
		&cli.IntFlag{
			Name:     "workers",
			Aliases:  []string{"w"},
			Value:    1,
			Usage:    l10n.T("Number of parallel workers"),
			EnvVars:  []string{"DRONEFRAMES_WORKERS"},
			Category: l10n.T("Batch"),
		},
		&cli.StringSliceFlag{
			Name:     "extensions",
			Aliases:  []string{"e"},
			Usage:    l10n.T("Video file extensions to process (repeatable)"),
			EnvVars:  []string{"DRONEFRAMES_EXTENSIONS"},
			Category: l10n.T("Batch"),
		},
	}

	return &cli.Command{
		Name:   "batch",
		Usage:  l10n.T("Extract frames from every video in a directory"),
		Flags:  append(flags, extractionFlags()...),
		Action: runBatch,
	}
}

// extractionFlags are shared by extract and batch.
func extractionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:     "fps",
			Value:    1.0,
			Usage:    l10n.T("Frames per second to extract"),
			EnvVars:  []string{"DRONEFRAMES_FPS"},
			Category: l10n.T("Extraction"),
		},
		&cli.StringFlag{
			Name:     "format",
			Aliases:  []string{"f"},
			Value:    "jpg",
			Usage:    l10n.T("Output format (jpg, jpeg, png)"),
			EnvVars:  []string{"DRONEFRAMES_FORMAT"},
			Category: l10n.T("Extraction"),
		},
		&cli.IntFlag{
			Name:     "quality",
			Aliases:  []string{"q"},
			Value:    95,
			Usage:    l10n.T("Image quality 1-100"),
			EnvVars:  []string{"DRONEFRAMES_QUALITY"},
			Category: l10n.T("Extraction"),
		},
		&cli.Float64Flag{
			Name:     "start",
			Usage:    l10n.T("Start time in seconds"),
			Category: l10n.T("Extraction"),
		},
		&cli.Float64Flag{
			Name:     "end",
			Usage:    l10n.T("End time in seconds (default: until the end)"),
			Category: l10n.T("Extraction"),
		},
		&cli.IntFlag{
			Name:     "max-dimension",
			Usage:    l10n.T("Downscale so the longest side is at most this many pixels (0 = original)"),
			EnvVars:  []string{"DRONEFRAMES_MAX_DIMENSION"},
			Category: l10n.T("Extraction"),
		},
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    l10n.T("YAML file with default settings"),
			EnvVars:  []string{"DRONEFRAMES_CONFIG"},
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "ffmpeg-path",
			Usage:    l10n.T("Path to the ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)"),
			EnvVars:  []string{"DRONEFRAMES_FFMPEG_PATH"},
			Category: l10n.T("Configuration"),
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    "info",
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			EnvVars:  []string{"DRONEFRAMES_LOG_LEVEL"},
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress log output and progress bars"),
			EnvVars:  []string{"DRONEFRAMES_QUIET"},
			Category: l10n.T("Logging"),
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save probe results and sampling plans as JSON"),
			Category: l10n.T("Debug"),
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output (default: ./debug)"),
			EnvVars:  []string{"DRONEFRAMES_DEBUG_DIR"},
			Category: l10n.T("Debug"),
		},
	}
}

// env holds the adapters shared by both commands.
type env struct {
	cfg    config.Config
	extCfg pipeline.ExtractionConfig
	log    ports.Logger
	fs     ports.FileSystem
	sink   ports.DebugSink
	opener ports.VideoOpener
	quiet  bool
	out    io.Writer
}

// settings merges defaults, the optional YAML file and explicitly set flags.
func settings(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("format") {
		cfg.Format = strings.ToLower(c.String("format"))
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("max-dimension") {
		cfg.MaxDimension = c.Int("max-dimension")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("extensions") {
		cfg.Extensions = c.StringSlice("extensions")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if cfg.DebugDir == "" {
		cfg.DebugDir = defaultDebugDir
	}

	return cfg, cfg.Validate()
}

// timeBounds reads --start and --end; an unset --end means no end bound.
func timeBounds(c *cli.Context) (float64, *float64) {
	var end *float64
	if c.IsSet("end") {
		e := c.Float64("end")
		end = &e
	}
	return c.Float64("start"), end
}

func setup(c *cli.Context) (*env, error) {
	cfg, err := settings(c)
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}

	start, end := timeBounds(c)
	extCfg := cfg.ToExtractionConfig(start, end)
	if err := extCfg.Validate(); err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}

	quiet := c.Bool("quiet")
	var log ports.Logger
	if quiet {
		log = logger.NewNoop()
	} else {
		level, _ := ports.ParseLogLevel(cfg.LogLevel)
		log = logger.NewConsole(level)
	}
	if path := c.String("config"); path != "" {
		log.Debug("Using configuration file %s", path)
	}

	fs := osfilesystem.New()

	var sink ports.DebugSink
	if c.Bool("debug") {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	return &env{
		cfg:    cfg,
		extCfg: extCfg,
		log:    log,
		fs:     fs,
		sink:   sink,
		opener: smartsource.New(smartsource.Options{FFmpegPath: cfg.FFmpegPath}, log),
		quiet:  quiet,
		out:    c.App.Writer,
	}, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func runExtract(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}

	input := c.String("input")
	exists, err := e.fs.Exists(input)
	if err != nil || !exists {
		return cli.Exit(l10n.F("Video file not found: %s", input), 1)
	}

	ctx, cancel := signalContext(c.Context, e.log)
	defer cancel()

	stage := extractor.New(e.opener, imagecodec.New(), e.fs, e.sink, progress.ForStderr(e.quiet), e.log, extractor.Options{Report: true})
	_, err = stage.Execute(ctx, pipeline.ExtractInput{
		VideoPath: input,
		OutputDir: c.String("output"),
		Config:    e.extCfg,
	})
	if err != nil {
		if errors.Is(err, ffmpegsource.ErrFFmpegNotFound) {
			return cli.Exit(l10n.T("ffmpeg was not found; install it or set --ffmpeg-path"), 1)
		}
		return cli.Exit(l10n.F("Extraction failed: %v", err), 1)
	}
	return nil
}

func runBatch(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}

	inputDir := c.String("input-dir")
	outputDir := c.String("output-dir")

	e.log.Info("Scanning for video files in: %s", inputDir)
	videos, err := scanner.Scan(e.fs, inputDir, e.cfg.Extensions)
	if errors.Is(err, scanner.ErrDirNotFound) {
		return cli.Exit(l10n.F("Input directory not found: %s", inputDir), 1)
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(videos) == 0 {
		return cli.Exit(l10n.F("No video files found in: %s", inputDir), 1)
	}

	e.log.Info("Found %d video file(s)", len(videos))
	for _, v := range videos {
		e.log.Info("   • %s", filepath.Base(v))
	}

	e.log.Info("Processing settings:")
	e.log.Info("   FPS: %g", e.cfg.FPS)
	e.log.Info("   Format: %s", strings.ToUpper(e.cfg.Format))
	e.log.Info("   Quality: %d", e.cfg.Quality)
	e.log.Info("   Workers: %d", e.cfg.Workers)

	ctx, cancel := signalContext(c.Context, e.log)
	defer cancel()

	// Per-video bars would fight the overall bar, so only the batch reports progress.
	stage := extractor.New(e.opener, imagecodec.New(), e.fs, e.sink, progress.NewNoop(), e.log, extractor.Options{})
	orch := batch.New(stage, e.fs, progress.ForStderr(e.quiet), e.log, e.cfg.Workers)

	results, err := orch.Run(ctx, videos, outputDir, e.extCfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	summary, path, err := orch.WriteSummary(outputDir, e.extCfg, results)
	if !e.quiet {
		fmt.Fprintln(e.out)
		if text, ferr := summarizer.NewTextFormatter().WithTranslator(l10n.T).Format(summary); ferr == nil {
			fmt.Fprint(e.out, text)
		}
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if !e.quiet {
		fmt.Fprintln(e.out)
		fmt.Fprintln(e.out, l10n.F("Summary saved to: %s", path))
		fmt.Fprintln(e.out, l10n.F("Output directory: %s", outputDir))
	}

	if !summary.Succeeded() {
		return cli.Exit("", 1)
	}
	return nil
}
