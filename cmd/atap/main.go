// Command atap creates, inspects and exports atap animation projects.
//
// Usage:
//
//	atap [-v] new [-width W] [-height H] [-fps N] [-title T] project.atap
//	atap [-v] demo project.atap
//	atap [-v] info project.atap
//	atap [-v] export [-png] [-ffmpeg PATH] [-crf N] project.atap out.mp4
//	atap [-v] storyboard [-columns N] project.atap board.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"

	"github.com/arunpranav-at/atap"
	"github.com/arunpranav-at/atap/export"
	"github.com/arunpranav-at/atap/project"
)

var errUsage = errors.New("usage")

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	zl := newZapLogger(*verbose)
	defer func() { _ = zl.Sync() }()
	atap.SetLogger(slog.New(zapslog.NewHandler(zl.Core(), zapslog.WithName("atap"))))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			usage()
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "atap:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: atap [-v] <command> [flags] args

commands:
  new         write a blank project
  demo        write a small bouncing-ball project
  info        print a project summary
  export      render a project to video (ffmpeg) or a PNG sequence
  storyboard  render a contact sheet of all frames
`)
}

// newZapLogger logs human-readable lines to stderr. Debug level is enabled
// with -v.
func newZapLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "new":
		return runNew(args)
	case "demo":
		return runDemo(args)
	case "info":
		return runInfo(args)
	case "export":
		return runExport(ctx, args)
	case "storyboard":
		return runStoryboard(args)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	width := fs.Int("width", atap.DefaultWidth, "canvas width")
	height := fs.Int("height", atap.DefaultHeight, "canvas height")
	fps := fs.Int("fps", atap.DefaultFPS, "frames per second")
	title := fs.String("title", "", "project title")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return errUsage
	}

	doc, err := atap.NewDocument(
		atap.WithSize(*width, *height),
		atap.WithFPS(*fps),
		atap.WithTitle(*title),
	)
	if err != nil {
		return err
	}
	return project.Save(fs.Arg(0), doc)
}

func runDemo(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	doc, err := bouncingBall()
	if err != nil {
		return err
	}
	return project.Save(args[0], doc)
}

func runInfo(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	s, err := project.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("id:         %s\n", s.ID)
	fmt.Printf("title:      %q\n", s.Title)
	fmt.Printf("canvas:     %dx%d\n", s.Width, s.Height)
	fmt.Printf("background: %s\n", s.Background.Hex())
	fmt.Printf("fps:        %d\n", s.FPS)
	fmt.Printf("frames:     %d (%d video frames, %v)\n", len(s.Frames), s.TotalHoldCount(), s.Duration())
	fmt.Printf("palette:    %d colors\n", len(s.Palette))
	for i, f := range s.Frames {
		if f.Hold > 1 {
			fmt.Printf("  frame %d holds %d\n", i+1, f.Hold)
		}
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	pngSeq := fs.Bool("png", false, "write a PNG sequence into the output directory")
	ffmpeg := fs.String("ffmpeg", "ffmpeg", "ffmpeg executable")
	crf := fs.Int("crf", 18, "ffmpeg constant rate factor")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		return errUsage
	}
	s, err := project.LoadSnapshot(fs.Arg(0))
	if err != nil {
		return err
	}

	var enc export.Encoder = &export.FFmpeg{Binary: *ffmpeg, CRF: *crf}
	if *pngSeq {
		enc = &export.PNGSequence{}
	}
	log := atap.Logger()
	exp := export.New(enc, export.WithProgress(func(p export.Progress) {
		if p.Frame == p.Total || p.Frame%max(p.Total/10, 1) == 0 {
			log.Info("export: progress", "frame", p.Frame, "total", p.Total)
		}
	}))

	job := exp.Start(ctx, s, fs.Arg(1))
	res, err := job.Wait()
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s: %d frames, %v\n", res.Path, res.Frames, res.Duration)
	return nil
}

func runStoryboard(args []string) error {
	fs := flag.NewFlagSet("storyboard", flag.ContinueOnError)
	cols := fs.Int("columns", 6, "thumbnails per row")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		return errUsage
	}
	s, err := project.LoadSnapshot(fs.Arg(0))
	if err != nil {
		return err
	}
	return (&export.Storyboard{Columns: *cols}).WriteFile(fs.Arg(1), s)
}
