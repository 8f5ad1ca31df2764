package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/menta2k/aspect-bucketer/internal/config"
	"github.com/menta2k/aspect-bucketer/internal/utils"
	"github.com/menta2k/aspect-bucketer/pkg/batch"
	"github.com/menta2k/aspect-bucketer/pkg/cache"
	"github.com/menta2k/aspect-bucketer/pkg/processing"
	"github.com/menta2k/aspect-bucketer/pkg/sizer"
)

type report struct {
	Items   []batch.Item  `json:"items"`
	Buckets []cache.Entry `json:"buckets"`
	Cache   cache.Stats   `json:"cache"`
}

func main() {
	var in, configPath, logLevel, logFormat string
	var asJSON bool

	cfg := config.Default()

	flag.StringVar(&in, "in", "", "input image file or directory")
	flag.StringVar(&configPath, "config", "", "config file (yaml or json); defaults to "+config.GetConfigPath()+" when present")
	flag.StringVar(&logLevel, "loglevel", "warn", "log level: debug|info|warn|error")
	flag.StringVar(&logFormat, "logformat", "text", "log format: text|json")
	flag.BoolVar(&asJSON, "json", false, "print a JSON report instead of one line per image")

	resType := flag.String("type", "", "resolution type: area|pixel (overrides config)")
	resValue := flag.Float64("resolution", 0, "megapixels for area, edge pixels for pixel (overrides config)")
	alignment := flag.Int("alignment", 0, "alignment unit in pixels (overrides config)")
	rounding := flag.Int("rounding", -1, "aspect ratio decimals (overrides config)")
	workers := flag.Int("workers", 0, "concurrent workers (overrides config)")

	outDir := flag.String("out", "", "render resized and cropped images into this directory")
	ext := flag.String("ext", "", "output format: jpg|png|webp")
	quality := flag.Int("quality", 0, "JPEG/WebP output quality (1-100)")
	lossless := flag.Bool("lossless", false, "WebP output lossless mode")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in image|dir [-config file] [-type area|pixel] [-resolution v] [-alignment n] [-rounding n] [-workers n] [-out dir -ext jpg|png|webp] [-json]", filepath.Base(os.Args[0]))
	}

	if !utils.FileExists(in) && !utils.DirExists(in) {
		log.Fatalf("input %s does not exist", in)
	}

	if configPath = resolveConfigPath(configPath, config.GetConfigPath()); configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	}

	if *resType != "" {
		cfg.Resolution.Type = *resType
	}
	if *resValue > 0 {
		cfg.Resolution.Value = *resValue
	}
	if *alignment > 0 {
		cfg.Bucket.Alignment = *alignment
	}
	if *rounding >= 0 {
		cfg.Bucket.Rounding = *rounding
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *ext != "" {
		cfg.Output.Format = *ext
	}
	if *quality > 0 {
		cfg.Output.Quality = *quality
	}
	if *lossless {
		cfg.Output.Lossless = true
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := newLogger(logLevel, logFormat)
	if err != nil {
		log.Fatal(err)
	}

	spec, err := cfg.ResolutionSpec()
	if err != nil {
		log.Fatal(err)
	}

	s, err := sizer.NewWithConfig(cfg.Sizer())
	if err != nil {
		log.Fatal(err)
	}
	s.SetLogger(logger)

	paths, err := utils.CollectInputs(in)
	if err != nil {
		log.Fatal(err)
	}
	if len(paths) == 0 {
		log.Fatalf("no images found in %s", in)
	}

	processor := processing.NewProcessorWithOutput(cfg.Processing())
	runner := batch.NewRunner(s, processor, spec)
	runner.SetWorkers(cfg.Workers)
	runner.SetLogger(logger)

	if cfg.Output.Dir != "" {
		if err := utils.EnsureDir(cfg.Output.Dir); err != nil {
			log.Fatal(err)
		}
		runner.SetOutput(processor, cfg.Output.Dir, cfg.Output.Prefix, cfg.Output.Suffix)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	items, err := runner.Run(ctx, paths)
	if err != nil {
		logger.Error("run interrupted", "error", err)
	}

	if asJSON {
		out := report{Items: items, Buckets: s.Cache().Entries(), Cache: s.Cache().Stats()}
		js, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			log.Fatalf("failed to encode report: %v", err)
		}
		fmt.Println(string(js))
	} else {
		failed := 0
		for _, item := range items {
			if item.Err != nil {
				failed++
				fmt.Printf("%s: %v\n", item.Path, item.Err)
				continue
			}
			fmt.Printf("%s %s -> %s -> %s %.*f\n", item.Path, item.Original,
				item.Plan.Intermediary, item.Plan.Target, cfg.Bucket.Rounding, item.Plan.AspectRatio)
		}
		logger.Info("done", "images", len(items), "failed", failed, "buckets", s.Cache().Len())
	}

	if err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfigPath returns the explicit path if given, else the default
// path when a file exists there, else ""
func resolveConfigPath(explicit, fallback string) string {
	if explicit != "" {
		return explicit
	}
	if utils.FileExists(fallback) {
		return fallback
	}
	return ""
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}
