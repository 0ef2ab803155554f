package main

import (
	"fmt"
	"os"

	"github.com/sgostarter/i/l"
	flag "github.com/spf13/pflag"

	nonplanar "github.com/madewithlinux/nonplanar-gcode"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n    %s [options] <input.gcode> <output.gcode>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Fits a gcode model to a user-defined spline.\n\n")
	flag.PrintDefaults()
}

func loadConfig(configPath string, cfg nonplanar.Config) (nonplanar.Config, error) {
	if configPath == "" {
		return cfg, nil
	}
	fileCfg, err := nonplanar.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	fileCfg.Override(cfg, flag.CommandLine.Changed)
	return fileCfg, nil
}

func execute(cfg nonplanar.Config, inputFileName, outputFileName string, logger l.Wrapper) (err error) {
	transformer, err := cfg.NewTransformer()
	if err != nil {
		return
	}

	in, err := os.Open(inputFileName)
	if err != nil {
		return
	}
	defer in.Close()

	out, err := os.Create(outputFileName)
	if err != nil {
		return
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	report, err := nonplanar.NewProcessor(transformer, logger).Process(in, out)
	if err != nil {
		return
	}

	logger.WithFields(
		l.IntField("lines", report.Lines),
		l.IntField("transformed", report.Transformed),
		l.IntField("passedThrough", report.PassedThrough),
		l.IntField("verticalMoves", report.VerticalMoves),
		l.IntField("diagnostics", len(report.Diagnostics)),
		l.IntField("selfIntersections", report.Count(nonplanar.SelfIntersection)),
	).Info("gcode bending finished")
	return
}

func main() {
	cfg := nonplanar.DefaultConfig()
	var configPath string

	cfg.RegisterFlags(flag.CommandLine)
	flag.StringVarP(&configPath, "config", "c", "", "YAML bend profile; flags given on the command line win")
	flag.Usage = usage
	flag.Parse()

	if len(flag.Args()) != 2 {
		usage()
		os.Exit(1)
	}

	logger := l.NewConsoleLoggerWrapper()

	cfg, err := loadConfig(configPath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	err = execute(cfg, flag.Arg(0), flag.Arg(1), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
