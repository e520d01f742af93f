package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/banshee-data/drillsense/internal/config"
	"github.com/banshee-data/drillsense/internal/deviation"
	"github.com/banshee-data/drillsense/internal/monitoring"
	"github.com/banshee-data/drillsense/internal/report"
	"github.com/banshee-data/drillsense/internal/telemetry"
	"github.com/banshee-data/drillsense/internal/units"
	"github.com/banshee-data/drillsense/internal/wellpath"
)

// inputFlags are shared by the commands that read a snapshot.
type inputFlags struct {
	configPath   string
	snapshotPath string
	threshold    float64
	strict       bool
	verbose      bool
}

func (f *inputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Path to JSON config file")
	fs.StringVar(&f.snapshotPath, "snapshot", "", "Path to snapshot JSON file (default: demo snapshot)")
	fs.Float64Var(&f.threshold, "threshold", 0, "Lateral threshold override in metres (0 uses config or snapshot)")
	fs.BoolVar(&f.strict, "strict", false, "Fail when planned and actual paths differ in length")
	fs.BoolVar(&f.verbose, "v", false, "Verbose logging")
}

func (f *inputFlags) config() (*config.Config, error) {
	if f.configPath == "" {
		return config.EmptyConfig(), nil
	}
	return config.LoadConfig(f.configPath)
}

func (f *inputFlags) options() (report.Options, error) {
	monitoring.SetVerbose(f.verbose)
	cfg, err := f.config()
	if err != nil {
		return report.Options{}, err
	}
	o := report.OptionsFromConfig(cfg)
	if f.threshold < 0 {
		return report.Options{}, fmt.Errorf("--threshold must be non-negative, got %g", f.threshold)
	}
	if f.threshold > 0 {
		o.ThresholdM = f.threshold
	}
	if f.strict {
		o.Policy = wellpath.Strict
	}
	return o, nil
}

func (f *inputFlags) provider() telemetry.Provider {
	if f.snapshotPath == "" {
		return telemetry.DemoProvider()
	}
	return telemetry.NewFileProvider(f.snapshotPath)
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

func handleRender(args []string, stdout io.Writer) error {
	fs := newFlagSet("render", stdout)
	var in inputFlags
	in.register(fs)
	outDir := fs.String("out", "site", "Output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	o, err := in.options()
	if err != nil {
		return err
	}
	m, err := report.NewRenderer(o).RenderFrom(context.Background(), in.provider(), *outDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "rendered %d files to %s (run %s, %s)\n", len(m.Files), *outDir, m.RunID, m.Verdict)
	return nil
}

func handleClassify(args []string, stdout io.Writer) error {
	fs := newFlagSet("classify", stdout)
	configPath := fs.String("config", "", "Path to JSON config file")
	lateralCm := fs.Float64("lateral-cm", 0, "Lateral offset in centimetres")
	angularDeg := fs.Float64("angular-deg", 0, "Angular offset in degrees")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := inputFlags{configPath: *configPath}
	cfg, err := in.config()
	if err != nil {
		return err
	}
	s := deviation.Sample{LateralOffsetCm: *lateralCm, AngularOffsetDeg: *angularDeg}
	if err := s.Validate(); err != nil {
		return err
	}
	v := cfg.Thresholds().Classify(s.LateralOffsetM(), s.AngularOffsetDeg)
	fmt.Fprintf(stdout, "%s (%s)\n", v, v.Tone())
	return nil
}

func handleSegments(args []string, stdout io.Writer) error {
	fs := newFlagSet("segments", stdout)
	var in inputFlags
	in.register(fs)
	unit := fs.String("units", units.Meters, "Offset display units ("+units.GetValidUnitsString()+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !units.IsValid(*unit) {
		return fmt.Errorf("--units must be one of %s, got %q", units.GetValidUnitsString(), *unit)
	}

	o, err := in.options()
	if err != nil {
		return err
	}
	snap, err := in.provider().Snapshot(context.Background())
	if err != nil {
		return err
	}
	cmp, err := report.Compare(snap, o)
	if err != nil {
		return err
	}
	return writeSegments(stdout, cmp, o.Policy, *unit)
}

// writeSegments prints the comparison with offsets in unit. The threshold
// line stays in metres.
func writeSegments(w io.Writer, cmp wellpath.Comparison, policy wellpath.LengthPolicy, unit string) error {
	sum := cmp.Summary
	fmt.Fprintf(w, "threshold %g m, policy %s, %d of %d segments beyond\n",
		cmp.ThresholdM, policy, sum.BeyondSegments, sum.Segments)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tFROM (m)\tTO (m)\tOFFSET (%s)\tBEYOND\n", unit)
	for _, seg := range cmp.Segments {
		mark := "no"
		if seg.Beyond {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.3f\t%s\n", seg.Index, seg.From.Depth, seg.To.Depth, units.ConvertLength(cmp.Offsets[seg.Index], unit), mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if sum.Segments > 0 {
		fmt.Fprintf(w, "max %.3f %s at station %d, mean %.3f %s, final %.3f %s\n",
			units.ConvertLength(sum.MaxOffsetM, unit), unit, sum.MaxOffsetIndex,
			units.ConvertLength(sum.MeanOffsetM, unit), unit,
			units.ConvertLength(sum.FinalOffsetM, unit), unit)
	}
	return nil
}
