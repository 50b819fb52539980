package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kovidgoyal/lut"
	"github.com/kovidgoyal/lut/formats/cube"
	_ "github.com/kovidgoyal/lut/formats/hald"
	"github.com/kovidgoyal/lut/formats/threedl"
)

var _ = fmt.Print

var (
	rootCmd = &cobra.Command{
		Use:           "lutool",
		Short:         "Inspect, convert and transform 3D color lookup tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
				lut.SetLogger(slog.New(slog.NewTextHandler(logrus.StandardLogger().Out, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
			cfg, err = load_config(configPath)
			if err == nil {
				logrus.WithField("format", cfg.DefaultFormat).Debug("configuration loaded")
			}
			return
		},
	}
	configPath string
	verbose    bool
	cfg        Config
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (default is lutool/lutool.yaml in the user config directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
}

func Execute() error {
	return rootCmd.Execute()
}

func main() {
	if err := Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func read_lut(path string) (*lut.LUT, error) {
	l, err := lut.FromFile(path)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"file": path, "size": l.Size()}).Debug("LUT loaded")
	return l, nil
}

// output_options merges the passthrough options of l with settings from
// the config file.
func output_options(l *lut.LUT) lut.Options {
	ans := l.PassthroughFileOptions()
	if ans == nil {
		ans = lut.Options{}
	}
	ans[cube.PrecisionOption] = strconv.Itoa(cfg.Precision)
	if cfg.OutputBitDepth > 0 {
		ans[threedl.OutputBitDepthOption] = strconv.Itoa(cfg.OutputBitDepth)
	}
	return ans
}

func write_lut(l *lut.LUT, path, formatterID string) error {
	if formatterID == "" {
		if _, err := lut.FormatterForExtension(filepath.Ext(path)); err != nil {
			formatterID = cfg.DefaultFormat
		}
	}
	if err := l.WriteFile(path, formatterID, output_options(l), true); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"file": path, "size": l.Size()}).Info("LUT written")
	return nil
}

func parse_color(s string) (lut.Color, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return lut.Color{}, fmt.Errorf("invalid color component %q in: %q", p, s)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return lut.Gray(vals[0]), nil
	case 3:
		return lut.RGB(vals[0], vals[1], vals[2]), nil
	}
	return lut.Color{}, fmt.Errorf("a color must have one or three components, not: %q", s)
}
