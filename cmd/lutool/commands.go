package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kovidgoyal/lut"
	"github.com/kovidgoyal/lut/generate"
	"github.com/kovidgoyal/lut/render"
)

var _ = fmt.Print

var infoCmd = &cobra.Command{
	Use:   "info lut-file...",
	Short: "Print size, bounds and output range of LUT files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, path := range args {
			l, err := read_lut(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s:\n", path)
			if l.Title != "" {
				fmt.Fprintf(out, "  title:    %s\n", l.Title)
			}
			fmt.Fprintf(out, "  size:     %d\n", l.Size())
			fmt.Fprintf(out, "  bounds:   [%g, %g]\n", l.InputLowerBound(), l.InputUpperBound())
			fmt.Fprintf(out, "  minimum:  %s\n", l.MinimumOutputColor())
			fmt.Fprintf(out, "  maximum:  %s\n", l.MaximumOutputColor())
			fmt.Fprintf(out, "  identity: %v\n", l.EqualsIdentityLUT())
			for k, v := range l.PassthroughFileOptions() {
				fmt.Fprintf(out, "  option:   %s=%s\n", k, v)
			}
		}
		return nil
	},
}

var convertFormat string

var convertCmd = &cobra.Command{
	Use:   "convert input output",
	Short: "Convert a LUT between file formats",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := read_lut(args[0])
		if err != nil {
			return err
		}
		return write_lut(l, args[1], convertFormat)
	},
}

var resizeSize int

var resizeCmd = &cobra.Command{
	Use:   "resize input output",
	Short: "Resample a LUT to a different lattice size",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if resizeSize < 1 {
			return fmt.Errorf("invalid size: %d", resizeSize)
		}
		l, err := read_lut(args[0])
		if err != nil {
			return err
		}
		r := l.ResizedWith(resizeSize, cfg.interpolation())
		r.Title = l.Title
		return write_lut(r, args[1], convertFormat)
	},
}

var combineCmd = &cobra.Command{
	Use:   "combine first second output",
	Short: "Write the LUT equivalent to applying first and then second",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := read_lut(args[0])
		if err != nil {
			return err
		}
		b, err := read_lut(args[1])
		if err != nil {
			return err
		}
		return write_lut(a.CombinedWith(b), args[2], convertFormat)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare reference other",
	Short: "Print error metrics between two LUTs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := read_lut(args[0])
		if err != nil {
			return err
		}
		b, err := read_lut(args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "equal:          %v\n", a.EqualsLUT(b))
		fmt.Fprintf(out, "same essence:   %v\n", a.EqualsEssence(b, false, false, true))
		fmt.Fprintf(out, "max error:      %s\n", a.MaxAbsoluteError(b))
		fmt.Fprintf(out, "average error:  %s\n", a.AverageAbsoluteError(b))
		fmt.Fprintf(out, "symmetric MAPE: %s\n", a.SymmetricMAPE(b))
		return nil
	},
}

var adjust struct {
	strength         float64
	invert           bool
	clamp            bool
	clamp_lo         float64
	clamp_hi         float64
	offset, multiply string
	lower, upper     float64
}

var adjustCmd = &cobra.Command{
	Use:   "adjust input output",
	Short: "Apply value transforms to a LUT",
	Long: `Apply value transforms to a LUT, in this order: strength, multiply,
offset, invert, clamp and finally a change of input bounds.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := read_lut(args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("strength") {
			l = l.StrengthChanged(adjust.strength)
		}
		if adjust.multiply != "" {
			c, err := parse_color(adjust.multiply)
			if err != nil {
				return err
			}
			l = l.MultipliedBy(c)
		}
		if adjust.offset != "" {
			c, err := parse_color(adjust.offset)
			if err != nil {
				return err
			}
			l = l.OffsetBy(c)
		}
		if adjust.invert {
			l = l.Inverted()
		}
		if adjust.clamp {
			l = l.Clamped(adjust.clamp_lo, adjust.clamp_hi)
		}
		if flags.Changed("lower-bound") || flags.Changed("upper-bound") {
			lo, hi := l.Bounds()
			if flags.Changed("lower-bound") {
				lo = adjust.lower
			}
			if flags.Changed("upper-bound") {
				hi = adjust.upper
			}
			if !(hi > lo) {
				return fmt.Errorf("invalid bounds: [%g, %g]", lo, hi)
			}
			l = l.BoundsChanged(lo, hi)
		}
		return write_lut(l, args[1], convertFormat)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply lut-file input-image output.png",
	Short: "Apply a LUT to an image, writing the result as PNG",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := read_lut(args[0])
		if err != nil {
			return err
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		img, format, err := image.Decode(f)
		if err != nil {
			return fmt.Errorf("%s: %w", args[1], err)
		}
		logrus.WithFields(logrus.Fields{"file": args[1], "format": format, "bounds": img.Bounds()}).Debug("image decoded")
		ws, err := cfg.working_space()
		if err != nil {
			return err
		}
		res, err := render.Apply(l, img, render.MaxLatticeSize(cfg.MaxRenderSize), render.WorkingSpace(ws))
		if err != nil {
			return err
		}
		out, err := os.OpenFile(args[2], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
		if err != nil {
			return err
		}
		defer out.Close()
		if err = png.Encode(out, res); err != nil {
			return err
		}
		logrus.WithField("file", args[2]).Info("image written")
		return out.Close()
	},
}

var gen struct {
	size    int
	degrees float64
	factor  float64
	lo, hi  float64
}

var generators = map[string]func() *lut.LUT{
	"identity":   func() *lut.LUT { return lut.Identity(gen.size, gen.lo, gen.hi) },
	"hue":        func() *lut.LUT { return generate.HueShift(gen.size, gen.degrees) },
	"saturation": func() *lut.LUT { return generate.Saturation(gen.size, gen.factor) },
	"false-skin": func() *lut.LUT { return generate.FalseSkin(gen.size) },
}

var generateCmd = &cobra.Command{
	Use:   "generate kind output",
	Short: "Generate a LUT, kind is one of: identity, hue, saturation, false-skin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, ok := generators[args[0]]
		if !ok {
			return fmt.Errorf("unknown LUT kind: %q", args[0])
		}
		if gen.size < 2 {
			return fmt.Errorf("invalid size: %d", gen.size)
		}
		if !(gen.hi > gen.lo) {
			return fmt.Errorf("invalid bounds: [%g, %g]", gen.lo, gen.hi)
		}
		return write_lut(g(), args[1], convertFormat)
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the available LUT formatters",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, id := range lut.Formatters() {
			f, _ := lut.FormatterByID(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", id, strings.Join(f.Extensions(), ", "))
		}
	},
}

func init() {
	for _, c := range []*cobra.Command{convertCmd, resizeCmd, combineCmd, adjustCmd, generateCmd} {
		c.Flags().StringVarP(&convertFormat, "format", "f", "", "formatter ID for the output, default is from the file extension")
	}
	resizeCmd.Flags().IntVarP(&resizeSize, "size", "s", 33, "new lattice size")

	af := adjustCmd.Flags()
	af.Float64Var(&adjust.strength, "strength", 1, "blend between identity (0) and the LUT (1)")
	af.BoolVar(&adjust.invert, "invert", false, "invert output colors")
	af.BoolVar(&adjust.clamp, "clamp", false, "clamp output colors")
	af.Float64Var(&adjust.clamp_lo, "clamp-lower", 0, "lower clamp value")
	af.Float64Var(&adjust.clamp_hi, "clamp-upper", 1, "upper clamp value")
	af.StringVar(&adjust.offset, "offset", "", "color added to outputs: v or r,g,b")
	af.StringVar(&adjust.multiply, "multiply", "", "color outputs are multiplied by: v or r,g,b")
	af.Float64Var(&adjust.lower, "lower-bound", 0, "new input lower bound")
	af.Float64Var(&adjust.upper, "upper-bound", 1, "new input upper bound")

	gf := generateCmd.Flags()
	gf.IntVarP(&gen.size, "size", "s", 33, "lattice size")
	gf.Float64Var(&gen.degrees, "degrees", 30, "hue rotation for hue")
	gf.Float64Var(&gen.factor, "factor", 1.5, "saturation multiplier for saturation")
	gf.Float64Var(&gen.lo, "lower-bound", 0, "input lower bound for identity")
	gf.Float64Var(&gen.hi, "upper-bound", 1, "input upper bound for identity")

	rootCmd.AddCommand(infoCmd, convertCmd, resizeCmd, combineCmd, compareCmd, adjustCmd, applyCmd, generateCmd, formatsCmd)
}
