// Command microxform maps one microcode position from the UV frame into the
// XY frame using two reference points and prints the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"microcode-transform/internal/microcode"
	"microcode-transform/internal/version"
	"microcode-transform/pkg/geometry"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Printf("microxform: %v", err)
		os.Exit(1)
	}
}

// pointFlag parses "a,b" into a Point2D.
type pointFlag struct {
	p   geometry.Point2D
	set bool
}

func (f *pointFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%g,%g", f.p.X, f.p.Y)
}

func (f *pointFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return fmt.Errorf("want two comma-separated numbers, got %q", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return fmt.Errorf("first coordinate: %w", err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return fmt.Errorf("second coordinate: %w", err)
	}
	f.p = geometry.NewPoint2D(a, b)
	f.set = true
	return nil
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("microxform", flag.ContinueOnError)
	var xy1, xy2, uv1, uv2, target pointFlag
	fs.Var(&xy1, "xy1", "First reference point in XY (x,y)")
	fs.Var(&xy2, "xy2", "Second reference point in XY (x,y)")
	fs.Var(&uv1, "uv1", "First reference point in UV (u,v)")
	fs.Var(&uv2, "uv2", "Second reference point in UV (u,v)")
	fs.Var(&target, "target", "Target point in UV (u,v)")
	strict := fs.Bool("strict", false, "Reject degenerate input instead of printing NaN/Inf")
	showMatrix := fs.Bool("matrix", false, "Also print the UV to XY similarity matrix")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String("microxform"))
		return nil
	}

	required := []struct {
		name string
		f    *pointFlag
	}{
		{"xy1", &xy1}, {"xy2", &xy2}, {"uv1", &uv1}, {"uv2", &uv2}, {"target", &target},
	}
	for _, r := range required {
		if !r.f.set {
			return fmt.Errorf("missing -%s (usage: microxform -xy1 x,y -xy2 x,y -uv1 u,v -uv2 u,v -target u,v)", r.name)
		}
	}

	ref := microcode.ReferencePair{XY1: xy1.p, XY2: xy2.p, UV1: uv1.p, UV2: uv2.p}

	var res microcode.Result
	if *strict {
		var err error
		res, err = microcode.MapChecked(ref, target.p)
		if err != nil {
			return err
		}
	} else {
		res = ref.Map(target.p)
	}

	fmt.Fprintf(stdout, "x=%g y=%g scale=%g\n", res.Target.X, res.Target.Y, res.ScaleFactor)

	if *showMatrix {
		sim, err := ref.Similarity()
		if err != nil {
			return fmt.Errorf("similarity matrix: %w", err)
		}
		m := sim.ToMatrix()
		fmt.Fprintf(stdout, "[%g %g %g]\n[%g %g %g]\n", m[0][0], m[0][1], m[0][2], m[1][0], m[1][1], m[1][2])
	}
	return nil
}
