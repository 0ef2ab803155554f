package main

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	flag "github.com/spf13/pflag"
	"golang.org/x/image/colornames"

	nonplanar "github.com/madewithlinux/nonplanar-gcode"
)

// CurvePlot draws a bend curve the way it sits on the build plate: offset
// to the right, height up.
type CurvePlot struct {
	ImageSize      int
	PlotSize       float64 // mm shown along each axis
	SampleStep     float64 // mm between inclination samples
	MaxAngle       float64 // degrees, drawn red
	OutputFileName string
	//////////////////////////////
	ViewTransform mgl64.Mat3
	ctx           *gg.Context
}

func (g *CurvePlot) toImage(height, offset float64) (float64, float64) {
	v := g.ViewTransform.Mul3x1(mgl64.Vec3{offset, height, 1})
	return v[0], v[1]
}

func (g *CurvePlot) angleColor(angle float64) color.Color {
	frac := math.Min(math.Abs(angle)/(g.MaxAngle*math.Pi/180), 1)
	return colorful.Hsv(120*(1-frac), 1.0, 0.9)
}

func (g *CurvePlot) RenderCurve(curve *nonplanar.CurveModel) {
	scale := float64(g.ImageSize) / g.PlotSize
	g.ViewTransform = mgl64.Translate2D(0, float64(g.ImageSize)).Mul3(
		mgl64.Scale2D(scale, -scale))

	g.ctx = gg.NewContext(g.ImageSize, g.ImageSize)
	g.ctx.SetColor(color.White)
	g.ctx.DrawRectangle(0, 0, float64(g.ImageSize), float64(g.ImageSize))
	g.ctx.Fill()

	// bend axis
	g.ctx.SetColor(colornames.Lightgray)
	g.ctx.SetLineWidth(1)
	x0, y0 := g.toImage(0, curve.OriginOffset())
	x1, y1 := g.toImage(g.PlotSize, curve.OriginOffset())
	g.ctx.DrawLine(x0, y0, x1, y1)
	g.ctx.Stroke()

	// exact spline
	g.ctx.SetColor(colornames.Black)
	g.ctx.SetLineWidth(3)
	for i, bez := range curve.Beziers() {
		px0, py0 := g.toImage(bez.P0.X, bez.P0.Y)
		px1, py1 := g.toImage(bez.P1.X, bez.P1.Y)
		px2, py2 := g.toImage(bez.P2.X, bez.P2.Y)
		px3, py3 := g.toImage(bez.P3.X, bez.P3.Y)
		if i == 0 {
			g.ctx.MoveTo(px0, py0)
		}
		g.ctx.CubicTo(px1, py1, px2, py2, px3, py3)
	}
	g.ctx.Stroke()

	// inclination along the curve
	g.ctx.SetLineWidth(1.5)
	for h := 0.0; h+g.SampleStep <= curve.MaxHeight(); h += g.SampleStep {
		g.ctx.SetColor(g.angleColor(math.Atan(curve.DerivativeAt(h))))
		ax, ay := g.toImage(h, curve.ValueAt(h))
		bx, by := g.toImage(h+g.SampleStep, curve.ValueAt(h+g.SampleStep))
		g.ctx.DrawLine(ax, ay, bx, by)
		g.ctx.Stroke()
	}

	// build plate
	g.ctx.SetColor(colornames.Gray)
	g.ctx.SetLineWidth(2)
	x0, y0 = g.toImage(0, 0)
	x1, y1 = g.toImage(0, g.PlotSize)
	g.ctx.DrawLine(x0, y0, x1, y1)
	g.ctx.Stroke()

	// control points
	g.ctx.SetColor(colornames.Red)
	heights, offsets := curve.Heights(), curve.Offsets()
	for i := range heights {
		px, py := g.toImage(heights[i], offsets[i])
		g.ctx.DrawCircle(px, py, 4)
		g.ctx.Fill()
	}
}

func (g *CurvePlot) Save() error {
	return g.ctx.SavePNG(g.OutputFileName)
}

func main() {
	cfg := nonplanar.DefaultConfig()
	var configPath string
	plot := CurvePlot{
		ImageSize:  650,
		PlotSize:   200,
		SampleStep: 1,
	}

	cfg.RegisterFlags(flag.CommandLine)
	flag.StringVarP(&configPath, "config", "c", "", "YAML bend profile; flags given on the command line win")
	flag.IntVar(&plot.ImageSize, "size", plot.ImageSize, "image width and height in pixels")
	flag.Float64Var(&plot.PlotSize, "extent", plot.PlotSize, "mm shown along each axis")
	flag.Parse()

	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Usage:\n    %s [options] <output.png>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	plot.OutputFileName = flag.Arg(0)

	if configPath != "" {
		fileCfg, err := nonplanar.LoadConfig(configPath)
		die(err)
		fileCfg.Override(cfg, flag.CommandLine.Changed)
		cfg = fileCfg
	}
	die(cfg.Validate())
	plot.MaxAngle = cfg.MaxAngle

	curve, err := nonplanar.NewCurveModel(cfg.HeightPoints, cfg.OffsetPoints, 0, cfg.SplineAngle)
	die(err)

	plot.RenderCurve(curve)
	die(plot.Save())
}

func die(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
