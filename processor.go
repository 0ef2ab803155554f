package nonplanar

import (
	"bufio"
	"io"
	"strings"

	"github.com/sgostarter/i/l"
)

type positioningMode byte

const (
	absoluteMode positioningMode = iota // G90
	relativeMode                        // G91
)

// ProcessorState is the modal state carried from one line to the next.
type ProcessorState struct {
	RelativeMode bool
	LastPosition Point2D
	LastZ        float64
	CurrentZ     float64
}

// Processor rewrites a planar program line by line. It is not safe for
// concurrent use; output depends on the previous line.
type Processor struct {
	transformer *Transformer
	logger      l.Wrapper

	mode     positioningMode
	lastPos  Point2D
	lastZ    float64
	currentZ float64

	line   int
	report Report
}

func NewProcessor(transformer *Transformer, logger l.Wrapper) *Processor {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if transformer == nil {
		logger.Fatal("no transformer")
	}

	return &Processor{
		transformer: transformer,
		logger:      logger.WithFields(l.StringField(l.ClsKey, "Processor")),
		mode:        absoluteMode,
	}
}

func (p *Processor) State() ProcessorState {
	return ProcessorState{
		RelativeMode: p.mode == relativeMode,
		LastPosition: p.lastPos,
		LastZ:        p.lastZ,
		CurrentZ:     p.currentZ,
	}
}

// Report returns what has been processed so far.
func (p *Processor) Report() Report {
	r := p.report
	r.Diagnostics = append([]Diagnostic(nil), p.report.Diagnostics...)
	return r
}

// Process streams r to w. Only read and write errors are returned; every
// per-line problem ends up in the report.
func (p *Processor) Process(r io.Reader, w io.Writer) (Report, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			if werr := p.ProcessLine(raw, bw); werr != nil {
				return p.Report(), werr
			}
		}
		if err == io.EOF {
			break
		} else if err != nil {
			return p.Report(), err
		}
	}

	if err := bw.Flush(); err != nil {
		return p.Report(), err
	}
	return p.Report(), nil
}

// ProcessLine handles one raw line, terminator included, writing its
// replacement to w.
func (p *Processor) ProcessLine(raw string, w io.Writer) error {
	p.line++
	p.report.Lines++

	line := strings.TrimRight(raw, "\r\n")

	if IsComment(line) {
		return p.passThrough(raw, w)
	}

	switch ParseModeSwitch(line) {
	case SwitchRelative:
		p.mode = relativeMode
		return p.passThrough(raw, w)
	case SwitchAbsolute:
		p.mode = absoluteMode
		return p.passThrough(raw, w)
	}

	if p.mode == relativeMode {
		return p.passThrough(raw, w)
	}

	cmd, ok := ParseCommand(line)
	if !ok {
		return p.passThrough(raw, w)
	}

	if cmd.Z != nil {
		p.currentZ = *cmd.Z
	}

	if !cmd.HasXY() {
		if cmd.Z != nil {
			return p.verticalMove(cmd, w)
		}
		return p.passThrough(raw, w)
	}

	return p.curveMove(cmd, raw, w)
}

// verticalMove emits a Z only move relative to the last height, so lifts
// do not jump back to planar heights. The positioning mode is absolute
// again after it.
func (p *Processor) verticalMove(cmd Command, w io.Writer) error {
	dz := p.currentZ - p.lastZ
	p.mode = relativeMode
	err := writeVerticalMove(w, dz, cmd.F)
	p.mode = absoluteMode
	if err != nil {
		return err
	}
	p.lastZ = p.currentZ
	p.report.VerticalMoves++
	return nil
}

func (p *Processor) curveMove(cmd Command, raw string, w io.Writer) error {
	pos := Pt(*cmd.X, *cmd.Y)

	res, err := p.transformer.Transform(p.currentZ, pos.X, p.lastPos.X)
	if err != nil {
		p.diagnose(Diagnostic{Kind: RangeExceeded, Height: p.currentZ, Err: err})
		return p.passThrough(raw, w)
	}

	for _, d := range res.Diagnostics {
		p.diagnose(d)
	}
	if res.Implausible {
		return p.passThrough(raw, w)
	}

	var e *float64
	if cmd.E != nil {
		scaled := *cmd.E * res.ExtrusionScale
		e = &scaled
	}

	typ := LinearMove
	if cmd.Type == RapidMove {
		typ = RapidMove
	}

	if err := writeMove(w, typ, res.Point.Y, pos.Y, res.Point.X, e, cmd.F); err != nil {
		return err
	}

	p.lastPos = pos
	p.lastZ = p.currentZ
	p.report.Transformed++
	return nil
}

func (p *Processor) diagnose(d Diagnostic) {
	d.Line = p.line
	d.log(p.logger)
	p.report.Diagnostics = append(p.report.Diagnostics, d)
}

func (p *Processor) passThrough(raw string, w io.Writer) error {
	p.report.PassedThrough++
	_, err := io.WriteString(w, raw)
	return err
}
