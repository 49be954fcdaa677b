package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/academy/pkg/analysis"
	"github.com/vanderheijden86/academy/pkg/model"
)

// ReportOptions controls progress report export.
type ReportOptions struct {
	Path    string // Output path; format inferred from extension when Format empty
	Format  string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title   string
	Summary analysis.Summary
}

// SaveProgressReport renders a one-page progress chart: a header with the
// overall and checklist numbers and one horizontal bar per category.
func SaveProgressReport(opts ReportOptions) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg"
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return "", fmt.Errorf("output path is required")
	}
	if opts.Title == "" {
		opts.Title = "Lesson Progress"
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return "", fmt.Errorf("create parent dir: %w", err)
	}

	layout := buildReportLayout(opts)

	var err error
	switch format {
	case "svg":
		err = renderReportSVG(opts.Path, layout)
	case "png":
		err = renderReportPNG(opts.Path, layout)
	}
	if err != nil {
		return "", err
	}
	return opts.Path, nil
}

// --- layout ----------------------------------------------------------------

var (
	colorBackdrop = color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff}
	colorHeaderBG = color.RGBA{R: 0xe0, G: 0xe7, B: 0xff, A: 0xff}
	colorTrack    = color.RGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	colorBar      = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	colorBarFive  = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	colorText     = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	colorSubtle   = color.RGBA{R: 0x4b, G: 0x55, B: 0x63, A: 0xff}
)

type reportBar struct {
	Label   string
	Detail  string
	Percent int
	Color   color.RGBA
	Y       float64
}

type reportLayout struct {
	Width, Height int
	Header        float64
	LabelW        float64
	TrackX        float64
	TrackW        float64
	BarH          float64
	Title         string
	Lines         []string
	Bars          []reportBar
}

func buildReportLayout(opts ReportOptions) reportLayout {
	const (
		width        = 720
		padding      = 32.0
		headerHeight = 120.0
		labelW       = 190.0
		barH         = 22.0
		rowGap       = 18.0
	)

	s := opts.Summary
	l := reportLayout{
		Width:  width,
		Header: headerHeight,
		LabelW: labelW,
		TrackX: padding + labelW,
		TrackW: width - 2*padding - labelW - 60,
		BarH:   barH,
		Title:  opts.Title,
		Lines: []string{
			fmt.Sprintf("overall: %d%%  (%d of %d lessons)", s.Overall, s.CompletedLessons, s.TotalLessons),
			fmt.Sprintf("checklists: %d of %d items  mean %.1f%%  sd %.1f", s.ChecklistChecked, s.ChecklistItems, s.ChecklistMean, s.ChecklistStdDev),
		},
	}

	y := headerHeight + padding
	for _, row := range s.Categories {
		c := colorBar
		if row.Rating == model.MaxStarRating {
			c = colorBarFive
		}
		l.Bars = append(l.Bars, reportBar{
			Label:   fmt.Sprintf("%d* %s", int(row.Rating), row.Label),
			Detail:  fmt.Sprintf("%d/%d", row.Completed, row.Lessons),
			Percent: row.Percent,
			Color:   c,
			Y:       y,
		})
		y += barH + rowGap
	}
	l.Height = int(y + padding)
	return l
}

func (b reportBar) fill(trackW float64) float64 {
	return trackW * float64(b.Percent) / 100
}

// --- PNG -------------------------------------------------------------------

func renderReportPNG(path string, l reportLayout) error {
	dc := gg.NewContext(l.Width, l.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(l.Width)-32, l.Header-24, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(l.Title, 32, 44, 0, 0.5)
	dc.SetColor(colorSubtle)
	for i, line := range l.Lines {
		dc.DrawStringAnchored(line, 32, 68+float64(i)*20, 0, 0.5)
	}

	for _, b := range l.Bars {
		mid := b.Y + l.BarH/2
		dc.SetColor(colorText)
		dc.DrawStringAnchored(b.Label, 32, mid, 0, 0.5)

		dc.SetColor(colorTrack)
		dc.DrawRoundedRectangle(l.TrackX, b.Y, l.TrackW, l.BarH, 6)
		dc.Fill()
		if w := b.fill(l.TrackW); w > 0 {
			dc.SetColor(b.Color)
			dc.DrawRoundedRectangle(l.TrackX, b.Y, w, l.BarH, 6)
			dc.Fill()
		}

		dc.SetColor(colorSubtle)
		dc.DrawStringAnchored(fmt.Sprintf("%d%% %s", b.Percent, b.Detail), l.TrackX+l.TrackW+10, mid, 0, 0.5)
	}

	return dc.SavePNG(path)
}

// --- SVG -------------------------------------------------------------------

func renderReportSVG(path string, l reportLayout) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return renderReportSVGToWriter(file, l)
}

func renderReportSVGToWriter(w io.Writer, l reportLayout) error {
	canvas := svg.New(w)
	canvas.Start(l.Width, l.Height)
	canvas.Rect(0, 0, l.Width, l.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, l.Width-32, int(l.Header-24), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))

	canvas.Text(32, 44, l.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	for i, line := range l.Lines {
		canvas.Text(32, 68+i*20, line, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))
	}

	trackX, trackW, barH := int(l.TrackX), int(l.TrackW), int(l.BarH)
	for _, b := range l.Bars {
		y := int(b.Y)
		canvas.Text(32, y+barH/2+4, b.Label, fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorText)))
		canvas.Roundrect(trackX, y, trackW, barH, 6, 6, fmt.Sprintf("fill:%s", css(colorTrack)))
		if w := int(b.fill(l.TrackW)); w > 0 {
			canvas.Roundrect(trackX, y, w, barH, 6, 6, fmt.Sprintf("fill:%s", css(b.Color)))
		}
		canvas.Text(trackX+trackW+10, y+barH/2+4, fmt.Sprintf("%d%% %s", b.Percent, b.Detail),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))
	}

	canvas.End()
	return nil
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
