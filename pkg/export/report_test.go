package export

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/academy/pkg/analysis"
	"github.com/vanderheijden86/academy/pkg/model"
)

func reportSummary() analysis.Summary {
	return analysis.Summarize(exportLessons(), model.ProgressMap{
		"membership-model": {Completed: true, Checklist: map[int]bool{0: true}},
	})
}

func TestSaveProgressReport_SVGAndPNG(t *testing.T) {
	tmp := t.TempDir()
	for _, name := range []string{"report.svg", "report.png"} {
		t.Run(name, func(t *testing.T) {
			out, err := SaveProgressReport(ReportOptions{Path: filepath.Join(tmp, name), Summary: reportSummary()})
			if err != nil {
				t.Fatalf("SaveProgressReport: %v", err)
			}
			info, err := os.Stat(out)
			if err != nil {
				t.Fatalf("output not created: %v", err)
			}
			if info.Size() == 0 {
				t.Fatal("output file is empty")
			}
		})
	}
}

func TestSaveProgressReport_PNGSignature(t *testing.T) {
	out, err := SaveProgressReport(ReportOptions{Path: filepath.Join(t.TempDir(), "r.png"), Summary: reportSummary()})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(out)
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}

func TestSaveProgressReport_NoExtensionDefaultsToSVG(t *testing.T) {
	base := filepath.Join(t.TempDir(), "report")
	out, err := SaveProgressReport(ReportOptions{Path: base, Summary: reportSummary()})
	if err != nil {
		t.Fatal(err)
	}
	if out != base+".svg" {
		t.Errorf("out = %q, want %q", out, base+".svg")
	}
}

func TestSaveProgressReport_Errors(t *testing.T) {
	if _, err := SaveProgressReport(ReportOptions{Path: "r.txt", Format: "txt"}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := SaveProgressReport(ReportOptions{}); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestReportSVG_WellFormed(t *testing.T) {
	var buf bytes.Buffer
	layout := buildReportLayout(ReportOptions{Summary: reportSummary()})
	if err := renderReportSVGToWriter(&buf, layout); err != nil {
		t.Fatal(err)
	}

	dec := xml.NewDecoder(bytes.NewReader(buf.Bytes()))
	root := ""
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
		if se, ok := tok.(xml.StartElement); ok && root == "" {
			root = se.Name.Local
		}
	}
	if root != "svg" {
		t.Errorf("root element = %q, want svg", root)
	}

	out := buf.String()
	for _, want := range []string{"overall: 50%", "5* NON-OPTIONAL", "100% 1/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestReportLayout_OneBarPerCategory(t *testing.T) {
	layout := buildReportLayout(ReportOptions{Summary: reportSummary()})
	if len(layout.Bars) != len(model.AllStarRatings) {
		t.Fatalf("expected %d bars, got %d", len(model.AllStarRatings), len(layout.Bars))
	}
	if layout.Bars[0].Color != colorBarFive {
		t.Error("5-star bar should use the highlight color")
	}
	for i := 1; i < len(layout.Bars); i++ {
		if layout.Bars[i].Y <= layout.Bars[i-1].Y {
			t.Fatal("bars must be laid out top to bottom")
		}
	}
}
