package chart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/robalyx/collegemsg/internal/export/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Chart dimensions and styling constants control the visual appearance
// of the activity chart.
const (
	// chartWidth is the rendered image width in pixels.
	chartWidth = 1024
	// chartHeight is the rendered image height in pixels.
	chartHeight = 512
	// barWidth is the width of a single bucket bar.
	barWidth = 30
	// titleFontSize sets the size of the chart title text.
	titleFontSize = 12.0
	// axisFontSize sets the size of axis labels.
	axisFontSize = 10.0
	// paddingTop adds space above the chart.
	paddingTop = 40
)

// ErrNoBuckets indicates a bucketing without any bucket to draw.
var ErrNoBuckets = errors.New("no buckets to chart")

// Labeler names the bucket at a key.
type Labeler func(key int) string

// Exporter renders per-bucket message counts as PNG bar charts.
type Exporter struct {
	outDir     string
	labels     map[string]Labeler
	titleCaser cases.Caser
}

// New creates a new chart exporter instance. labels maps a bucketing name to
// the function naming its buckets; bucketings without one use the key.
func New(outDir string, labels map[string]Labeler) *Exporter {
	return &Exporter{
		outDir:     outDir,
		labels:     labels,
		titleCaser: cases.Title(language.English),
	}
}

// FileName returns the image a bucketing is rendered to.
func FileName(name string) string {
	return "activity_" + name + ".png"
}

// Export renders one chart per bucketing. User records are not charted.
func (e *Exporter) Export(graphs []*types.Graph, _ []*types.UserRecord) error {
	for _, g := range graphs {
		buf, err := e.render(g)
		if err != nil {
			return fmt.Errorf("failed to render %s chart: %w", g.Name, err)
		}

		if err := os.WriteFile(filepath.Join(e.outDir, FileName(g.Name)), buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s chart: %w", g.Name, err)
		}
	}

	return nil
}

// render draws the message count of every bucket.
func (e *Exporter) render(g *types.Graph) (*bytes.Buffer, error) {
	if len(g.Counts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoBuckets, g.Name)
	}

	label := e.labels[g.Name]
	if label == nil {
		label = strconv.Itoa
	}

	bars := make([]chart.Value, len(g.Counts))
	for key, count := range g.Counts {
		bars[key] = chart.Value{
			Label: label(key),
			Value: float64(count),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex("4682b4"),
				StrokeColor: drawing.ColorFromHex("4682b4"),
				StrokeWidth: 0,
			},
		}
	}

	// A zero range cannot be drawn so the axis always spans at least one message
	maxCount := max(slices.Max(g.Counts), 1)

	graph := chart.BarChart{
		Title: fmt.Sprintf("Messages by %s", e.titleCaser.String(g.Name)),
		TitleStyle: chart.Style{
			FontSize: titleFontSize,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: paddingTop},
		},
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: barWidth,
		XAxis: chart.Style{
			FontSize: axisFontSize,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: axisFontSize},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}

	buf := new(bytes.Buffer)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, err
	}

	return buf, nil
}
