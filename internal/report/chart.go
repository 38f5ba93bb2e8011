package report

import (
	"bytes"
	"errors"
	"hash/fnv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptyDataset is returned when there is nothing to draw.
var ErrEmptyDataset = errors.New("empty dataset")

// Renderer turns a dataset into an encoded raster image.
type Renderer interface {
	Render(d Dataset) ([]byte, error)
}

// Colors are fixed per label so the same report always renders the
// same way; labels outside the map pick from a cycle keyed by a hash
// of the label, which is still stable across renders.
var labelColors = map[string]drawing.Color{
	"income":  drawing.ColorFromHex("4bc0c0"),
	"expense": drawing.ColorFromHex("ff6384"),

	"Entertainment & Shopping": drawing.ColorFromHex("ff6384"),
	"Dining":                   drawing.ColorFromHex("36a2eb"),
	"Transportation":           drawing.ColorFromHex("ffce56"),
	"Daily Necessities":        drawing.ColorFromHex("4bc0c0"),
	"Shipping Cost":            drawing.ColorFromHex("9966ff"),
	"Gambling":                 drawing.ColorFromHex("ff9f40"),
	"Sell Price":               drawing.ColorFromHex("c9cbcf"),
	"Pocket Money":             drawing.ColorFromHex("36a2eb"),
	"Gambling (Friends)":       drawing.ColorFromHex("ffce56"),
}

var fallbackColors = []drawing.Color{
	drawing.ColorFromHex("ff6384"),
	drawing.ColorFromHex("36a2eb"),
	drawing.ColorFromHex("ffce56"),
	drawing.ColorFromHex("4bc0c0"),
	drawing.ColorFromHex("9966ff"),
	drawing.ColorFromHex("ff9f40"),
}

// ColorFor returns the deterministic color for a series or category label.
func ColorFor(label string) drawing.Color {
	if c, ok := labelColors[label]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(label))
	return fallbackColors[h.Sum32()%uint32(len(fallbackColors))]
}

// ChartRenderer draws stacked bar charts with go-chart.
type ChartRenderer struct {
	Width  int
	Height int

	// ColorFor is a seam for tests; defaults to the package palette.
	ColorFor func(label string) drawing.Color
}

func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{
		Width:    800,
		Height:   600,
		ColorFor: ColorFor,
	}
}

// Render encodes the dataset as a PNG stacked bar chart, one bar per
// label with one stack component per series. Zero components are
// dropped; a dataset with no positive values is an error, never a
// partial image.
func (r *ChartRenderer) Render(d Dataset) ([]byte, error) {
	bars := make([]chart.StackedBar, 0, len(d.Labels))
	for i, label := range d.Labels {
		var values []chart.Value
		for _, s := range d.Series {
			if i >= len(s.Values) || s.Values[i] <= 0 {
				continue
			}
			values = append(values, chart.Value{
				Label: s.Label,
				Value: s.Values[i],
				Style: chart.Style{
					FillColor:   r.ColorFor(s.Label),
					StrokeColor: r.ColorFor(s.Label),
				},
			})
		}
		if len(values) == 0 {
			continue
		}
		bars = append(bars, chart.StackedBar{
			Name:   label,
			Values: values,
		})
	}
	if len(bars) == 0 {
		return nil, ErrEmptyDataset
	}

	sbc := chart.StackedBarChart{
		Title:      d.Title,
		TitleStyle: chart.Style{FontSize: 12},
		Width:      r.Width,
		Height:     r.Height,
		XAxis:      chart.Style{FontSize: 9},
		YAxis:      chart.Style{FontSize: 9},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := sbc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
