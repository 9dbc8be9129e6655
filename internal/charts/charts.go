// Package charts renders aggregate series as stacked-area HTML charts. It is
// a pure consumer of the aggregate package and holds no logic beyond series
// plumbing and styling.
package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hshore29/FacebookActivityGrapher/internal/aggregate"
)

// palette matches the original figure colors, keyed by series where one
// applies; extra series rotate through the list.
var palette = opts.Colors{
	"#4260B4", // post
	"#8ED66F", // comment
	"#9B0024", // event
	"#D2D5DA", // friend
	"#5885FF", // like
	"#008BFF", // message
}

// Renderer writes chart files into a target directory.
type Renderer struct {
	outDir string
}

// NewRenderer creates a Renderer writing into outDir, creating it if needed.
func NewRenderer(outDir string) (*Renderer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	return &Renderer{outDir: outDir}, nil
}

// RenderAll draws the three standard charts from the two aggregate query
// shapes: activity by action type, posts by author class, and cumulative
// friend count by cohort.
func (r *Renderer) RenderAll(actions, friendDeltas []aggregate.Row) error {
	byType, err := aggregate.Reshape(actions, 1)
	if err != nil {
		return fmt.Errorf("failed to reshape action types: %w", err)
	}
	if err := r.renderStacked("Activity by type", "activity_by_type.html", byType); err != nil {
		return err
	}

	posts, err := aggregate.Reshape(aggregate.Filter(actions, 1, "post"), 0)
	if err != nil {
		return fmt.Errorf("failed to reshape post authors: %w", err)
	}
	if err := r.renderStacked("Posts by author", "posts_by_author.html", posts); err != nil {
		return err
	}

	byCohort, err := aggregate.Reshape(friendDeltas, 0)
	if err != nil {
		return fmt.Errorf("failed to reshape friend cohorts: %w", err)
	}
	return r.renderStacked("Friends by cohort", "friends_by_cohort.html", byCohort.Cumulative())
}

// renderStacked draws one stacked-area chart and writes it as HTML.
func (r *Renderer) renderStacked(title, file string, s *aggregate.Series) error {
	line := echarts.NewLine()
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		echarts.WithColorsOpts(palette),
	)
	line.SetXAxis(bucketLabels(s.Date))

	for _, name := range s.Names() {
		label := name
		if label == "" {
			label = "unclassified"
		}
		line.AddSeries(label, lineData(s.Values[name]))
	}
	line.SetSeriesOptions(
		echarts.WithLineChartOpts(opts.LineChart{Stack: "total"}),
		echarts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.8}),
	)

	path := filepath.Join(r.outDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render %s: %w", file, err)
	}
	return nil
}

// bucketLabels formats month bucket keys (year + (month-1)/12) as YYYY-MM.
func bucketLabels(buckets []float64) []string {
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		year := math.Floor(b)
		month := int(math.Round((b-year)*12)) + 1
		labels[i] = fmt.Sprintf("%04d-%02d", int(year), month)
	}
	return labels
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}
