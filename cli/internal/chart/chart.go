// ABOUTME: HTML power charts for plans using go-echarts
// ABOUTME: Renders per-slot watts with the daily average marked

package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/markalston/network-capacity-planner/models"
)

// PowerCurve writes a line chart of the plan's 48 power slots to w
func PowerCurve(w io.Writer, plan *models.PlanResult) error {
	if plan == nil {
		return fmt.Errorf("no plan to chart")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Daily power",
			Subtitle: fmt.Sprintf("%s, average %.1f W, peak %.0f W", plan.Policy, plan.Power.Average, plan.Power.Peak),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "slot"}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "W",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	labels := make([]string, models.SlotsPerDay)
	data := make([]opts.LineData, models.SlotsPerDay)
	for i, watts := range plan.Power.PerSlot {
		labels[i] = models.SlotLabel(i)
		data[i] = opts.LineData{Value: watts}
	}

	line.SetXAxis(labels).
		AddSeries("Power", data).
		SetSeriesOptions(
			charts.WithMarkLineNameTypeItemOpts(opts.MarkLineNameTypeItem{Name: "Average", Type: "average"}),
		)

	return line.Render(w)
}

// WritePowerCurve renders the chart into a file at path
func WritePowerCurve(path string, plan *models.PlanResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := PowerCurve(f, plan); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
