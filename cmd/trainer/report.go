package main

import (
	"fmt"
	"hybrid-guard/services"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

var classNames = [2]string{"Benign", "Malicious"}

// RenderReport prints the held-out evaluation: per-class metrics, then the confusion matrix.
func RenderReport(w io.Writer, report services.TrainingReport, colours bool) {
	eval := report.Evaluation

	title := fmt.Sprintf("Model %s trained on %d rows, evaluated on %d", report.Model.Version, report.TrainRows, report.TestRows)
	accuracy := fmt.Sprintf("Accuracy: %.2f%%", eval.Accuracy*100)
	if colours {
		title = color.New(color.BgBlack, color.FgGreen).Render(title)
		style := color.New(color.FgGreen)
		if eval.Accuracy < 0.8 {
			style = color.New(color.FgYellow)
		}
		accuracy = style.Render(accuracy)
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, accuracy)
	fmt.Fprintln(w)

	classes := newTable(w)
	classes.SetHeader([]string{"Class", "Precision", "Recall", "F1", "Support"})
	for i, c := range eval.Classes {
		classes.Append([]string{
			classNames[i],
			fmt.Sprintf("%.2f", c.Precision),
			fmt.Sprintf("%.2f", c.Recall),
			fmt.Sprintf("%.2f", c.F1),
			fmt.Sprintf("%d", c.Support),
		})
	}
	classes.Render()
	fmt.Fprintln(w)

	confusion := newTable(w)
	confusion.SetHeader([]string{"Actual \\ Predicted", classNames[0], classNames[1]})
	for actual, row := range eval.Confusion {
		confusion.Append([]string{classNames[actual], fmt.Sprintf("%d", row[0]), fmt.Sprintf("%d", row[1])})
	}
	confusion.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
