package session

import (
	"fmt"
	"strconv"

	"vision-cli/api/internal/console"
	"vision-cli/api/internal/vision"
)

const separator = "----------------------------------------------------------"

var tableHeaders = []string{"Tag", "Confidence"}

func percent(confidence float64) string {
	return fmt.Sprintf("%.2f%%", confidence*100)
}

func tagRows(tags []vision.Tag) [][]string {
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{t.Name, percent(t.Confidence)})
	}
	return rows
}

func display(ui UI, res vision.Result) {
	ui.ShowTable(tableHeaders, tagRows(res.Tags))
	ui.Println(console.ToneSuccess, "Total Objects Detected: "+strconv.Itoa(res.ObjectCount()))
	ui.Println(console.ToneSuccess, "Description: "+res.Description())
	ui.Println(console.ToneSuccess, separator)
}
