// Package templates renders the generator's HTML as templ components.
//
// The .templ files are the source; run `templ generate` after editing them.
package templates

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/issuecsv/internal/core"
)

// PageData is everything the full page needs.
type PageData struct {
	Templates   []core.TemplateInfo
	Active      core.TemplateInfo
	Snapshot    *core.Snapshot
	Theme       string
	PreviewRows int
}

func nextTheme(theme string) string {
	if theme == "dark" {
		return "light"
	}
	return "dark"
}

func themeToggleLabel(theme string) string {
	if theme == "dark" {
		return "Light mode"
	}
	return "Dark mode"
}

func apiPath(key, action string) string {
	return "/api/" + key + "/" + action
}

func downloadPath(key string, part int) string {
	return apiPath(key, "download/"+strconv.Itoa(part))
}

func snapshotParams(snap *core.Snapshot) core.Params {
	if snap == nil {
		return core.Params{}
	}
	return snap.Params
}

// teamsValue leaves the field empty until a positive count was submitted.
func teamsValue(p core.Params) string {
	if p.Teams <= 0 {
		return ""
	}
	return strconv.Itoa(p.Teams)
}

func droppedNote(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf(", %d incomplete rows skipped", n)
}

func summaryLine(sum core.Summary) string {
	return fmt.Sprintf("%d rows in %d file(s): %d epics, %d stories, %d tasks, %d sub-tasks, %d assignees",
		sum.Rows, sum.Files, sum.Epics, sum.Stories, sum.Tasks, sum.SubTasks, sum.Assignees)
}

// previewRows returns the first limit data rows. A limit of zero or less
// returns every row.
func previewRows(out *core.Output, limit int) []core.Row {
	rows := out.Table.DataRows()
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
