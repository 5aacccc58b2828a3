package core

// Summarize counts issue types and assignees in a generated table. The
// Issue Type and Assignee columns are located from the header.
func Summarize(t Table, files int) Summary {
	s := Summary{Rows: len(t.DataRows()), Files: files}
	header := t.Header()
	typeIdx, assigneeIdx := -1, -1
	for i, h := range header {
		switch h {
		case "Issue Type":
			typeIdx = i
		case "Assignee":
			assigneeIdx = i
		}
	}

	assignees := make(map[string]struct{})
	for _, row := range t.DataRows() {
		if typeIdx >= 0 && typeIdx < len(row) {
			switch row[typeIdx] {
			case IssueEpic:
				s.Epics++
			case IssueStory:
				s.Stories++
			case IssueTask:
				s.Tasks++
			case IssueSubTask:
				s.SubTasks++
			}
		}
		if assigneeIdx >= 0 && assigneeIdx < len(row) && row[assigneeIdx] != "" {
			assignees[row[assigneeIdx]] = struct{}{}
		}
	}
	s.Assignees = len(assignees)
	return s
}
