package templates

import (
	"strings"

	"github.com/JonMunkholm/issuecsv/internal/core"
)

func init() {
	core.Register(DevOps{})
}

// The epic column must be present but its values are not used: every
// assignee gets an epic named after them.
var devopsRoles = []core.RoleSpec{
	{Role: core.RoleEpic, Label: "Epic", Candidates: []string{"epic", "epic name"}},
	{Role: core.RoleTask, Label: "Task", Candidates: []string{"task", "summary", "title"}},
	{Role: core.RoleDescription, Label: "Description", Candidates: []string{"description", "desc", "details"}},
}

var devopsInfo = core.TemplateInfo{
	Key:        "devops",
	Order:      3,
	Label:      "DevOps Tasks",
	FilePrefix: "devops_tasks",
	Header:     core.Row{"Assignee", "Issue Type", "Epic Name", "Epic Link", "Summary", "Description", "Component"},
	Roles:      devopsRoles,
	MultiLine:  true,
	EmailPaste: true,
	Params:     []core.Param{core.ParamComponent, core.ParamData, core.ParamEmails},
	Hint:       "Expected columns: Epic, Task, Description",
}

// DevOps gives every assignee an epic named after them containing one Task
// per pasted row.
type DevOps struct{}

func (DevOps) Info() core.TemplateInfo { return devopsInfo }

// Parse reads a task table whose descriptions may span several lines.
func (DevOps) Parse(text string, opts core.ParseOptions) (core.ParseResult, error) {
	if err := core.CheckDataPaste(text, opts.MinLength); err != nil {
		return core.ParseResult{}, err
	}
	records, report, err := core.ParseTable(text, devopsInfo.Roles, devopsInfo.MultiLine)
	if err != nil {
		return core.ParseResult{Report: report}, err
	}
	return core.ParseResult{Records: records, Report: report}, nil
}

func (DevOps) ParseRows(rows [][]string) (core.ParseResult, error) {
	records, report, err := core.FromRows(rows, devopsInfo.Roles)
	if err != nil {
		return core.ParseResult{Report: report}, err
	}
	return core.ParseResult{Records: records, Report: report}, nil
}

// Generate follows the email order it is given. Records with a blank task
// are skipped; descriptions are copied verbatim.
func (DevOps) Generate(in core.GenerateInput) (core.Table, error) {
	if err := core.ValidateParams(devopsInfo, in); err != nil {
		return nil, err
	}
	tasks := 0
	for _, rec := range in.Records {
		if strings.TrimSpace(rec[core.RoleTask]) != "" {
			tasks++
		}
	}
	if err := in.Limits.CheckRows(len(in.Emails) * (1 + tasks)); err != nil {
		return nil, err
	}
	component := strings.TrimSpace(in.Params.Component)

	table := make(core.Table, 0, 1+len(in.Emails)*(1+tasks))
	table = append(table, devopsInfo.Header)
	for _, email := range in.Emails {
		name := core.DisplayName(email)
		table = append(table, core.Row{email, core.IssueEpic, name, "", name, "", component})

		for _, rec := range in.Records {
			task := strings.TrimSpace(rec[core.RoleTask])
			if task == "" {
				continue
			}
			table = append(table, core.Row{
				email, core.IssueTask, "", name, task, rec[core.RoleDescription], component,
			})
		}
	}
	return table, nil
}
