package templates

import (
	"strconv"
	"strings"

	"github.com/JonMunkholm/issuecsv/internal/core"
)

func init() {
	core.Register(Generic{})
}

// GenericTaskSummary is the summary of the Task row created per assignee.
const GenericTaskSummary = "Deep Dive into Serverless"

// GenericSubTasks are created under every Task, in this order.
var GenericSubTasks = []string{
	"Introduction",
	"Learn the Fundamentals of the AWS Cloud",
	"Serverless Fundamentals",
	"IAM Fundamentals",
	"Serverless Design",
	"Advanced Serverless Concepts",
	"Final steps",
}

var genericInfo = core.TemplateInfo{
	Key:        "generic",
	Order:      1,
	Label:      "Generic Tasks",
	FilePrefix: "data",
	Header:     core.Row{"Assignee", "Issue Type", "Issue ID", "Parent ID", "Summary", "Component"},
	Params:     []core.Param{core.ParamComponent, core.ParamEmails},
	Hint:       "One email per row",
}

// Generic creates one Task with a fixed set of Sub-tasks for every pasted
// email. The data paste is the email list.
type Generic struct{}

func (Generic) Info() core.TemplateInfo { return genericInfo }

// Parse extracts emails from the paste. Email pastes have no minimum length.
func (Generic) Parse(text string, _ core.ParseOptions) (core.ParseResult, error) {
	if err := core.CheckEmailPaste(text); err != nil {
		return core.ParseResult{}, err
	}
	emails, err := core.ExtractEmails(text)
	if err != nil {
		return core.ParseResult{}, err
	}
	lines := core.SplitLines(text)
	return core.ParseResult{
		Emails: emails,
		Report: core.ParseReport{Lines: len(lines), Rows: len(emails)},
	}, nil
}

func (Generic) ParseRows(rows [][]string) (core.ParseResult, error) {
	emails, err := core.EmailsFromRows(rows)
	if err != nil {
		return core.ParseResult{}, err
	}
	return core.ParseResult{
		Emails: emails,
		Report: core.ParseReport{Lines: len(rows), Rows: len(emails)},
	}, nil
}

// Generate numbers every row from a single counter starting at 1; each
// Sub-task's Parent ID is its Task's Issue ID.
func (Generic) Generate(in core.GenerateInput) (core.Table, error) {
	if err := core.ValidateParams(genericInfo, in); err != nil {
		return nil, err
	}
	rows := len(in.Emails) * (1 + len(GenericSubTasks))
	if err := in.Limits.CheckRows(rows); err != nil {
		return nil, err
	}
	component := strings.TrimSpace(in.Params.Component)

	table := make(core.Table, 0, 1+rows)
	table = append(table, genericInfo.Header)

	id := 0
	for _, email := range in.Emails {
		id++
		taskID := strconv.Itoa(id)
		table = append(table, core.Row{email, core.IssueTask, taskID, "", GenericTaskSummary, component})

		for _, name := range GenericSubTasks {
			id++
			table = append(table, core.Row{email, core.IssueSubTask, strconv.Itoa(id), taskID, name, component})
		}
	}
	return table, nil
}
