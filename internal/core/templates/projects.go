package templates

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JonMunkholm/issuecsv/internal/core"
)

func init() {
	core.Register(Projects{})
}

// teamSuffix matches a trailing team token such as " T2_PAYMENTS".
var teamSuffix = regexp.MustCompile(`(?i)\s+T\d+_[A-Z0-9]+$`)

var projectsRoles = []core.RoleSpec{
	{Role: core.RoleEpic, Label: "Epic", Candidates: []string{"epic"}},
	{Role: core.RoleStory, Label: "Story", Candidates: []string{"story"}},
	{Role: core.RoleSprint, Label: "Sprint", Candidates: []string{"sprint"}},
	{Role: core.RoleDescription, Label: "Description", Candidates: []string{"description", "desc"}},
}

var projectsInfo = core.TemplateInfo{
	Key:        "projects",
	Order:      2,
	Label:      "Projects (Epics & Stories)",
	FilePrefix: "projects_task",
	Header:     core.Row{"Epic Name", "Epic Link", "Label", "Issue Type", "Summary", "Description", "Component"},
	Roles:      projectsRoles,
	Params:     []core.Param{core.ParamComponent, core.ParamLabel, core.ParamTeams, core.ParamData},
	Hint:       "Expected columns: Epic, Story, Sprint, Description",
}

// Projects copies an epic/story tree once per team, scoping epic names and
// components to the team.
type Projects struct{}

func (Projects) Info() core.TemplateInfo { return projectsInfo }

func (Projects) Parse(text string, opts core.ParseOptions) (core.ParseResult, error) {
	if err := core.CheckDataPaste(text, opts.MinLength); err != nil {
		return core.ParseResult{}, err
	}
	records, report, err := core.ParseTable(text, projectsInfo.Roles, projectsInfo.MultiLine)
	if err != nil {
		return core.ParseResult{Report: report}, err
	}
	return core.ParseResult{Records: records, Report: report}, nil
}

func (Projects) ParseRows(rows [][]string) (core.ParseResult, error) {
	records, report, err := core.FromRows(rows, projectsInfo.Roles)
	if err != nil {
		return core.ParseResult{Report: report}, err
	}
	return core.ParseResult{Records: records, Report: report}, nil
}

// epicGroup is the stories of one epic in paste order.
type epicGroup struct {
	name    string
	stories []core.Record
}

// groupByEpic groups records by trimmed epic name in first-seen order.
// Records without an epic are dropped.
func groupByEpic(records []core.Record) []*epicGroup {
	var groups []*epicGroup
	index := make(map[string]*epicGroup)
	for _, rec := range records {
		name := strings.TrimSpace(rec[core.RoleEpic])
		if name == "" {
			continue
		}
		g, ok := index[name]
		if !ok {
			g = &epicGroup{name: name}
			index[name] = g
			groups = append(groups, g)
		}
		g.stories = append(g.stories, rec)
	}
	return groups
}

// TeamEpicName replaces any trailing team token on name with
// " T{team}_{component}".
func TeamEpicName(name string, team int, component string) string {
	base := strings.TrimSpace(teamSuffix.ReplaceAllString(name, ""))
	return fmt.Sprintf("%s T%d_%s", base, team, component)
}

// TeamComponent returns the component assigned to rows of a team.
func TeamComponent(team int, component string) string {
	return fmt.Sprintf("Team-%d_%s", team, component)
}

// Generate emits, for each team, one Epic row per epic group followed by
// its Story rows. The Epic row carries the first story's description.
func (Projects) Generate(in core.GenerateInput) (core.Table, error) {
	if err := core.ValidateParams(projectsInfo, in); err != nil {
		return nil, err
	}
	component := strings.TrimSpace(in.Params.Component)
	label := strings.TrimSpace(in.Params.Label)
	groups := groupByEpic(in.Records)
	if len(groups) == 0 {
		return nil, core.InvalidParam(core.ParamData, "has no rows with an epic name")
	}
	perTeam := len(groups)
	for _, g := range groups {
		perTeam += len(g.stories)
	}
	if err := in.Limits.CheckRows(in.Params.Teams * perTeam); err != nil {
		return nil, err
	}

	table := make(core.Table, 0, 1+in.Params.Teams*perTeam)
	table = append(table, projectsInfo.Header)
	for team := 1; team <= in.Params.Teams; team++ {
		teamComponent := TeamComponent(team, component)
		for _, g := range groups {
			epic := TeamEpicName(g.name, team, component)
			table = append(table, core.Row{
				epic, "", label, core.IssueEpic, epic, g.stories[0][core.RoleDescription], teamComponent,
			})
			for _, story := range g.stories {
				table = append(table, core.Row{
					"", epic, "", core.IssueStory, story[core.RoleStory], story[core.RoleDescription], teamComponent,
				})
			}
		}
	}
	return table, nil
}
