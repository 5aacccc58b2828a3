package templates

import (
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/issuecsv/internal/core"
)

const projectsPaste = "Epic\tStory\tSprint\tDescription\n" +
	"Onboarding\tCreate account\t1\tSign-up form\n" +
	"Onboarding\tVerify email\t1\tSend link\n" +
	"Billing T1_OLD\tInvoices\t2\tMonthly run\n"

func TestProjects_Parse(t *testing.T) {
	res, err := Projects{}.Parse(projectsPaste, core.ParseOptions{MinLength: core.DefaultMinPasteLength})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(res.Records))
	}
	if res.Records[1][core.RoleStory] != "Verify email" {
		t.Errorf("story = %q", res.Records[1][core.RoleStory])
	}

	_, err = Projects{}.Parse("Epic\tStory\tDescription\n"+strings.Repeat("E\tS\tD\n", 10), core.ParseOptions{})
	var mce *core.MissingColumnsError
	if !errors.As(err, &mce) || len(mce.Roles) != 1 || mce.Roles[0] != "Sprint" {
		t.Errorf("err = %v, want missing Sprint", err)
	}
}

func TestTeamEpicName(t *testing.T) {
	tests := []struct {
		name string
		team int
		want string
	}{
		{"Onboarding", 1, "Onboarding T1_CORE"},
		{"Billing T1_OLD", 2, "Billing T2_CORE"},
		{"Billing t3_old", 1, "Billing T1_CORE"},
		{"  Spaced  ", 4, "Spaced T4_CORE"},
		{"T1_ONLY", 2, "T1_ONLY T2_CORE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TeamEpicName(tt.name, tt.team, "CORE"); got != tt.want {
				t.Errorf("TeamEpicName(%q, %d) = %q, want %q", tt.name, tt.team, got, tt.want)
			}
		})
	}
}

func TestProjects_TeamCopies(t *testing.T) {
	records := []core.Record{
		{core.RoleEpic: "Onboarding", core.RoleStory: "Create account", core.RoleDescription: "Sign-up form"},
		{core.RoleEpic: "Onboarding", core.RoleStory: "Verify email", core.RoleDescription: "Send link"},
	}
	const teams = 3
	table, err := Projects{}.Generate(core.GenerateInput{
		Records: records,
		Params:  core.Params{Component: "CORE", Label: "Q3", Teams: teams},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// One epic group of k=3 rows (epic plus two stories) per team.
	rows := table.DataRows()
	if len(rows) != teams*3 {
		t.Fatalf("rows = %d, want %d", len(rows), teams*3)
	}

	for team := 1; team <= teams; team++ {
		block := rows[(team-1)*3 : team*3]
		component := TeamComponent(team, "CORE")
		epicName := TeamEpicName("Onboarding", team, "CORE")

		epic := block[0]
		want := core.Row{epicName, "", "Q3", "Epic", epicName, "Sign-up form", component}
		for i := range want {
			if epic[i] != want[i] {
				t.Errorf("team %d epic col %d = %q, want %q", team, i, epic[i], want[i])
			}
		}
		for _, story := range block[1:] {
			if story[0] != "" || story[1] != epicName || story[2] != "" || story[3] != "Story" {
				t.Errorf("team %d story = %v", team, story)
			}
			if story[6] != component {
				t.Errorf("team %d story component = %q, want %q", team, story[6], component)
			}
		}
		if block[2][4] != "Verify email" || block[2][5] != "Send link" {
			t.Errorf("team %d second story = %v", team, block[2])
		}
	}
}

func TestProjects_GroupsInFirstSeenOrder(t *testing.T) {
	records := []core.Record{
		{core.RoleEpic: "B", core.RoleStory: "b1"},
		{core.RoleEpic: "A", core.RoleStory: "a1"},
		{core.RoleEpic: "", core.RoleStory: "orphan"},
		{core.RoleEpic: " B ", core.RoleStory: "b2"},
	}
	table, err := Projects{}.Generate(core.GenerateInput{
		Records: records,
		Params:  core.Params{Component: "C", Label: "L", Teams: 1},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var summaries []string
	for _, row := range table.DataRows() {
		summaries = append(summaries, row[4])
	}
	want := []string{"B T1_C", "b1", "b2", "A T1_C", "a1"}
	if strings.Join(summaries, "|") != strings.Join(want, "|") {
		t.Errorf("summaries = %v, want %v", summaries, want)
	}
}

func TestProjects_Validation(t *testing.T) {
	rec := []core.Record{{core.RoleEpic: "E", core.RoleStory: "S"}}
	tests := []struct {
		name  string
		in    core.GenerateInput
		param core.Param
	}{
		{"component", core.GenerateInput{Records: rec, Params: core.Params{Label: "L", Teams: 1}}, core.ParamComponent},
		{"label", core.GenerateInput{Records: rec, Params: core.Params{Component: "C", Teams: 1}}, core.ParamLabel},
		{"teams zero", core.GenerateInput{Records: rec, Params: core.Params{Component: "C", Label: "L"}}, core.ParamTeams},
		{"teams negative", core.GenerateInput{Records: rec, Params: core.Params{Component: "C", Label: "L", Teams: -2}}, core.ParamTeams},
		{"teams over default limit", core.GenerateInput{Records: rec, Params: core.Params{Component: "C", Label: "L", Teams: core.DefaultMaxTeams + 1}}, core.ParamTeams},
		{"teams huge", core.GenerateInput{Records: rec, Params: core.Params{Component: "C", Label: "L", Teams: 2000000000}}, core.ParamTeams},
		{"teams over configured limit", core.GenerateInput{Records: rec, Params: core.Params{Component: "C", Label: "L", Teams: 3}, Limits: core.Limits{MaxTeams: 2}}, core.ParamTeams},
		{"data", core.GenerateInput{Params: core.Params{Component: "C", Label: "L", Teams: 1}}, core.ParamData},
		{"no epic names", core.GenerateInput{Records: []core.Record{{core.RoleStory: "S"}}, Params: core.Params{Component: "C", Label: "L", Teams: 1}}, core.ParamData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Projects{}.Generate(tt.in)
			var mpe *core.MissingParameterError
			if !errors.As(err, &mpe) || mpe.Param != tt.param {
				t.Errorf("err = %v, want %s", err, tt.param)
			}
		})
	}
}

func TestProjects_RowLimit(t *testing.T) {
	records := []core.Record{
		{core.RoleEpic: "E", core.RoleStory: "s1"},
		{core.RoleEpic: "E", core.RoleStory: "s2"},
	}
	// Two teams of one epic plus two stories: six data rows.
	in := core.GenerateInput{
		Records: records,
		Params:  core.Params{Component: "C", Label: "L", Teams: 2},
	}

	in.Limits = core.Limits{MaxRows: 5}
	if _, err := (Projects{}).Generate(in); !errors.Is(err, core.ErrTooManyRows) {
		t.Errorf("MaxRows 5: err = %v, want ErrTooManyRows", err)
	}

	in.Limits = core.Limits{MaxRows: 6}
	table, err := Projects{}.Generate(in)
	if err != nil {
		t.Fatalf("MaxRows 6: %v", err)
	}
	if got := len(table.DataRows()); got != 6 {
		t.Errorf("rows = %d, want 6", got)
	}
}
