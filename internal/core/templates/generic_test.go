package templates

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"github.com/JonMunkholm/issuecsv/internal/core"
)

func TestGeneric_SingleEmail(t *testing.T) {
	table, err := Generic{}.Generate(core.GenerateInput{
		Emails: []string{"jane@co.com"},
		Params: core.Params{Component: "COMP"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !reflect.DeepEqual(table.Header(), core.Row{"Assignee", "Issue Type", "Issue ID", "Parent ID", "Summary", "Component"}) {
		t.Errorf("header = %v", table.Header())
	}
	rows := table.DataRows()
	if len(rows) != 8 {
		t.Fatalf("rows = %d, want 8", len(rows))
	}

	task := rows[0]
	want := core.Row{"jane@co.com", "Task", "1", "", GenericTaskSummary, "COMP"}
	if !reflect.DeepEqual(task, want) {
		t.Errorf("task row = %v, want %v", task, want)
	}

	for i, row := range rows[1:] {
		if row[1] != "Sub-task" {
			t.Errorf("row %d type = %q, want Sub-task", i+2, row[1])
		}
		if row[2] != strconv.Itoa(i+2) {
			t.Errorf("row %d id = %q, want %d", i+2, row[2], i+2)
		}
		if row[3] != "1" {
			t.Errorf("row %d parent = %q, want 1", i+2, row[3])
		}
		if row[4] != GenericSubTasks[i] {
			t.Errorf("row %d summary = %q, want %q", i+2, row[4], GenericSubTasks[i])
		}
	}
}

func TestGeneric_IDsContinueAcrossAssignees(t *testing.T) {
	table, err := Generic{}.Generate(core.GenerateInput{
		Emails: []string{"a@co.com", "b@co.com"},
		Params: core.Params{Component: "C"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	rows := table.DataRows()
	if len(rows) != 16 {
		t.Fatalf("rows = %d, want 16", len(rows))
	}
	second := rows[8]
	if second[0] != "b@co.com" || second[2] != "9" || second[3] != "" {
		t.Errorf("second task = %v, want id 9 without parent", second)
	}
	if rows[15][2] != "16" || rows[15][3] != "9" {
		t.Errorf("last sub-task = %v, want id 16 parent 9", rows[15])
	}
}

func TestGeneric_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    core.GenerateInput
		param core.Param
	}{
		{"component first", core.GenerateInput{}, core.ParamComponent},
		{"blank component", core.GenerateInput{Emails: []string{"a@co.com"}, Params: core.Params{Component: "  "}}, core.ParamComponent},
		{"emails", core.GenerateInput{Params: core.Params{Component: "C"}}, core.ParamEmails},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generic{}.Generate(tt.in)
			var mpe *core.MissingParameterError
			if !errors.As(err, &mpe) || mpe.Param != tt.param {
				t.Errorf("err = %v, want missing %s", err, tt.param)
			}
		})
	}
}

func TestGeneric_Parse(t *testing.T) {
	res, err := Generic{}.Parse("b@co.com\na@co.com\nb@co.com", core.ParseOptions{MinLength: core.DefaultMinPasteLength})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(res.Emails, []string{"a@co.com", "b@co.com"}) {
		t.Errorf("emails = %v", res.Emails)
	}

	if _, err := (Generic{}).Parse("Click here to paste", core.ParseOptions{}); !errors.Is(err, core.ErrPlaceholderRejected) {
		t.Errorf("err = %v, want ErrPlaceholderRejected", err)
	}
	if _, err := (Generic{}).Parse("no emails here", core.ParseOptions{}); !errors.Is(err, core.ErrNoEmailsFound) {
		t.Errorf("err = %v, want ErrNoEmailsFound", err)
	}
}

func TestRegistered(t *testing.T) {
	want := []string{"generic", "projects", "devops"}
	if got := core.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}
	for _, key := range want {
		tpl, ok := core.Get(key)
		if !ok {
			t.Fatalf("%s not registered", key)
		}
		info := tpl.Info()
		if info.FilePrefix == "" || len(info.Header) == 0 {
			t.Errorf("%s: incomplete info %+v", key, info)
		}
	}
}

func TestGeneric_RowLimit(t *testing.T) {
	in := core.GenerateInput{
		Emails: []string{"a@co.com", "b@co.com"},
		Params: core.Params{Component: "COMP"},
		Limits: core.Limits{MaxRows: 15},
	}
	if _, err := (Generic{}).Generate(in); !errors.Is(err, core.ErrTooManyRows) {
		t.Errorf("err = %v, want ErrTooManyRows", err)
	}
}
