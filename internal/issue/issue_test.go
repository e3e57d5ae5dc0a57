// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	ToilfileNotFoundId,
	ToilfileParseErrorId,
	NoTasksId,
	UnknownTaskId,
	InvalidSettingId,
	DependencyCycleId,
	CommandFailedId,
	ProgramNotFoundId,
	DownloadFailedId,
	ConfigLoadFailedId,
	PermissionDeniedId,
}

func stubRender(t *testing.T) {
	t.Helper()
	originalRender := render
	t.Cleanup(func() { render = originalRender })
	render = func(in string, _ string) (string, error) {
		return in, nil
	}
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if ToilfileNotFoundId != 1 {
		t.Errorf("ToilfileNotFoundId = %d, want 1", ToilfileNotFoundId)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{ToilfileNotFoundId, false, "No toilfile found"},
		{ToilfileParseErrorId, false, "Failed to parse the toilfile"},
		{NoTasksId, false, "Nothing to do"},
		{UnknownTaskId, false, "Unknown task"},
		{InvalidSettingId, false, "Invalid setting"},
		{DependencyCycleId, false, "Dependency cycle"},
		{CommandFailedId, false, "command failed"},
		{ProgramNotFoundId, false, "Program not found"},
		{DownloadFailedId, false, "Download failed"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{PermissionDeniedId, false, "Permission denied"},
		{Id(9999), true, "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			is := Get(tt.id)

			if tt.wantNil {
				if is != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if is == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if is.Id() != tt.id {
				t.Errorf("Get(%d).Id() = %d", tt.id, is.Id())
			}
			if !strings.Contains(string(is.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) != len(allIds) {
		t.Fatalf("Values() returned %d issues, want %d", len(issues), len(allIds))
	}

	for i, is := range issues {
		if is.Id() != allIds[i] {
			t.Errorf("Values()[%d].Id() = %d, want %d (ordered by id)", i, is.Id(), allIds[i])
		}
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	is := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	links := is.DocLinks()
	links[0] = "modified"
	if is.DocLinks()[0] != "https://docs.example.com" {
		t.Error("DocLinks() should return a clone")
	}

	ext := is.ExtLinks()
	ext[0] = "modified"
	if is.ExtLinks()[0] != "https://external.example.com" {
		t.Error("ExtLinks() should return a clone")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	stubRender(t)

	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	for _, want := range []string{"See also", "https://docs.example.com", "https://external.example.com"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("Render() output should contain %q:\n%s", want, rendered)
		}
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	stubRender(t)

	testIssue := &Issue{
		id:    Id(9998),
		mdMsg: "# Test Issue\n\nNo links here.",
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	stubRender(t)

	for _, is := range Values() {
		if is.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", is.Id())
		}
		rendered, err := is.Render("")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", is.Id(), err)
		}
		if rendered == "" {
			t.Errorf("Issue %d rendered to empty string", is.Id())
		}
	}
}

func TestIssue_Render_Glamour(t *testing.T) {
	rendered, err := Get(NoTasksId).Render("notty")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "TASKS") {
		t.Errorf("rendered output should mention TASKS:\n%s", rendered)
	}
}
