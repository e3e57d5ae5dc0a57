// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ToilfileNotFoundId Id = iota + 1
	ToilfileParseErrorId
	NoTasksId
	UnknownTaskId
	InvalidSettingId
	DependencyCycleId
	CommandFailedId
	ProgramNotFoundId
	DownloadFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	toilfileNotFoundIssue = &Issue{
		id: ToilfileNotFoundId,
		mdMsg: `
# No toilfile found!

toil looked for the settings file but none of the candidates exist.

## Search order:
1. The path given with ` + "`--settings-file`" + ` (or ` + "`toilfile`" + ` from config.cue)
2. The same path with a ` + "`.cue`" + ` extension
3. The same path with a ` + "`.toml`" + ` extension

## Things you can try:
- Create a starter toilfile in the project root:
~~~
$ toil init
~~~

- Or point toil at an existing file:
~~~
$ toil --settings-file ./deploy/toilfile.cue
~~~`,
	}

	toilfileParseErrorIssue = &Issue{
		id: ToilfileParseErrorId,
		mdMsg: `
# Failed to parse the toilfile!

The toilfile has a syntax error or a value the schema rejects.

## Rules:
- Setting names are identifiers: letters, digits and underscores, not starting with a digit
- ` + "`TASKS`" + ` must be a list of strings
- Names starting with an underscore stay private to the file

## Example:
~~~cue
TASKS: ["virtualenv", "pip"]
VIRTUALENV_VERSION: "1.11.4"
PIP_REQUIREMENTS: "${PROJECT_ROOT}/requirements/prod.txt"
~~~`,
	}

	noTasksIssue = &Issue{
		id: NoTasksId,
		mdMsg: `
# Nothing to do!

The resolved settings have no ` + "`TASKS`" + ` entry, so toil does not know what to provision.

## Things you can try:
- Add a task list to your toilfile:
~~~cue
TASKS: ["gitignore", "virtualenv", "pip"]
~~~
- List the available tasks:
~~~
$ toil tasks
~~~`,
	}

	unknownTaskIssue = &Issue{
		id: UnknownTaskId,
		mdMsg: `
# Unknown task!

A name in ` + "`TASKS`" + ` does not match any task toil knows about.

## Things you can try:
- Check the spelling; task names are lowercase
- List the available tasks:
~~~
$ toil tasks
~~~`,
	}

	invalidSettingIssue = &Issue{
		id: InvalidSettingId,
		mdMsg: `
# Invalid setting!

A task needs a setting that is missing or has the wrong shape.

## Things you can try:
- Inspect the resolved value:
~~~
$ toil settings get NAME
~~~
- Remember that references to unknown names stay unresolved, e.g. ` + "`$TYPO`" + `
- Use ` + "`$$`" + ` for a literal dollar sign`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Dependency cycle detected!

The requested tasks depend on each other in a circle, so no order satisfies them.

## Things you can try:
- Remove one of the tasks in the cycle from ` + "`TASKS`" + `
- Run ` + "`toil tasks`" + ` to see each task's prerequisites`,
	}

	commandFailedIssue = &Issue{
		id: CommandFailedId,
		mdMsg: `
# A provisioning command failed!

toil stops at the first command that exits with a non-zero status.

## Things you can try:
- Re-run with ` + "`--verbose`" + ` to see the resolved settings at the time of failure
- Run the logged ` + "`$ command`" + ` by hand to reproduce it
- Use ` + "`--dry-run`" + ` to review every command without running it`,
	}

	programNotFoundIssue = &Issue{
		id: ProgramNotFoundId,
		mdMsg: `
# Program not found!

A task tried to run a program that is not on your PATH.

## Things you can try:
- Install the missing program (` + "`python`" + `, ` + "`tar`" + `, ` + "`make`" + ` and ` + "`sudo`" + ` are common prerequisites)
- Check the binary settings, e.g. ` + "`PIP_BIN`" + ` or ` + "`RUBY_GEM`" + `, with ` + "`toil settings show`",
	}

	downloadFailedIssue = &Issue{
		id: DownloadFailedId,
		mdMsg: `
# Download failed!

A task could not fetch its archive.

## Things you can try:
- Check your network connection and proxy settings
- Verify the URL with ` + "`toil settings get VIRTUALENV_DOWNLOAD_LINK`" + ` (or the matching setting)
- Pin a version that is still published upstream`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The toil configuration file could not be loaded.

## Things you can try:
- Check the file for CUE syntax errors
- Print the active configuration path:
~~~
$ toil config path
~~~
- Regenerate a default configuration:
~~~
$ toil config init
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

toil could not write to a file or directory.

## Things you can try:
- Check ownership of ` + "`ENV_ROOT`" + ` and ` + "`TMP_BASE`" + `
- Tasks with a ` + "`*_USER`" + ` setting run through sudo; make sure that user can write the target`,
	}

	issues = map[Id]*Issue{
		toilfileNotFoundIssue.Id():   toilfileNotFoundIssue,
		toilfileParseErrorIssue.Id(): toilfileParseErrorIssue,
		noTasksIssue.Id():            noTasksIssue,
		unknownTaskIssue.Id():        unknownTaskIssue,
		invalidSettingIssue.Id():     invalidSettingIssue,
		dependencyCycleIssue.Id():    dependencyCycleIssue,
		commandFailedIssue.Id():      commandFailedIssue,
		programNotFoundIssue.Id():    programNotFoundIssue,
		downloadFailedIssue.Id():     downloadFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	vals := maps.Values(issues)
	slices.SortFunc(vals, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return vals
}

func Get(id Id) *Issue {
	return issues[id]
}
