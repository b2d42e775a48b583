// Package prompt renders the agent's system prompt from a fixed template.
package prompt

import (
	"strings"
	"text/template"

	giazero "github.com/torayeff/giazero"
)

// systemPromptTemplate embeds the task and solution directories and the
// auto-generated tool listing. It is intentionally short: the tools carry
// their own detailed descriptions in their schemas.
const systemPromptTemplate = `You are an intelligent agent with exceptional coding skills. Solve the given task.

Task files: {{.TaskDir}}
Solution directory: {{.SolutionDir}}.
Write ALL files (solutions, scripts, intermediate files, etc.) ONLY to {{.SolutionDir}}.

Available tools:
{{.ToolsDescription}}
`

var tmpl = template.Must(template.New("system_prompt").Parse(systemPromptTemplate))

type templateData struct {
	TaskDir          string
	SolutionDir      string
	ToolsDescription string
}

// Build renders the system prompt for the given directories and registered
// tools. Each tool contributes one "- name: summary" bullet, in registration
// order. Confinement to the solution directory is stated here as convention
// only; the tools do not enforce it.
func Build(taskDir, solutionDir string, tools []giazero.Tool) (string, error) {
	bullets := make([]string, len(tools))
	for i, t := range tools {
		bullets[i] = "- " + t.Name + ": " + t.Summary()
	}

	var b strings.Builder
	err := tmpl.Execute(&b, templateData{
		TaskDir:          taskDir,
		SolutionDir:      solutionDir,
		ToolsDescription: strings.Join(bullets, "\n"),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
