package generator

import "fmt"

const readmePromptFormat = `You are a senior software engineer. Create a concise, actionable README for a new project.
Project name: %s
Description: %s

The README should include: Overview, Features, Quickstart, Run/Dev commands, and Next steps.`

// BuildReadmePrompt returns the fixed prompt used to request a README.
func BuildReadmePrompt(projectName, description string) string {
	return fmt.Sprintf(readmePromptFormat, projectName, description)
}
