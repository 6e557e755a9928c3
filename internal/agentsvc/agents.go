package agentsvc

import "strings"

// DefaultAgent answers when the requested agent type is unknown.
const DefaultAgent = "planner"

var agentPrompts = map[string]string{
	"project": `You are the Project Architect agent. You help with backend, database, and overall project structure.
You provide technical guidance on architecture decisions, database design, and system integration.`,

	"frontend": `You are the Frontend Specialist agent. You are an expert in React, TypeScript, Tailwind CSS, and UI/UX.
You provide guidance on component design, styling, user experience, and frontend practices.`,

	"planner": `You are the Daily Work Planner agent. You analyze Jira tickets and help plan the workday.
You provide structured plans, identify dependencies, estimate effort, and suggest priorities.`,

	"ultraworks": `You are the Ultraworks agent. You focus on deep problem solving and productivity.
You help with complex debugging, performance optimization, and advanced technical challenges.`,
}

// SystemPrompt returns the prompt for agentType, falling back to the
// planner.
func SystemPrompt(agentType string) string {
	if p, ok := agentPrompts[strings.ToLower(strings.TrimSpace(agentType))]; ok {
		return p
	}
	return agentPrompts[DefaultAgent]
}

const ticketAnalyzerPrompt = "You are a Jira ticket analyzer. You help developers understand and plan their work by analyzing ticket details."

const ticketAnalysisTemplate = `Analyze this Jira ticket and provide a structured summary.

Ticket Key: %s
Raw Data:
- Summary: %s
- Status: %s
- Priority: %s
- Description: %s
- Assignee: %s
- Labels: %s
- Components: %s

Please provide:
1. A brief analysis of what this ticket is about
2. Any potential blockers or dependencies
3. Estimated complexity (Low/Medium/High)
4. Suggested approach for implementation

Format your response clearly with sections.`

const standupAssistantPrompt = "You are a standup meeting assistant. Generate clear, concise standup updates."

const standupTemplate = `Generate a concise standup update for me.

Yesterday I worked on:
%s

Today I plan to work on:
%s

Please format the response with:
**Yesterday:**
- [bullet points]

**Today:**
- [bullet points]

**Blockers:**
- [any blockers or "None"]`
