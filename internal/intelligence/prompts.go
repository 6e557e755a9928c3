package intelligence

const ticketParseSystemPrompt = `You are a Jira ticket analyzer. You help developers understand and plan their work by analyzing ticket details.`

// ticketParsePromptTemplate takes: key, summary, status, priority,
// description, assignee, labels, components.
const ticketParsePromptTemplate = `Analyze this Jira ticket and return a structured summary.

Ticket Key: %s
Raw Data:
- Summary: %s
- Status: %s
- Priority: %s
- Description: %s
- Assignee: %s
- Labels: %s
- Components: %s

Respond with ONLY one JSON object with these fields:
{
  "summary": string,
  "status": string,
  "priority": "High" | "Medium" | "Low",
  "description": string (at most 500 characters),
  "assignee": string or null,
  "story_points": number or null,
  "labels": string[],
  "components": string[],
  "analysis": string (what the ticket is about, blockers or dependencies, complexity Low/Medium/High, suggested approach)
}`

const taskAnalysisPromptTemplate = `Turn this work item description into a task for my daily plan.

Description:
%s

Respond with ONLY one JSON object:
{
  "title": string (short imperative title, at most 80 characters),
  "priority": "High" | "Medium" | "Low" (High when the text signals urgency such as ASAP, urgent, blocker, production),
  "description": string (cleaned-up description with any acceptance criteria)
}`

const recommendTodayPromptTemplate = `Here are my open tasks:

%s

Recommend the top 3 tasks I should focus on today, ranked. For each give the task title and a one or two sentence rationale (urgency, dependencies, effort). Finish with one line on what to defer.`

const taskGuidancePromptTemplate = `I am about to start this task:

Title: %s
Priority: %s
Status: %s
Description: %s

Give me:
**Prerequisites:** what I need before starting
**Approach:** a short step-by-step plan
**Risks:** what could go wrong
**Estimate:** a rough effort estimate in hours`

const interactiveStandupPromptTemplate = `Write my standup update from these notes.

Yesterday I worked on:
%s

Today I plan to:
%s

Blockers:
%s

Tasks currently in flight:
%s

Format the response exactly as:
**Yesterday:**
- [bullet points]

**Today:**
- [bullet points]

**Blockers:**
- [any blockers or "None"]`
