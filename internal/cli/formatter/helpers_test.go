package formatter

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{125, "2h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMinutes(tt.in), tt.in)
	}
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Today", HumanDate("2024-03-05", now))
	assert.Equal(t, "Yesterday", HumanDate("2024-03-04", now))
	assert.Equal(t, "Tomorrow", HumanDate("2024-03-06", now))
	assert.Equal(t, "Sep 30, 2022", HumanDate("2022-09-30", now))
	assert.Equal(t, "soon", HumanDate("soon", now))
}

func TestPills(t *testing.T) {
	assert.Contains(t, stripANSI(TaskStatusPill("in_progress")), "In Progress")
	assert.Contains(t, stripANSI(TaskStatusPill("blocked")), "Blocked")
	assert.Contains(t, stripANSI(PlanStatusPill("archived")), "Archived")
	assert.Contains(t, stripANSI(PriorityBadge("High")), "High")
	assert.Equal(t, "weird", stripANSI(PriorityBadge("weird")))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", stripANSI(TruncID("1234567890abcdef")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{
			{StyleRed.Render("long value"), "x"},
			{"s", "y"},
		},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[0], "B"), strings.Index(lines[2], "x"))
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatTaskList(t *testing.T) {
	out := stripANSI(FormatTaskList([]api.Task{
		{ID: "aaaaaaaa-1", Title: "Fix login", Priority: "High", Status: "todo", JiraKey: "PROJ-1"},
		{ID: "bbbbbbbb-2", Title: strings.Repeat("x", 60), Priority: "Low", Status: "done"},
	}))
	assert.Contains(t, out, "PROJ-1")
	assert.Contains(t, out, "Fix login")
	assert.Contains(t, out, "✔ Done")
	assert.Contains(t, out, strings.Repeat("x", 47)+"…")
	assert.NotContains(t, out, strings.Repeat("x", 49))
}

func TestFormatWorkLogs_Total(t *testing.T) {
	ticket := "PROJ-9"
	out := stripANSI(FormatWorkLogs([]api.WorkLog{
		{DurationMinutes: 45, Description: "review", TicketID: &ticket},
		{DurationMinutes: 30, Description: "sync"},
	}))
	assert.Contains(t, out, "PROJ-9")
	assert.Contains(t, out, "Total: 1h 15m")
}

func TestFormatParsedTicket_Fallback(t *testing.T) {
	out := stripANSI(FormatParsedTicket(domain.ParsedTicket{
		Key: "PROJ-1", Summary: "Crash", Status: "Open", Priority: "High",
		RawAnalysis: "free text", Fallback: true, Labels: []string{}, Components: []string{},
	}))
	assert.Contains(t, out, "[PROJ-1] Crash")
	assert.Contains(t, out, "raw analysis")
	assert.Contains(t, out, "free text")
	assert.NotContains(t, out, "Labels:")
}

func TestRenderMarkdown(t *testing.T) {
	out := stripANSI(RenderMarkdown("**Yesterday:**\n- fixed login", 60))
	assert.Contains(t, out, "Yesterday:")
	assert.Contains(t, out, "fixed login")
	assert.NotContains(t, out, "**")
}

func TestWithSpinner(t *testing.T) {
	var buf bytes.Buffer
	wantErr := errors.New("boom")

	err := WithSpinner(&buf, false, "working", func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.Empty(t, buf.String())

	err = WithSpinner(&buf, true, "working", func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, stripANSI(buf.String()), "working")
}
