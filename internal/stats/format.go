package stats

import "fmt"

const (
	timeWidth  = 26
	modeWidth  = 18
	idWidth    = 7
	timeLayout = "Mon Jan _2 15:04:05 2006"
)

// FormatLine renders a record as one fixed-width history line:
// time, mode label, snippet id, summary.
func FormatLine(r Record) string {
	return fmt.Sprintf("%-*s%-*s%-*s%s",
		timeWidth, r.Time.Local().Format(timeLayout),
		modeWidth, r.Mode.Label(),
		idWidth, r.SnippetID,
		r.Summary)
}
