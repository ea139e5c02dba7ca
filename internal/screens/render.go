package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/five82/flowdeck/internal/flowapi"
	"github.com/five82/flowdeck/internal/grid"
)

const dateLayout = "Jan 02 15:04"

// Date renders timestamps in local time.
var Date = DateIn(time.Local)

// DateIn returns a friendly date renderer for loc. Empty or unparseable
// values render as "-".
func DateIn(loc *time.Location) grid.Renderer {
	return func(v grid.Value, _ grid.Row) string {
		t := flowapi.ParseTime(v.String())
		if t.IsZero() {
			return "-"
		}
		return t.In(loc).Format(dateLayout)
	}
}

// YesNo renders booleans; anything falsy is blank.
func YesNo(v grid.Value, _ grid.Row) string {
	if v.Truthy() {
		return "yes"
	}
	if v.Kind() == grid.KindBool {
		return "no"
	}
	return ""
}

// FlowState maps the service state to the label shown to users.
func FlowState(v grid.Value, _ grid.Row) string {
	switch strings.ToLower(v.String()) {
	case "started":
		return "On"
	case "stopped":
		return "Off"
	case "suspended":
		return "Suspended"
	case "":
		return "-"
	default:
		return v.String()
	}
}

// LastSegment renders the final path segment of a resource id.
func LastSegment(v grid.Value, _ grid.Row) string {
	s := strings.TrimRight(v.String(), "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// RunDuration renders end minus start of a run row.
func RunDuration(_ grid.Value, row grid.Row) string {
	start := flowapi.ParseTime(row.Get("properties.startTime").String())
	end := flowapi.ParseTime(row.Get("properties.endTime").String())
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return "-"
	}
	return FormatDuration(end.Sub(start))
}

// FormatDuration renders d compactly ("850ms", "42s", "3m05s", "2h04m").
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
