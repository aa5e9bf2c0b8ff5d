package jira

import (
	"context"
	"net/http"
	"regexp"
	"time"
)

// Worklog is a single time-tracking entry on an issue.
type Worklog struct {
	ID        string `json:"id"`
	Author    *User  `json:"author,omitempty"`
	TimeSpent string `json:"timeSpent,omitempty"`
	Started   string `json:"started,omitempty"`
	Comment   Body   `json:"comment,omitempty"`
}

type worklogPage struct {
	Worklogs []Worklog `json:"worklogs"`
}

// AddWorklog records time spent on an issue. timeSpent uses Jira duration
// syntax ("2h 30m", "1d"). started accepts the formats normalizeStarted
// understands and defaults to now in the local zone.
func (c *Client) AddWorklog(ctx context.Context, key, timeSpent, comment, started string) (*Worklog, error) {
	now := time.Now()
	payload := map[string]any{
		"timeSpent": timeSpent,
	}
	if comment != "" {
		payload["comment"] = c.textBody(comment)
	}
	if started != "" {
		payload["started"] = normalizeStarted(started, now)
	} else {
		payload["started"] = now.Format(startedFormat)
	}

	var worklog Worklog
	if err := c.do(ctx, http.MethodPost, c.api("/issue/"+key+"/worklog"), nil, payload, &worklog); err != nil {
		return nil, err
	}
	return &worklog, nil
}

// Worklogs lists the time-tracking entries on an issue.
func (c *Client) Worklogs(ctx context.Context, key string) ([]Worklog, error) {
	var page worklogPage
	if err := c.do(ctx, http.MethodGet, c.api("/issue/"+key+"/worklog"), nil, nil, &page); err != nil {
		return nil, err
	}
	return page.Worklogs, nil
}

// startedFormat is the only timestamp layout the worklog endpoint accepts.
const startedFormat = "2006-01-02T15:04:05.000-0700"

var (
	startedExactRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}[+-]\d{4}$`)
	startedDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	startedZoneRe   = regexp.MustCompile(`([+-])(\d{2}):(\d{2})$`)
	startedMinuteRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)
	startedSecondRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)
)

// normalizeStarted converts common ISO timestamp spellings to
// startedFormat. now supplies the zone offset for inputs that carry none.
// Unrecognized inputs pass through for the server to reject.
func normalizeStarted(ts string, now time.Time) string {
	if startedExactRe.MatchString(ts) {
		return ts
	}

	localZone := now.Format("-0700")

	if startedDateRe.MatchString(ts) {
		return ts + "T00:00:00.000" + localZone
	}

	zone := localZone
	if m := startedZoneRe.FindStringSubmatch(ts); m != nil {
		zone = m[1] + m[2] + m[3]
		ts = ts[:len(ts)-len(m[0])]
	}

	if startedMinuteRe.MatchString(ts) {
		ts += ":00"
	}
	if startedSecondRe.MatchString(ts) {
		return ts + ".000" + zone
	}
	return ts
}
