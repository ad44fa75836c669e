package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	searchPath = "/rest/api/3/search/jql"

	// pageSize is the enhanced-search maximum
	pageSize = 100
)

// searchFields is the exact field list the extractor consumes.
// Asking for less keeps page payloads small
var searchFields = strings.Join([]string{
	"summary", "description", "status", "issuetype", "priority",
	"created", "updated", "labels", "comment", "issuelinks",
	"customfield_10010", "customfield_10675",
	"customfield_10680", "customfield_10679",
	"customfield_10673", "customfield_10674",
}, ",")

// searchResponse is one page of the enhanced search endpoint.
// An empty NextPageToken means the last page
type searchResponse struct {
	Issues        []Issue `json:"issues"`
	NextPageToken string  `json:"nextPageToken"`
}

// SearchPage runs one enhanced-search page and returns the issues plus the
// token for the next page ("" on the last page)
func (c *Client) SearchPage(ctx context.Context, jql, pageToken string) ([]Issue, string, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("maxResults", strconv.Itoa(pageSize))
	q.Set("fields", searchFields)
	if pageToken != "" {
		q.Set("nextPageToken", pageToken)
	}

	resp, err := c.Do(ctx, searchPath, q)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("jira close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, "", err
	}
	var page searchResponse
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, "", err
	}
	return page.Issues, page.NextPageToken, nil
}

// SearchCreatedBetween fetches every issue of project created inside
// [start, end] by chaining nextPageToken pages. maxIssues caps the total
// (0 means unlimited). A failure mid pagination returns no issues at all;
// partial windows would corrupt downstream merge accounting
func (c *Client) SearchCreatedBetween(
	ctx context.Context, project string, start, end time.Time, maxIssues int,
) ([]Issue, error) {
	jql := WindowJQL(project, start, end)

	var out []Issue
	token := ""
	for {
		issues, next, err := c.SearchPage(ctx, jql, token)
		if err != nil {
			return nil, err
		}
		out = append(out, issues...)
		if maxIssues > 0 && len(out) >= maxIssues {
			c.log.Warn().
				Str("project", project).
				Int("max_issues", maxIssues).
				Msg("jira search hit issue cap, truncating window")
			out = out[:maxIssues]
			break
		}
		if next == "" {
			break
		}
		token = next
	}
	c.log.Info().Str("project", project).Str("jql", jql).Int("issues", len(out)).Msg("jira search done")
	return out, nil
}

// WindowJQL builds the created-window query for a project, minute precision UTC
func WindowJQL(project string, start, end time.Time) string {
	const layout = "2006-01-02 15:04"
	return fmt.Sprintf(
		`project = %q AND created >= %q AND created <= %q ORDER BY created DESC`,
		project, start.UTC().Format(layout), end.UTC().Format(layout),
	)
}

// Healthcheck does a cheap authenticated call so startup can fail fast on bad
// credentials. Uses the serverInfo endpoint which every user can read
func (c *Client) Healthcheck(ctx context.Context) error {
	resp, err := c.Do(ctx, "/rest/api/3/serverInfo", nil)
	if err != nil {
		return err
	}
	return drainAndClose(resp.Body)
}
