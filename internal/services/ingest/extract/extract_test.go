package extract

import (
	"testing"
	"time"

	"deskscope/internal/adapters/jira"
	perr "deskscope/internal/platform/errors"
	"deskscope/internal/services/ingest/domain"
)

func fullIssue() domain.RawTicket {
	return jira.Issue{
		Key: "SD-101",
		Fields: jira.IssueFields{
			Summary:     "VPN drops every hour",
			Description: "Started after the gateway update",
			Status: &jira.Status{
				Name:           "In Progress",
				StatusCategory: &jira.Named{Name: "In Progress"},
			},
			Issuetype: &jira.Named{Name: "Incident"},
			Priority:  &jira.Named{Name: "High"},
			Created:   "2025-08-04T09:15:00.000+0200",
			Updated:   "2025-08-04T16:45:00.000+0200",
			Labels:    []string{"network", "vpn"},
			Comment: &jira.CommentBlock{Comments: []jira.Comment{
				{Body: "first look done"},
				{Body: "escalated to network team"},
			}},
			IssueLinks: []jira.IssueLink{
				{OutwardIssue: &jira.LinkedIssue{Key: "SD-90"}},
				{InwardIssue: &jira.LinkedIssue{Key: "SD-140"}},
			},
			Request: &jira.RequestBlock{
				RequestType: &jira.Named{Name: "Report an incident"},
				CurrentStatus: &jira.CurrentStatus{
					Status:     "Waiting for support",
					StatusDate: &jira.StatusDate{Jira: "2025-08-04T16:45:00.000+0200"},
				},
				Links: &jira.RequestLinks{Agent: "https://example.atlassian.net/agent/SD-101"},
			},
			Source:       &jira.ValueField{Value: "Portal"},
			MainCategory: []jira.ObjectRef{{ObjectID: "17"}},
			SubCategory:  []jira.ObjectRef{{ObjectID: "204"}},
			OrgUnitOne:   []jira.ObjectRef{{ObjectID: "5"}},
			OrgUnitTwo:   []jira.ObjectRef{{ObjectID: "12"}},
		},
	}
}

func TestExtract_FullIssue(t *testing.T) {
	t.Parallel()

	row, err := New().Extract(fullIssue(), "acme")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if row.Key != "SD-101" || row.CompanyTag != "acme" {
		t.Fatalf("identity wrong: %+v", row)
	}
	if row.Status != "In Progress" || row.StatusCategory != "In Progress" {
		t.Fatalf("status wrong: %q / %q", row.Status, row.StatusCategory)
	}
	if row.Issuetype != "Incident" || row.Priority != "High" || row.Source != "Portal" {
		t.Fatalf("named fields wrong: %+v", row)
	}
	wantCreated := time.Date(2025, 8, 4, 7, 15, 0, 0, time.UTC)
	if row.Created == nil || !row.Created.Equal(wantCreated) {
		t.Fatalf("created = %v, want %v", row.Created, wantCreated)
	}
	if row.Comments != "first look done\n\nescalated to network team" {
		t.Fatalf("comments = %q", row.Comments)
	}
	if row.CloneOf != "SD-90" || row.ClonedBy != "SD-140" {
		t.Fatalf("clone links = %q / %q", row.CloneOf, row.ClonedBy)
	}
	if row.MainCategoryID != "17" || row.SubCategoryID != "204" {
		t.Fatalf("category ids = %q / %q", row.MainCategoryID, row.SubCategoryID)
	}
	if row.OrgUnit1 != "ID_5" || row.OrgUnit2 != "ID_12" {
		t.Fatalf("org units = %q / %q", row.OrgUnit1, row.OrgUnit2)
	}
	if row.RequestType != "Report an incident" {
		t.Fatalf("request type = %q", row.RequestType)
	}
	if row.CurrentSubstatus != "Waiting for support" || row.CurrentSubstatusDate == nil {
		t.Fatalf("substatus = %q / %v", row.CurrentSubstatus, row.CurrentSubstatusDate)
	}
	if row.Link != "https://example.atlassian.net/agent/SD-101" {
		t.Fatalf("link = %q", row.Link)
	}
}

func TestExtract_SparseIssueDefaults(t *testing.T) {
	t.Parallel()

	row, err := New().Extract(jira.Issue{Key: "SD-7"}, "acme")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if row.Summary != "" || row.Description != "" || row.Comments != "" {
		t.Fatalf("text defaults wrong: %+v", row)
	}
	if row.Status != "" || row.StatusCategory != "" || row.Issuetype != "" || row.Priority != "" {
		t.Fatalf("named defaults wrong: %+v", row)
	}
	if row.Created != nil || row.Updated != nil || row.CurrentSubstatusDate != nil {
		t.Fatalf("timestamp defaults wrong: %+v", row)
	}
	if row.Labels == nil || len(row.Labels) != 0 {
		t.Fatalf("labels = %#v, want empty non-nil slice", row.Labels)
	}
	if row.MainCategoryID != "" || row.SubCategoryID != "" || row.OrgUnit1 != "" || row.OrgUnit2 != "" {
		t.Fatalf("reference defaults wrong: %+v", row)
	}
	if row.CloneOf != "" || row.ClonedBy != "" || row.RequestType != "" || row.Link != "" {
		t.Fatalf("link defaults wrong: %+v", row)
	}
}

func TestExtract_MissingKeyFails(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "   "} {
		_, err := New().Extract(jira.Issue{Key: key}, "acme")
		if err == nil {
			t.Fatalf("key %q: expected error", key)
		}
		if perr.CodeOf(err) != perr.ErrorCodeMalformedRecord {
			t.Fatalf("key %q: code = %v, want malformed record", key, perr.CodeOf(err))
		}
	}
}

func TestExtract_BadTimestampCoercesToNil(t *testing.T) {
	t.Parallel()

	issue := jira.Issue{Key: "SD-8", Fields: jira.IssueFields{Created: "not-a-date"}}
	row, err := New().Extract(issue, "acme")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if row.Created != nil {
		t.Fatalf("created = %v, want nil", row.Created)
	}
}

func TestExtract_LinkDegradesWithoutRequestObject(t *testing.T) {
	t.Parallel()

	issue := fullIssue()
	issue.Fields.Request.Links = nil
	row, err := New().Extract(issue, "acme")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if row.Link != "" {
		t.Fatalf("link = %q, want empty", row.Link)
	}
}
