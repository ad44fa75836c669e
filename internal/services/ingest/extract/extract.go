// Package extract turns raw Jira issues into flat ticket rows
package extract

import (
	"strings"
	"time"

	"deskscope/internal/adapters/jira"
	"deskscope/internal/core/textclean"
	perr "deskscope/internal/platform/errors"
	"deskscope/internal/services/ingest/domain"
)

// jiraTimeLayout is the timestamp encoding Jira Cloud emits everywhere
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

// Extractor maps one RawTicket to one TicketRow. Pure; safe for concurrent use
type Extractor struct {
	clean *textclean.Cleaner
}

// New constructs an Extractor
func New() *Extractor {
	return &Extractor{clean: textclean.New()}
}

// Extract builds a TicketRow from raw. The only hard failure is a missing or
// blank issue key; every other absent field degrades to its zero default so a
// sparse ticket still produces a row
func (e *Extractor) Extract(raw domain.RawTicket, companyTag string) (domain.TicketRow, error) {
	key := strings.TrimSpace(raw.Key)
	if key == "" {
		return domain.TicketRow{}, perr.MalformedRecordf("issue without key")
	}

	f := raw.Fields
	row := domain.TicketRow{
		Key:         key,
		CompanyTag:  companyTag,
		Summary:     e.clean.Clean(f.Summary),
		Description: e.clean.Clean(f.Description),
		Created:     parseTime(f.Created),
		Updated:     parseTime(f.Updated),
		Labels:      append([]string{}, f.Labels...),
	}

	if f.Status != nil {
		row.Status = f.Status.Name
		if f.Status.StatusCategory != nil {
			row.StatusCategory = f.Status.StatusCategory.Name
		}
	}
	if f.Issuetype != nil {
		row.Issuetype = f.Issuetype.Name
	}
	if f.Priority != nil {
		row.Priority = f.Priority.Name
	}
	if f.Source != nil {
		row.Source = f.Source.Value
	}

	row.MainCategoryID = firstObjectID(f.MainCategory)
	row.SubCategoryID = firstObjectID(f.SubCategory)
	row.OrgUnit1 = orgUnitID(f.OrgUnitOne)
	row.OrgUnit2 = orgUnitID(f.OrgUnitTwo)

	row.Comments = e.joinComments(f.Comment)
	row.CloneOf, row.ClonedBy = cloneLinks(f.IssueLinks)

	if req := f.Request; req != nil {
		if req.RequestType != nil {
			row.RequestType = req.RequestType.Name
		}
		if cs := req.CurrentStatus; cs != nil {
			row.CurrentSubstatus = cs.Status
			if cs.StatusDate != nil {
				row.CurrentSubstatusDate = parseTime(cs.StatusDate.Jira)
			}
		}
		if req.Links != nil {
			row.Link = req.Links.Agent
		}
	}

	return row, nil
}

// joinComments concatenates comment bodies with a blank line between them
func (e *Extractor) joinComments(cb *jira.CommentBlock) string {
	if cb == nil || len(cb.Comments) == 0 {
		return ""
	}
	parts := make([]string, 0, len(cb.Comments))
	for _, c := range cb.Comments {
		parts = append(parts, e.clean.Clean(c.Body))
	}
	return strings.Join(parts, "\n\n")
}

// cloneLinks picks the first outward link as the clone source and the first
// inward link as the clone target
func cloneLinks(links []jira.IssueLink) (cloneOf, clonedBy string) {
	for _, l := range links {
		if cloneOf == "" && l.OutwardIssue != nil {
			cloneOf = l.OutwardIssue.Key
		}
		if clonedBy == "" && l.InwardIssue != nil {
			clonedBy = l.InwardIssue.Key
		}
		if cloneOf != "" && clonedBy != "" {
			break
		}
	}
	return cloneOf, clonedBy
}

func firstObjectID(refs []jira.ObjectRef) string {
	if len(refs) == 0 {
		return ""
	}
	return string(refs[0].ObjectID)
}

// orgUnitID renders the insight reference the way the reporting side expects
func orgUnitID(refs []jira.ObjectRef) string {
	id := firstObjectID(refs)
	if id == "" {
		return ""
	}
	return "ID_" + id
}

// parseTime coerces a Jira timestamp to UTC; unparseable input becomes nil
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{jiraTimeLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}
