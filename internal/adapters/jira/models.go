package jira

import "encoding/json"

// Issue is one issue as returned by the enhanced search endpoint.
// Every nested object is optional; absence is expected, not an error
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields mirrors the subset of fields requested by the search query.
// The customfield ids are stable per site and configured at the Jira instance,
// not per project
type IssueFields struct {
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Status      *Status       `json:"status"`
	Issuetype   *Named        `json:"issuetype"`
	Priority    *Named        `json:"priority"`
	Created     string        `json:"created"`
	Updated     string        `json:"updated"`
	Labels      []string      `json:"labels"`
	Comment     *CommentBlock `json:"comment"`
	IssueLinks  []IssueLink   `json:"issuelinks"`

	// Service-desk request object: request type name, current substatus, agent link
	Request *RequestBlock `json:"customfield_10010"`

	// Intake channel (email, portal, phone)
	Source *ValueField `json:"customfield_10675"`

	// Insight object references: categories and org units
	MainCategory []ObjectRef `json:"customfield_10680"`
	SubCategory  []ObjectRef `json:"customfield_10679"`
	OrgUnitOne   []ObjectRef `json:"customfield_10673"`
	OrgUnitTwo   []ObjectRef `json:"customfield_10674"`
}

// Status is the workflow status with its kanban-column category
type Status struct {
	Name           string `json:"name"`
	StatusCategory *Named `json:"statusCategory"`
}

// Named is any object we only need the display name of
type Named struct {
	Name string `json:"name"`
}

// ValueField is a single-select custom field
type ValueField struct {
	Value string `json:"value"`
}

// CommentBlock wraps the comment list
type CommentBlock struct {
	Comments []Comment `json:"comments"`
}

// Comment is one issue comment
type Comment struct {
	Body string `json:"body"`
}

// IssueLink is one entry of issuelinks; exactly one side is set per link
type IssueLink struct {
	OutwardIssue *LinkedIssue `json:"outwardIssue"`
	InwardIssue  *LinkedIssue `json:"inwardIssue"`
}

// LinkedIssue is the far end of an issue link
type LinkedIssue struct {
	Key string `json:"key"`
}

// RequestBlock is the service-desk request-type object
type RequestBlock struct {
	RequestType   *Named         `json:"requestType"`
	CurrentStatus *CurrentStatus `json:"currentStatus"`
	Links         *RequestLinks  `json:"_links"`
}

// CurrentStatus is the customer-visible substatus
type CurrentStatus struct {
	Status     string      `json:"status"`
	StatusDate *StatusDate `json:"statusDate"`
}

// StatusDate carries the substatus timestamp in several encodings; we read the jira one
type StatusDate struct {
	Jira string `json:"jira"`
}

// RequestLinks holds portal URLs for the request
type RequestLinks struct {
	Agent string `json:"agent"`
}

// ObjectRef is an Insight object reference. Sites encode objectId as either a
// JSON string or a number, so it gets a tolerant decoder
type ObjectRef struct {
	ObjectID ObjectID `json:"objectId"`
}

// ObjectID is an Insight object id normalized to its string form
type ObjectID string

// UnmarshalJSON accepts string, number, or null
func (o *ObjectID) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*o = ObjectID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*o = ObjectID(n.String())
	return nil
}
