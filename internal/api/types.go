// Package api is the client for the glass-server REST and SSE contract.
package api

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// ListIssuesResponse is the payload of the list and list-refresh endpoints.
type ListIssuesResponse struct {
	Issues []Issue `json:"issues"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// Issue is the list-row projection of an issue.
type Issue struct {
	ID         string `json:"id"`
	SourceType string `json:"sourceType"`
	Title      string `json:"title"`
	ShortID    string `json:"shortId"`
	Status     string `json:"status"`
	EventCount uint64 `json:"eventCount"`
	UserCount  uint64 `json:"userCount"`
	FirstSeen  string `json:"firstSeen"`
	LastSeen   string `json:"lastSeen"`
	UpdatedAt  string `json:"updatedAt"`
}

// IssueDetail is the full view of one issue.
type IssueDetail struct {
	ID         string      `json:"id"`
	SourceType string      `json:"sourceType"`
	Status     string      `json:"status"`
	Source     IssueSource `json:"source"`
	State      IssueState  `json:"-"`
	CreatedAt  string      `json:"createdAt"`
	UpdatedAt  string      `json:"updatedAt"`
}

// UnmarshalJSON decodes the detail, resolving the tagged state union.
func (d *IssueDetail) UnmarshalJSON(data []byte) error {
	type plain IssueDetail
	if err := json.Unmarshal(data, (*plain)(d)); err != nil {
		return err
	}
	var raw struct {
		State json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.State) == 0 {
		return fmt.Errorf("issue %q has no state", d.ID)
	}
	state, err := DecodeIssueState(raw.State)
	if err != nil {
		return err
	}
	d.State = state
	return nil
}

// IssueSource is the upstream error-tracker payload. The upstream may omit
// any field.
type IssueSource struct {
	Title       string            `json:"title,omitempty"`
	ShortID     string            `json:"shortId,omitempty"`
	Culprit     string            `json:"culprit,omitempty"`
	EventCount  *uint64           `json:"eventCount,omitempty"`
	UserCount   *uint64           `json:"userCount,omitempty"`
	FirstSeen   string            `json:"firstSeen,omitempty"`
	LastSeen    string            `json:"lastSeen,omitempty"`
	Metadata    *IssueMetadata    `json:"metadata,omitempty"`
	Exceptions  []Exception       `json:"exceptions,omitempty"`
	Breadcrumbs []Breadcrumb      `json:"breadcrumbs,omitempty"`
	Environment string            `json:"environment,omitempty"`
	Release     string            `json:"release,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Request     *RequestInfo      `json:"request,omitempty"`
	User        *UserInfo         `json:"user,omitempty"`
	Contexts    *ContextInfo      `json:"contexts,omitempty"`
}

// RequestInfo describes the HTTP request that triggered the error.
type RequestInfo struct {
	Method string          `json:"method"`
	URL    string          `json:"url"`
	Query  [][2]string     `json:"query,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// UserInfo identifies the affected user.
type UserInfo struct {
	ID        string   `json:"id,omitempty"`
	Email     string   `json:"email,omitempty"`
	IPAddress string   `json:"ipAddress,omitempty"`
	Username  string   `json:"username,omitempty"`
	Geo       *GeoInfo `json:"geo,omitempty"`
}

type GeoInfo struct {
	CountryCode string `json:"countryCode,omitempty"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
}

// ContextInfo holds the client environment reported with the event.
type ContextInfo struct {
	Browser *NameVersion   `json:"browser,omitempty"`
	OS      *NameVersion   `json:"os,omitempty"`
	Device  *DeviceContext `json:"device,omitempty"`
	Runtime *NameVersion   `json:"runtime,omitempty"`
}

type NameVersion struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

type DeviceContext struct {
	Family string `json:"family,omitempty"`
	Model  string `json:"model,omitempty"`
	Brand  string `json:"brand,omitempty"`
}

type IssueMetadata struct {
	Type     string `json:"type,omitempty"`
	Value    string `json:"value,omitempty"`
	Filename string `json:"filename,omitempty"`
	Function string `json:"function,omitempty"`
}

type Exception struct {
	Type       string      `json:"type"`
	Value      string      `json:"value,omitempty"`
	Stacktrace *Stacktrace `json:"stacktrace,omitempty"`
}

type Stacktrace struct {
	Frames []StackFrame `json:"frames"`
}

type StackFrame struct {
	Filename string        `json:"filename,omitempty"`
	Function string        `json:"function,omitempty"`
	Lineno   int           `json:"lineno,omitempty"`
	Colno    int           `json:"colno,omitempty"`
	Context  []ContextLine `json:"context,omitempty"`
}

// ContextLine is one line of source around a stack frame.
type ContextLine struct {
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Current bool   `json:"current"`
}

type Breadcrumb struct {
	Type      string          `json:"type,omitempty"`
	Category  string          `json:"category,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Data      *BreadcrumbData `json:"data,omitempty"`
}

type BreadcrumbData struct {
	URL        string `json:"url,omitempty"`
	StatusCode *int   `json:"http.response.status_code,omitempty"`
	Method     string `json:"http.method,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// SessionInfo lists the recorded agent sessions for an issue.
type SessionInfo struct {
	AnalysisSession       *SessionRef `json:"analysisSession,omitempty"`
	ImplementationSession *SessionRef `json:"implementationSession,omitempty"`
}

// Path returns the analysis session path, falling back to the
// implementation session. Empty when neither exists.
func (s SessionInfo) Path() string {
	if s.AnalysisSession != nil && s.AnalysisSession.Path != "" {
		return s.AnalysisSession.Path
	}
	if s.ImplementationSession != nil {
		return s.ImplementationSession.Path
	}
	return ""
}

type SessionRef struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

type AnalyzeResponse struct {
	Status      string `json:"status"`
	SessionID   string `json:"sessionId"`
	SessionPath string `json:"sessionPath"`
}

type ApproveResponse struct {
	Status                    string `json:"status"`
	WorktreePath              string `json:"worktreePath"`
	WorktreeBranch            string `json:"worktreeBranch"`
	ImplementationSessionID   string `json:"implementationSessionId"`
	ImplementationSessionPath string `json:"implementationSessionPath"`
}

type RejectResponse struct {
	Status string `json:"status"`
}

type CompleteResponse struct {
	Status    string         `json:"status"`
	CleanedUp *CleanedUpInfo `json:"cleanedUp,omitempty"`
}

type CleanedUpInfo struct {
	WorktreePath string `json:"worktreePath"`
	Branch       string `json:"branch"`
}

type RetryResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"sessionId"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// MarshalJSON encodes the detail with its tagged state.
func (d IssueDetail) MarshalJSON() ([]byte, error) {
	type plain IssueDetail
	var state json.RawMessage
	if d.State != nil {
		encoded, err := MarshalIssueState(d.State)
		if err != nil {
			return nil, err
		}
		state = encoded
	}
	return json.Marshal(struct {
		plain
		State json.RawMessage `json:"state,omitempty"`
	}{plain(d), state})
}
