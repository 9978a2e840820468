package api

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// IssueState is the lifecycle stage of an issue. It is a closed set: the
// concrete types below are the only implementations.
type IssueState interface {
	// Status returns the wire tag of the stage.
	Status() string
	isIssueState()
}

// StatePending is an issue that has not been analyzed.
type StatePending struct{}

// StateAnalyzing is an issue with an analysis session running.
type StateAnalyzing struct {
	AnalysisSessionID string `json:"analysisSessionId"`
}

// StatePendingApproval is an analyzed issue waiting on a decision about its proposal.
type StatePendingApproval struct {
	AnalysisSessionID string `json:"analysisSessionId"`
	Proposal          string `json:"proposal"`
}

// StateInProgress is an approved fix being implemented in a worktree.
type StateInProgress struct {
	AnalysisSessionID       string `json:"analysisSessionId"`
	ImplementationSessionID string `json:"implementationSessionId"`
	WorktreePath            string `json:"worktreePath"`
	WorktreeBranch          string `json:"worktreeBranch"`
}

// StatePendingReview is an implemented fix waiting for human review.
type StatePendingReview struct {
	AnalysisSessionID       string `json:"analysisSessionId"`
	ImplementationSessionID string `json:"implementationSessionId"`
	WorktreePath            string `json:"worktreePath"`
	WorktreeBranch          string `json:"worktreeBranch"`
}

// StateError is an issue whose last session failed.
type StateError struct {
	PreviousStatus string `json:"previousStatus"`
	SessionID      string `json:"sessionId"`
	Message        string `json:"error"`
}

const (
	StatusPending         = "pending"
	StatusAnalyzing       = "analyzing"
	StatusPendingApproval = "pending_approval"
	StatusInProgress      = "in_progress"
	StatusPendingReview   = "pending_review"
	StatusError           = "error"
)

func (StatePending) Status() string         { return StatusPending }
func (StateAnalyzing) Status() string       { return StatusAnalyzing }
func (StatePendingApproval) Status() string { return StatusPendingApproval }
func (StateInProgress) Status() string      { return StatusInProgress }
func (StatePendingReview) Status() string   { return StatusPendingReview }
func (StateError) Status() string           { return StatusError }

func (StatePending) isIssueState()         {}
func (StateAnalyzing) isIssueState()       {}
func (StatePendingApproval) isIssueState() {}
func (StateInProgress) isIssueState()      {}
func (StatePendingReview) isIssueState()   {}
func (StateError) isIssueState()           {}

// DecodeIssueState decodes a state object tagged by its "status" field.
func DecodeIssueState(data []byte) (IssueState, error) {
	var tag struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("failed to decode issue state: %w", err)
	}

	var (
		state IssueState
		err   error
	)
	switch tag.Status {
	case StatusPending:
		state = StatePending{}
	case StatusAnalyzing:
		state, err = decodeVariant[StateAnalyzing](data)
	case StatusPendingApproval:
		state, err = decodeVariant[StatePendingApproval](data)
	case StatusInProgress:
		state, err = decodeVariant[StateInProgress](data)
	case StatusPendingReview:
		state, err = decodeVariant[StatePendingReview](data)
	case StatusError:
		state, err = decodeVariant[StateError](data)
	default:
		return nil, fmt.Errorf("unknown issue status %q", tag.Status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s state: %w", tag.Status, err)
	}
	return state, nil
}

// MarshalIssueState encodes a state with its "status" tag.
func MarshalIssueState(state IssueState) ([]byte, error) {
	body, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return withTag("status", state.Status(), body)
}

func decodeVariant[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// withTag inserts a tag field at the front of an encoded JSON object.
func withTag(field, value string, body []byte) ([]byte, error) {
	tag, err := json.Marshal(map[string]string{field: value})
	if err != nil {
		return nil, err
	}
	if len(body) <= 2 {
		return tag, nil
	}
	out := make([]byte, 0, len(tag)+len(body))
	out = append(out, tag[:len(tag)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}
