package app

//go:generate moq -stub -out dispatcher_mock_test.go . Dispatcher:DispatcherMock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/newhook/glass/internal/api"
	"github.com/newhook/glass/internal/logging"
)

// ChannelCapacity is the number of undelivered results buffered before a
// task blocks.
const ChannelCapacity = 64

// Dispatcher runs network operations off the control loop and hands their
// results back through Poll.
type Dispatcher interface {
	SpawnListLoad()
	SpawnListRefresh()
	SpawnDetailLoad(issueID string)
	SpawnDetailRefresh(issueID string)
	SpawnAnalysisStream(issueID string)
	SpawnAction(req ActionRequest)
	SpawnSessionLookup(issueID string)
	// Poll returns every queued result in arrival order without blocking.
	Poll() []Message
	Close()
}

// Client is the part of api.Client the dispatcher uses.
type Client interface {
	ListIssues(ctx context.Context) (*api.ListIssuesResponse, error)
	RefreshIssues(ctx context.Context) (*api.ListIssuesResponse, error)
	GetIssue(ctx context.Context, id string) (*api.IssueDetail, error)
	RefreshIssue(ctx context.Context, id string) (*api.IssueDetail, error)
	GetSession(ctx context.Context, id string) (*api.SessionInfo, error)
	Analyze(ctx context.Context, id string) (*api.AnalyzeResponse, error)
	Approve(ctx context.Context, id string) (*api.ApproveResponse, error)
	Reject(ctx context.Context, id string) (*api.RejectResponse, error)
	Complete(ctx context.Context, id string) (*api.CompleteResponse, error)
	Retry(ctx context.Context, id string) (*api.RetryResponse, error)
	StreamEvents(ctx context.Context, id string, fn func(api.AnalysisEvent) error) error
}

var _ Client = (*api.Client)(nil)

// Tasks is the goroutine-per-operation Dispatcher.
type Tasks struct {
	client Client
	ch     chan Message
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Dispatcher = (*Tasks)(nil)

// NewTasks creates a dispatcher whose tasks stop when ctx is cancelled or
// Close is called.
func NewTasks(ctx context.Context, client Client) *Tasks {
	ctx, cancel := context.WithCancel(ctx)
	return &Tasks{
		client: client,
		ch:     make(chan Message, ChannelCapacity),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (t *Tasks) spawn(fn func(ctx context.Context)) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		fn(t.ctx)
	}()
}

// send delivers msg, blocking while the channel is full. It reports false
// once the dispatcher has been closed.
func (t *Tasks) send(msg Message) bool {
	select {
	case t.ch <- msg:
		return true
	case <-t.ctx.Done():
		return false
	}
}

func (t *Tasks) SpawnListLoad() {
	t.spawn(func(ctx context.Context) {
		resp, err := t.client.ListIssues(ctx)
		if err != nil {
			err = fmt.Errorf("failed to fetch issues: %w", err)
		}
		t.send(ListRefreshComplete{Cached: true, Response: resp, Err: err})
	})
}

func (t *Tasks) SpawnListRefresh() {
	t.spawn(func(ctx context.Context) {
		resp, err := t.client.RefreshIssues(ctx)
		if err != nil {
			err = fmt.Errorf("failed to refresh issues: %w", err)
		}
		t.send(ListRefreshComplete{Response: resp, Err: err})
	})
}

func (t *Tasks) SpawnDetailLoad(issueID string) {
	t.spawn(func(ctx context.Context) {
		detail, err := t.client.GetIssue(ctx, issueID)
		if err != nil {
			err = fmt.Errorf("failed to fetch issue: %w", err)
		}
		t.send(DetailRefreshComplete{IssueID: issueID, Cached: true, Detail: detail, Err: err})
	})
}

func (t *Tasks) SpawnDetailRefresh(issueID string) {
	t.spawn(func(ctx context.Context) {
		detail, err := t.client.RefreshIssue(ctx, issueID)
		if err != nil {
			err = fmt.Errorf("failed to refresh issue: %w", err)
		}
		t.send(DetailRefreshComplete{IssueID: issueID, Detail: detail, Err: err})
	})
}

// errReceiverGone stops a stream once the dispatcher is closed.
var errReceiverGone = errors.New("receiver gone")

// SpawnAnalysisStream forwards every event of the issue's stream, then exactly
// one AnalysisStreamEnded.
func (t *Tasks) SpawnAnalysisStream(issueID string) {
	t.spawn(func(ctx context.Context) {
		logging.Info("starting analysis stream", "issue_id", issueID)
		err := t.client.StreamEvents(ctx, issueID, func(event api.AnalysisEvent) error {
			if !t.send(AnalysisEventReceived{IssueID: issueID, Event: event}) {
				return errReceiverGone
			}
			return nil
		})
		if ctx.Err() != nil {
			logging.Debug("analysis stream stopped", "issue_id", issueID)
			return
		}
		if err != nil {
			logging.Warn("analysis stream ended abnormally", "issue_id", issueID, "error", err)
		}
		t.send(AnalysisStreamEnded{IssueID: issueID, Err: err})
	})
}

func (t *Tasks) SpawnAction(req ActionRequest) {
	t.spawn(func(ctx context.Context) {
		var err error
		switch req.Op {
		case OpAnalyze:
			_, err = t.client.Analyze(ctx, req.IssueID)
		case OpApprove:
			_, err = t.client.Approve(ctx, req.IssueID)
		case OpReject:
			_, err = t.client.Reject(ctx, req.IssueID)
		case OpComplete:
			_, err = t.client.Complete(ctx, req.IssueID)
		case OpRetry:
			_, err = t.client.Retry(ctx, req.IssueID)
		default:
			err = fmt.Errorf("unknown action %d", req.Op)
		}
		if err != nil {
			err = fmt.Errorf("failed to %s: %w", req.Op, err)
		}
		logging.Debug("action complete", "op", req.Op.String(), "issue_id", req.IssueID, "error", err)
		t.send(ActionComplete{Request: req, Err: err})
	})
}

func (t *Tasks) SpawnSessionLookup(issueID string) {
	t.spawn(func(ctx context.Context) {
		info, err := t.client.GetSession(ctx, issueID)
		if err != nil {
			t.send(SessionResolved{IssueID: issueID, Err: fmt.Errorf("failed to get session: %w", err)})
			return
		}
		path := info.Path()
		if path == "" {
			err = errors.New("no session available for this issue")
		}
		t.send(SessionResolved{IssueID: issueID, Path: path, Err: err})
	})
}

func (t *Tasks) Poll() []Message {
	var msgs []Message
	for {
		select {
		case msg := <-t.ch:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

// Close stops all tasks and waits for them to exit. Results not yet polled
// are discarded.
func (t *Tasks) Close() {
	t.cancel()
	t.wg.Wait()
}
