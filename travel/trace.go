package travel

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

// TraceKind classifies a trace message.
type TraceKind = string

const (
	TraceSystemPrompt TraceKind = "system_prompt"
	TraceUserInput    TraceKind = "user_input"
	TraceToolCall     TraceKind = "tool_call"
	TraceToolReturn   TraceKind = "tool_return"
	TraceText         TraceKind = "text"
)

// TraceMessage is one entry in a run trace: a prompt, a tool exchange or a
// model response, attributed to the agent that produced it.
type TraceMessage struct {
	// SpanID groups the messages of one agent invocation.
	SpanID string `json:"span_id"`
	// Agent the agent the message belongs to.
	Agent string `json:"agent"`
	// Kind the message kind.
	Kind TraceKind `json:"kind"`
	// Tool the tool name for tool_call/tool_return messages.
	Tool string `json:"tool,omitempty"`
	// Content the message payload.
	Content string `json:"content,omitempty"`
	// Timestamp when the message was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// SystemPromptMsg builds a system prompt trace message.
func SystemPromptMsg(content string) TraceMessage {
	return TraceMessage{Kind: TraceSystemPrompt, Content: content, Timestamp: time.Now()}
}

// UserInputMsg builds a user input trace message.
func UserInputMsg(content string) TraceMessage {
	return TraceMessage{Kind: TraceUserInput, Content: content, Timestamp: time.Now()}
}

// ToolCallMsg builds a tool call trace message.
func ToolCallMsg(tool string, args string) TraceMessage {
	return TraceMessage{Kind: TraceToolCall, Tool: tool, Content: args, Timestamp: time.Now()}
}

// ToolReturnMsg builds a tool return trace message.
func ToolReturnMsg(tool string, result string) TraceMessage {
	return TraceMessage{Kind: TraceToolReturn, Tool: tool, Content: result, Timestamp: time.Now()}
}

// TextMsg builds a model response trace message.
func TextMsg(content string) TraceMessage {
	return TraceMessage{Kind: TraceText, Content: content, Timestamp: time.Now()}
}

// Recorder collects trace messages across concurrently running agents.
// It is safe for concurrent use.
type Recorder struct {
	mtx  sync.Mutex
	msgs []TraceMessage
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return new(Recorder)
}

// Record appends the messages under a fresh span attributed to agent.
func (r *Recorder) Record(agent string, msgs ...TraceMessage) {
	if r == nil || len(msgs) == 0 {
		return
	}
	spanID := xid.New().String()
	r.mtx.Lock()
	defer r.mtx.Unlock()
	for _, msg := range msgs {
		msg.SpanID = spanID
		msg.Agent = agent
		if msg.Timestamp.IsZero() {
			msg.Timestamp = time.Now()
		}
		r.msgs = append(r.msgs, msg)
	}
}

// Messages returns a copy of every recorded message in record order.
func (r *Recorder) Messages() []TraceMessage {
	if r == nil {
		return nil
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	out := make([]TraceMessage, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// ByAgent returns the recorded messages attributed to agent.
func (r *Recorder) ByAgent(agent string) []TraceMessage {
	if r == nil {
		return nil
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	var out []TraceMessage
	for _, msg := range r.msgs {
		if msg.Agent == agent {
			out = append(out, msg)
		}
	}
	return out
}
