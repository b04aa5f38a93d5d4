package schema

import "encoding/json"

// Input is a generic chat input schema for agents without a dedicated
// input model.
type Input struct {
	Base
	// ChatMessage the message sent by the user to the agent.
	ChatMessage string `json:"chat_message" jsonschema:"title=chat_message,description=The message sent by the user to the agent." validate:"required"`
}

func NewInput(msg string) *Input {
	return &Input{ChatMessage: msg}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
