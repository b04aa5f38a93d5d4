package tools

import (
	"context"

	"github.com/bububa/travel-agents/schema"
)

type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
}

type Tool[I schema.Schema, O schema.Schema] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}
