package calculator

import (
	"context"
	"encoding/json"
	"math"

	"github.com/Knetic/govaluate"

	"github.com/bububa/travel-agents/schema"
	"github.com/bububa/travel-agents/tools"
)

var constParams = map[string]interface{}{
	"PI": math.Pi,
	"E":  math.E,
}

// Input is the schema for evaluating a mathematical expression. Supports
// basic arithmetic operations as well as exponentiation, with named
// parameters substituted into the expression.
type Input struct {
	schema.Base
	// Expression mathematical expression to evaluate. For example, '2 + 2'.
	Expression string `json:"expression" jsonschema:"title=expression,description=Mathematical expression to evaluate. For example '2 + 2'." validate:"required"`
	// Params represents the expression's parameters
	Params map[string]interface{} `json:"params,omitempty" jsonschema:"title=params,description=Parameters for the expression."`
}

func NewInput(exp string, params map[string]interface{}) *Input {
	return &Input{
		Expression: exp,
		Params:     params,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output schema for the output of the calculator tool
type Output struct {
	schema.Base
	// Result result of the calculation
	Result interface{} `json:"result,omitempty" jsonschema:"title=result,description=Result of the calculation."`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Tool struct {
	tools.Config
}

var _ tools.Tool[Input, Output] = (*Tool)(nil)

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CalculatorTool")
	}
	return ret
}

// Run executes the calculator tool with the given parameters.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	exp, err := govaluate.NewEvaluableExpression(input.Expression)
	if err != nil {
		return nil, err
	}
	params := make(map[string]interface{}, len(input.Params)+len(constParams))
	for k, v := range input.Params {
		params[k] = v
	}
	for k, v := range constParams {
		if _, ok := params[k]; ok {
			continue
		}
		params[k] = v
	}
	result, err := exp.Evaluate(params)
	if err != nil {
		return nil, err
	}
	return &Output{Result: result}, nil
}
