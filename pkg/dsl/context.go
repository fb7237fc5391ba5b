package dsl

import (
	"context"
	"io"
	"os"

	"github.com/oisee/gridbridge/pkg/grid"
)

// ExecutionContext carries state between workflow steps.
type ExecutionContext struct {
	ctx       context.Context
	svc       grid.Service
	values    map[string]any
	variables map[string]string
	dryRun    bool
	verbose   bool
	out       io.Writer
}

// NewExecutionContext creates an empty execution context.
func NewExecutionContext(ctx context.Context, svc grid.Service) *ExecutionContext {
	return &ExecutionContext{
		ctx:       ctx,
		svc:       svc,
		values:    make(map[string]any),
		variables: make(map[string]string),
		out:       os.Stdout,
	}
}

// Context returns the context for remote calls.
func (c *ExecutionContext) Context() context.Context { return c.ctx }

// Service returns the grid service.
func (c *ExecutionContext) Service() grid.Service { return c.svc }

// Get returns a value saved by an earlier step.
func (c *ExecutionContext) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Set saves a step value.
func (c *ExecutionContext) Set(name string, v any) {
	c.values[name] = v
}

// GetVariable returns a workflow variable, or "" when unset.
func (c *ExecutionContext) GetVariable(name string) string {
	return c.variables[name]
}

// SetVariable sets a workflow variable.
func (c *ExecutionContext) SetVariable(name, value string) {
	c.variables[name] = value
}

func (c *ExecutionContext) IsDryRun() bool { return c.dryRun }
func (c *ExecutionContext) SetDryRun(v bool) { c.dryRun = v }
func (c *ExecutionContext) IsVerbose() bool { return c.verbose }
func (c *ExecutionContext) SetVerbose(v bool) { c.verbose = v }
func (c *ExecutionContext) Output() io.Writer { return c.out }
func (c *ExecutionContext) SetOutput(w io.Writer) { c.out = w }
