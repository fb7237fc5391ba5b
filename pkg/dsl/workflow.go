// Package dsl runs YAML or TOML workflows and batch record changes
// against a grid.Service.
package dsl

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/oisee/gridbridge/pkg/grid"
)

// Workflow represents a YAML-defined workflow.
type Workflow struct {
	Name        string            `yaml:"name" toml:"name"`
	Description string            `yaml:"description,omitempty" toml:"description,omitempty"`
	Variables   map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty"`
	Steps       []WorkflowStep    `yaml:"steps" toml:"steps"`
}

// WorkflowStep represents a single step in a workflow.
type WorkflowStep struct {
	Name       string         `yaml:"name,omitempty" toml:"name,omitempty"`
	Action     string         `yaml:"action" toml:"action"`
	Parameters map[string]any `yaml:"parameters,omitempty" toml:"parameters,omitempty"`
	SaveAs     string         `yaml:"saveAs,omitempty" toml:"saveAs,omitempty"`
	Condition  string         `yaml:"condition,omitempty" toml:"condition,omitempty"`
	OnFailure  string         `yaml:"onFailure,omitempty" toml:"onFailure,omitempty"` // continue, fail, skip
}

// WorkflowResult represents the result of a workflow execution.
type WorkflowResult struct {
	RunID       string         `json:"runId"`
	Name        string         `json:"name"`
	Success     bool           `json:"success"`
	StepResults []StepResult   `json:"stepResults"`
	Variables   map[string]any `json:"variables"`
	Error       string         `json:"error,omitempty"`
}

// StepResult represents the result of a single step.
type StepResult struct {
	Name       string `json:"name"`
	Action     string `json:"action"`
	Success    bool   `json:"success"`
	Output     any    `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skipReason,omitempty"`
}

// ActionHandler is a function that handles a workflow action.
type ActionHandler func(ctx *ExecutionContext, params map[string]any) (any, error)

// WorkflowEngine executes YAML-defined workflows against a grid.Service.
type WorkflowEngine struct {
	svc      grid.Service
	handlers map[string]ActionHandler
	logger   zerolog.Logger
	out      io.Writer
}

// NewWorkflowEngine creates a new workflow engine with the built-in actions.
func NewWorkflowEngine(svc grid.Service, logger zerolog.Logger) *WorkflowEngine {
	engine := &WorkflowEngine{
		svc:      svc,
		handlers: make(map[string]ActionHandler),
		logger:   logger,
		out:      os.Stdout,
	}

	engine.RegisterHandler("list_bases", handleListBases)
	engine.RegisterHandler("list_tables", handleListTables)
	engine.RegisterHandler("describe_table", handleDescribeTable)
	engine.RegisterHandler("list_records", handleListRecords)
	engine.RegisterHandler("get_record", handleGetRecord)
	engine.RegisterHandler("create_record", handleCreateRecord)
	engine.RegisterHandler("update_record", handleUpdateRecord)
	engine.RegisterHandler("delete_record", handleDeleteRecord)
	engine.RegisterHandler("search_records", handleSearchRecords)
	engine.RegisterHandler("update_matching", handleUpdateMatching)
	engine.RegisterHandler("delete_matching", handleDeleteMatching)
	engine.RegisterHandler("print", handlePrint)
	engine.RegisterHandler("fail_if", handleFailIf)

	return engine
}

// RegisterHandler registers a custom action handler.
func (e *WorkflowEngine) RegisterHandler(action string, handler ActionHandler) {
	e.handlers[action] = handler
}

// SetOutput sets where the print action writes.
func (e *WorkflowEngine) SetOutput(w io.Writer) {
	e.out = w
}

// LoadWorkflow loads a workflow from a YAML file, or a TOML file when the
// name ends in .toml.
func (e *WorkflowEngine) LoadWorkflow(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return e.ParseTOMLWorkflow(data)
	}
	return e.ParseWorkflow(data)
}

// ParseTOMLWorkflow parses a workflow from TOML data.
func (e *WorkflowEngine) ParseTOMLWorkflow(data []byte) (*Workflow, error) {
	var workflow Workflow
	if _, err := toml.Decode(string(data), &workflow); err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}
	return checkWorkflow(&workflow)
}

// ParseWorkflow parses a workflow from YAML data.
func (e *WorkflowEngine) ParseWorkflow(data []byte) (*Workflow, error) {
	var workflow Workflow
	if err := yaml.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}
	return checkWorkflow(&workflow)
}

func checkWorkflow(workflow *Workflow) (*Workflow, error) {
	if len(workflow.Steps) == 0 {
		return nil, fmt.Errorf("parsing workflow: no steps defined")
	}
	return workflow, nil
}

// Execute runs a workflow. Step failures are reported in the result, not as
// an error.
func (e *WorkflowEngine) Execute(ctx context.Context, workflow *Workflow, opts ...ExecuteOption) (*WorkflowResult, error) {
	execCtx := NewExecutionContext(ctx, e.svc)
	execCtx.SetOutput(e.out)

	for k, v := range workflow.Variables {
		execCtx.SetVariable(k, v)
	}

	// Options after workflow variables so WithVariables can override.
	for _, opt := range opts {
		opt(execCtx)
	}

	runID, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("workflow run id: %w", err)
	}
	result := &WorkflowResult{
		RunID:       runID.String(),
		Name:        workflow.Name,
		Success:     true,
		StepResults: make([]StepResult, 0, len(workflow.Steps)),
		Variables:   make(map[string]any),
	}

	for i, step := range workflow.Steps {
		stepName := step.Name
		if stepName == "" {
			stepName = fmt.Sprintf("step_%d_%s", i+1, step.Action)
		}

		stepResult := StepResult{
			Name:   stepName,
			Action: step.Action,
		}

		if step.Condition != "" && !evaluateCondition(execCtx, step.Condition) {
			stepResult.Skipped = true
			stepResult.SkipReason = "condition not met"
			stepResult.Success = true
			result.StepResults = append(result.StepResults, stepResult)
			continue
		}

		handler, ok := e.handlers[step.Action]
		if !ok {
			stepResult.Error = fmt.Sprintf("unknown action: %s", step.Action)
			result.StepResults = append(result.StepResults, stepResult)
			result.Success = false
			result.Error = stepResult.Error
			return result, nil
		}

		params := expandParams(execCtx, step.Parameters)
		if execCtx.IsVerbose() {
			fmt.Fprintf(execCtx.Output(), "[%d/%d] %s\n", i+1, len(workflow.Steps), stepName)
		}

		e.logger.Debug().Str("run", result.RunID).Str("step", stepName).Str("action", step.Action).Msg("workflow step")
		output, err := handler(execCtx, params)
		if err != nil {
			stepResult.Error = err.Error()
			e.logger.Debug().Err(err).Str("step", stepName).Str("onFailure", step.OnFailure).Msg("workflow step failed")

			switch step.OnFailure {
			case "continue":
				result.StepResults = append(result.StepResults, stepResult)
				continue
			case "skip":
				stepResult.Skipped = true
				stepResult.SkipReason = "skipped due to error"
				result.StepResults = append(result.StepResults, stepResult)
				continue
			default:
				result.StepResults = append(result.StepResults, stepResult)
				result.Success = false
				result.Error = fmt.Sprintf("step '%s' failed: %s", stepName, err)
				return result, nil
			}
		}

		stepResult.Success = true
		stepResult.Output = output

		if step.SaveAs != "" {
			execCtx.Set(step.SaveAs, output)
			result.Variables[step.SaveAs] = output
		}

		result.StepResults = append(result.StepResults, stepResult)
	}

	return result, nil
}

// ExecuteOption configures workflow execution.
type ExecuteOption func(*ExecutionContext)

// WithDryRun enables dry-run mode. Write actions report what they would do.
func WithDryRun(dryRun bool) ExecuteOption {
	return func(ctx *ExecutionContext) {
		ctx.SetDryRun(dryRun)
	}
}

// WithVerbose enables verbose output.
func WithVerbose(verbose bool) ExecuteOption {
	return func(ctx *ExecutionContext) {
		ctx.SetVerbose(verbose)
	}
}

// WithVariables sets additional variables.
func WithVariables(vars map[string]string) ExecuteOption {
	return func(ctx *ExecutionContext) {
		for k, v := range vars {
			ctx.SetVariable(k, v)
		}
	}
}

var varRef = regexp.MustCompile(`\$\{(\w+)\}`)

// expandParams expands ${name} references in parameters.
func expandParams(ctx *ExecutionContext, params map[string]any) map[string]any {
	if params == nil {
		return nil
	}

	result := make(map[string]any, len(params))
	for k, v := range params {
		result[k] = expandValue(ctx, v)
	}
	return result
}

// expandValue recursively expands variables in a value. A string that is
// exactly one reference to a saved step value is replaced by that value
// itself, so records can be passed between steps.
func expandValue(ctx *ExecutionContext, v any) any {
	switch val := v.(type) {
	case string:
		if m := varRef.FindStringSubmatch(val); m != nil && m[0] == val {
			if saved, ok := ctx.Get(m[1]); ok {
				return saved
			}
		}
		return varRef.ReplaceAllStringFunc(val, func(match string) string {
			name := match[2 : len(match)-1]
			if saved, ok := ctx.Get(name); ok {
				return fmt.Sprintf("%v", saved)
			}
			if s := ctx.GetVariable(name); s != "" {
				return s
			}
			return os.Getenv(name)
		})
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = expandValue(ctx, item)
		}
		return result
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, item := range val {
			result[k] = expandValue(ctx, item)
		}
		return result
	default:
		return v
	}
}

// evaluateCondition evaluates "exists:name", "empty:name", "not_empty:name",
// "true" or "false".
func evaluateCondition(ctx *ExecutionContext, condition string) bool {
	condition = strings.TrimSpace(condition)

	if name, ok := strings.CutPrefix(condition, "exists:"); ok {
		_, found := ctx.Get(name)
		return found
	}
	if name, ok := strings.CutPrefix(condition, "empty:"); ok {
		val, found := ctx.Get(name)
		return !found || isEmpty(val)
	}
	if name, ok := strings.CutPrefix(condition, "not_empty:"); ok {
		val, found := ctx.Get(name)
		return found && !isEmpty(val)
	}

	return condition == "true"
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case []grid.Record:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case string:
		return val == ""
	case *BatchResult:
		return val.Processed == 0
	default:
		return false
	}
}
