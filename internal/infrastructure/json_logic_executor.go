package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/diegoholiveira/jsonlogic/v3"

	ops "github.com/Victor-armando18/promo-cart/internal/infrastructure/jsonlogic"
	"github.com/Victor-armando18/promo-cart/internal/interfaces"
)

type JsonLogicExecutor struct {
	customOps map[string]func(args ...interface{}) interface{}
}

// NewJsonLogicExecutor returns an executor with the round and groups operators registered.
func NewJsonLogicExecutor() *JsonLogicExecutor {
	j := &JsonLogicExecutor{
		customOps: make(map[string]func(args ...interface{}) interface{}),
	}
	j.RegisterCustomOperator("round", ops.Round)
	j.RegisterCustomOperator("groups", ops.Groups)
	return j
}

var _ interfaces.RuleExecutor = (*JsonLogicExecutor)(nil)

// operatorsMu serializes writes to the library's process-wide operator table.
// Operators are registered during setup, before any rule is evaluated.
var operatorsMu sync.Mutex

// RegisterCustomOperator makes name usable anywhere in a rule, including
// nested inside boolean expressions. The library keeps operators per process,
// so the last registration for a name wins.
func (j *JsonLogicExecutor) RegisterCustomOperator(name string, logic func(args ...interface{}) interface{}) {
	operatorsMu.Lock()
	defer operatorsMu.Unlock()
	j.customOps[name] = logic
	jsonlogic.AddOperator(name, func(values, data interface{}) interface{} {
		args, ok := values.([]interface{})
		if !ok {
			args = []interface{}{values}
		}
		return logic(args...)
	})
}

func (j *JsonLogicExecutor) Execute(ctx context.Context, ruleData map[string]interface{}, contextVars map[string]interface{}) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("%w: %v", interfaces.ErrRuleExecutionFailed, r)
		}
	}()

	ruleJSON, err := json.Marshal(ruleData)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding rule: %v", interfaces.ErrRuleExecutionFailed, err)
	}
	dataJSON, err := json.Marshal(contextVars)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding data: %v", interfaces.ErrRuleExecutionFailed, err)
	}

	var resultBuffer bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(ruleJSON), bytes.NewReader(dataJSON), &resultBuffer); err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrRuleExecutionFailed, err)
	}

	resultStr := strings.TrimSpace(resultBuffer.String())
	if resultStr == "" || resultStr == "null" {
		return nil, nil
	}

	var res interface{}
	decoder := json.NewDecoder(strings.NewReader(resultStr))
	decoder.UseNumber()
	if err := decoder.Decode(&res); err != nil {
		return nil, fmt.Errorf("%w: decoding result: %v", interfaces.ErrRuleExecutionFailed, err)
	}
	return finalizeValue(res), nil
}

// Evaluate runs a condition that must produce a boolean.
func (j *JsonLogicExecutor) Evaluate(ctx context.Context, rule map[string]interface{}, vars map[string]interface{}) (bool, error) {
	out, err := j.Execute(ctx, rule, vars)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: condition must return boolean, got %T", interfaces.ErrRuleExecutionFailed, out)
	}
	return b, nil
}

func finalizeValue(val interface{}) interface{} {
	if n, ok := val.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return val
}
