package evaluator

import (
	"encoding/json"
	"fmt"

	"github.com/antonmedv/expr"
)

type Expression string

func (e Expression) String() string {
	return string(e)
}

// EvaluateWithVars runs the expression against the given variables
func (e Expression) EvaluateWithVars(params map[string]interface{}) (interface{}, error) {
	program, err := expr.Compile(e.String(), expr.Env(params))
	if err != nil {
		return nil, err
	}
	return expr.Run(program, params)
}

// EvaluateWithStruct exposes the json representation of v to the expression under the given name
func (e Expression) EvaluateWithStruct(name string, v interface{}) (interface{}, error) {
	params, err := structToMap(v)
	if err != nil {
		return nil, err
	}
	return e.EvaluateWithVars(map[string]interface{}{name: params})
}

// IsTruthy evaluates the expression and requires a boolean result
func (e Expression) IsTruthy(params map[string]interface{}) (bool, error) {
	result, err := e.EvaluateWithVars(params)
	if err != nil {
		return false, err
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression %q must evaluate to a boolean, got %T", e, result)
	}
	return b, nil
}

func structToMap(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}
