package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"
)

const defaultPolicyQuery = "data.accountauth.rbac.allow"

// DefaultRegoPolicy restricts admin RPCs to the ADMIN role. Methods it does not
// list are open to any caller that got past authentication.
const DefaultRegoPolicy = `package accountauth.rbac

restricted := {
	"/accountauth.v1.AuthService/AdminPing": {"ADMIN"},
}

default allow := false

allow if not restricted[input.method]

allow if input.role in restricted[input.method]
`

// OPAEvaluator evaluates role policies using OPA Rego. The policy is compiled
// once; evaluations are safe for concurrent use.
type OPAEvaluator struct {
	query rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles policy (DefaultRegoPolicy when empty) and prepares
// the allow query.
func NewOPAEvaluator(ctx context.Context, policy string) (*OPAEvaluator, error) {
	if policy == "" {
		policy = DefaultRegoPolicy
	}
	compiler, err := ast.CompileModules(map[string]string{"rbac.rego": policy})
	if err != nil {
		return nil, fmt.Errorf("compile policy: %w", err)
	}
	query, err := rego.New(
		rego.Query(defaultPolicyQuery),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare policy query: %w", err)
	}
	return &OPAEvaluator{query: query}, nil
}

// Authorize reports whether the policy allows in. An undefined decision is a deny.
func (e *OPAEvaluator) Authorize(ctx context.Context, in Input) (bool, error) {
	rs, err := e.query.Eval(ctx, rego.EvalInput(map[string]any{
		"method":     in.Method,
		"account_id": in.AccountID,
		"role":       in.Role,
	}))
	if err != nil {
		return false, fmt.Errorf("eval policy: %w", err)
	}
	return rs.Allowed(), nil
}

// HealthCheck verifies that the prepared query evaluates. Does not touch the database.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	rs, err := e.query.Eval(ctx, rego.EvalInput(map[string]any{"method": "", "role": ""}))
	if err != nil {
		return fmt.Errorf("eval policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return errors.New("policy query returned no result")
	}
	return nil
}
