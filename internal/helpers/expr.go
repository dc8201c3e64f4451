package helpers

import (
	"context"

	"github.com/aymerick/raymond"
	"go.uber.org/zap"
)

// ifExpr renders the true branch when the expression holds against the
// root context, exposed to the expression as "root":
//
//	{{#ifExpr "root.order.total > 100 && root.user.vip"}}...{{/ifExpr}}
//
// Evaluation errors and non-boolean results take the false branch.
func (s *set) ifExpr(expression string, options *raymond.Options) string {
	vars := map[string]interface{}{
		"root": Root(options),
	}

	result, err := s.conditions.Evaluate(context.Background(), expression, vars)
	if err != nil {
		s.logger.Warn("ifExpr evaluation error",
			zap.String("expression", expression),
			zap.Error(err),
		)
		return options.Inverse()
	}

	matched, ok := result.(bool)
	if !ok {
		s.logger.Warn("ifExpr did not return boolean",
			zap.String("expression", expression),
			zap.Any("result", result),
		)
		return options.Inverse()
	}
	return branch(matched, options)
}
