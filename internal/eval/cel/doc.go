// Package cel evaluates CEL (Common Expression Language) conditions for the
// ifExpr template helper.
//
// The render context is bound to the variable root:
//
//	evaluator := cel.NewEvaluator()
//
//	vars := map[string]interface{}{
//	    "root": map[string]interface{}{
//	        "order": map[string]interface{}{"total": 120},
//	        "user":  map[string]interface{}{"vip": true},
//	    },
//	}
//
//	matched, err := evaluator.EvaluateBool(ctx, "root.order.total > 100 && root.user.vip", vars)
//
// Compiled programs are cached by expression text.
package cel
