package helpers

import (
	"github.com/aymerick/raymond"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/selector"
)

func (s *set) registerContext(r *Registry) {
	r.MustRegister("isExpo", func(str string) string {
		return selector.Expo(str)
	})
	r.MustRegister("isFCM", func(str string) string {
		return selector.FCM(str)
	})
	r.MustRegister("isOnesignal", s.isOnesignal)
	r.MustRegister("setVariable", s.setVariable)
	r.MustRegister("pushCallback", s.pushCallback)
}

// isOnesignal stores the OneSignal selector and token on the root context.
// It renders nothing.
func (s *set) isOnesignal(str string, options *raymond.Options) string {
	root := Root(options)
	if root == nil {
		s.logger.Debug("isOnesignal: no root context")
		return ""
	}

	sel, token := selector.OneSignal(str)
	root[selector.OneSignalSelectorKey] = sel
	root[selector.OneSignalTokenKey] = token
	return ""
}

// setVariable stores a value on the root context under name
func (s *set) setVariable(name string, v interface{}, options *raymond.Options) string {
	root := Root(options)
	if root == nil || name == "" {
		s.logger.Debug("setVariable: nothing to set", zap.String("name", name))
		return ""
	}
	root[name] = v
	return ""
}

// pushCallback copies the delivery callback from fyno.callback into
// content.extras.data so that push payloads carry it
func (s *set) pushCallback(options *raymond.Options) string {
	root := Root(options)

	callback, ok := lookupMap(root, "fyno", "callback")
	if !ok {
		s.logger.Debug("pushCallback: fyno.callback missing")
		return ""
	}
	data, ok := lookupMap(root, "content", "extras", "data")
	if !ok {
		s.logger.Debug("pushCallback: content.extras.data missing")
		return ""
	}

	data["callback"] = raymond.Str(callback["url"]) + "?" + raymond.Str(callback["params"])
	data["message_id"] = callback["m"]
	return ""
}

func lookupMap(m map[string]interface{}, path ...string) (map[string]interface{}, bool) {
	cur := m
	for _, key := range path {
		next, ok := cur[key].(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}
