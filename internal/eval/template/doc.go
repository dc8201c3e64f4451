// Package template renders Handlebars templates for notification payloads.
//
// The engine compiles templates with raymond and binds the helpers of a
// helpers.Registry to each compiled template. The data map of a render is
// exposed to helpers as @root, so helpers such as setVariable and
// isOnesignal can write values that later parts of the same template read.
//
// Example usage:
//
//	registry := helpers.Default(helpers.Options{Logger: logger})
//	engine := template.NewEngine(registry, 0, logger)
//
//	data := map[string]interface{}{
//	    "user": map[string]interface{}{"name": "Ada"},
//	    "sent": "2024-03-05T10:00:00Z",
//	}
//
//	out, err := engine.Render("Hi {{uppercase user.name}}, {{formatDate sent \"long\"}}", data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Output: Hi ADA, March 5, 2024
//
// Compiled templates are cached by source text. RegisterHelper replaces a
// binding and flushes the cache.
package template
