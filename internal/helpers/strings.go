package helpers

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aymerick/raymond"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/value"
)

var (
	emailPattern  = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)
	numberPattern = regexp.MustCompile(`\d{4,10}`)
)

func (s *set) registerStrings(r *Registry) {
	r.MustRegister("uppercase", func(str string) string {
		return strings.ToUpper(str)
	})
	r.MustRegister("lowercase", func(str string) string {
		return strings.ToLower(str)
	})
	r.MustRegister("contains", func(str, substr string) bool {
		return strings.Contains(str, substr)
	})
	r.MustRegister("slugify", func(str string) string {
		return slug.Make(str)
	})

	r.MustRegister("join", join)
	r.MustRegister("len", length)
	r.MustRegister("isEmpty", length)
	r.MustRegisterOptional("trim", trim)
	r.MustRegisterOptional("split", split)
	r.MustRegister("remove", s.remove)
	r.MustRegister("replace", s.replace)
	r.MustRegister("default", defaultValue)
	r.MustRegister("stringify", s.stringify)
	r.MustRegister("parse", s.parse)
	r.MustRegister("isEmail", isEmail)
	r.MustRegister("proxyUrl", proxyURL)

	r.MustRegister("isArray", func(v interface{}) bool {
		return value.Of(v) == value.Sequence
	})
	r.MustRegister("isJSON", func(v interface{}) bool {
		return value.Of(v).Structured()
	})

	r.MustRegister("raw-helper", func(options *raymond.Options) string {
		return options.Fn()
	})
	r.MustRegister("getNumberFromText", func(options *raymond.Options) string {
		return numberPattern.FindString(options.Fn())
	})
}

// join concatenates the elements of any sequence
func join(arr interface{}, sep string) string {
	flat, ok := arr.([]interface{})
	if !ok {
		if str, ok := value.Text(arr); ok {
			return str
		}
		if value.Of(arr) != value.Sequence {
			return ""
		}
		flat = toSlice(arr)
	}

	strs := make([]string, len(flat))
	for i, v := range flat {
		strs[i] = raymond.Str(v)
	}
	return strings.Join(strs, sep)
}

// length counts map keys, sequence elements or characters
func length(v interface{}) int {
	switch t := v.(type) {
	case string:
		return utf8.RuneCountInString(t)
	case []interface{}:
		return len(t)
	case map[string]interface{}:
		return len(t)
	}
	switch value.Of(v) {
	case value.Sequence:
		return len(toSlice(v))
	case value.Map:
		return mapLen(v)
	case value.Scalar:
		str, _ := value.Text(v)
		return utf8.RuneCountInString(str)
	}
	return 0
}

// trim strips surrounding whitespace. With a length the text is cut to that
// many characters, backing up to the last delim when one is given and
// present. Both fall back to hash options of the same name.
func trim(str, size, delim interface{}, options *raymond.Options) interface{} {
	text, ok := value.Text(str)
	if !ok || text == "" {
		return ""
	}
	text = strings.TrimSpace(text)

	limit, ok := value.Number(argOr(size, options, "length"))
	if !ok {
		return text
	}

	runes := []rune(text)
	if limit < 0 || len(runes) <= int(limit) {
		return text
	}

	cut := string(runes[:int(limit)])
	if sep := raymond.Str(argOr(delim, options, "delim")); sep != "" {
		if i := strings.LastIndex(cut, sep); i > 0 {
			return cut[:i]
		}
	}
	return cut
}

// split divides str on delim (default ","). With an index (argument or hash
// option) a single element is returned; negative indices count from the end.
func split(str, delim, index interface{}, options *raymond.Options) interface{} {
	text, ok := value.Text(str)
	if !ok || text == "" {
		return ""
	}

	sep, _ := value.Text(delim)
	if sep == "" {
		sep = ","
	}
	parts := strings.Split(text, sep)

	idx, ok := value.Number(argOr(index, options, "index"))
	if !ok {
		return parts
	}

	i := int(idx)
	if i < 0 {
		i += len(parts)
	}
	if i < 0 || i >= len(parts) || parts[i] == "" {
		return nil
	}
	return parts[i]
}

func (s *set) compileRegexp(helper, pattern string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		s.logger.Debug("invalid pattern",
			zap.String("helper", helper),
			zap.String("pattern", pattern),
			zap.Error(err),
		)
		return nil, false
	}
	return re, true
}

// remove deletes every match of pattern from input
func (s *set) remove(input, pattern interface{}) interface{} {
	text, ok := value.Text(input)
	if !ok || text == "" {
		return ""
	}
	expr, ok := value.Text(pattern)
	if !ok {
		return text
	}
	re, ok := s.compileRegexp("remove", expr)
	if !ok {
		return text
	}
	return re.ReplaceAllString(text, "")
}

// replace substitutes every match of find with repl; repl may reference
// capture groups as $1
func (s *set) replace(input, find, repl interface{}) interface{} {
	text, ok := value.Text(input)
	if !ok || text == "" {
		return ""
	}
	expr, _ := value.Text(find)
	re, ok := s.compileRegexp("replace", expr)
	if !ok {
		return text
	}
	with, _ := value.Text(repl)
	return re.ReplaceAllString(text, with)
}

func defaultValue(v, fallback interface{}) interface{} {
	if value.Truthy(v) {
		return v
	}
	return fallback
}

func (s *set) stringify(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Debug("stringify failed", zap.Error(err))
		return ""
	}
	return string(data)
}

// parse decodes JSON text; text that is not JSON is returned unchanged
func (s *set) parse(v interface{}) interface{} {
	text, ok := value.Text(v)
	if !ok {
		return v
	}
	var out interface{}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		s.logger.Debug("parse failed", zap.String("input", text), zap.Error(err))
		return v
	}
	return out
}

func isEmail(v interface{}) bool {
	text, ok := value.Text(v)
	return ok && emailPattern.MatchString(text)
}

// proxyURL appends target to base as a query parameter, "url" unless the
// param hash option names another one
func proxyURL(base, target string, options *raymond.Options) string {
	param := options.HashStr("param")
	if param == "" {
		param = "url"
	}

	u, err := url.Parse(base)
	if err != nil {
		return fmt.Sprintf("%s?%s=%s", base, param, url.QueryEscape(target))
	}
	q := u.Query()
	q.Set(param, target)
	u.RawQuery = q.Encode()
	return u.String()
}
