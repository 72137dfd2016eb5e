package params

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/asaskevich/govalidator"
)

// fqdnRegex accepts dot separated labels of alphanumerics with inner hyphens.
var fqdnRegex = regexp.MustCompile(`^(([a-zA-Z0-9]|[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9])\.)*([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9\-]*[A-Za-z0-9])$`)

const (
	expectBoolean       = "a Boolean value"
	expectString        = "a non-empty String value"
	expectFQDN          = "a fully qualified domain name"
	expectHost          = "a hostname or IP address"
	expectStringOrList  = "a non-empty String or a non-empty Array of non-empty Strings"
	expectServiceEnsure = "a String, valid values are stopped, running"
)

// ValidationError reports a parameter that failed its type or domain check.
type ValidationError struct {
	Parameter string
	Expected  string
	Value     any
	unknown   bool
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.unknown {
		return fmt.Sprintf("unknown parameter %q: expects %s", e.Parameter, e.Expected)
	}
	return fmt.Sprintf("parameter %q expects %s, got %s", e.Parameter, e.Expected, describe(e.Value))
}

func describe(v any) string {
	if v == nil {
		return "undef"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q (string)", s)
	}
	return fmt.Sprintf("%v (%T)", v, v)
}

func boolValue(name string, value any) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, &ValidationError{Parameter: name, Expected: expectBoolean, Value: value}
	}
	return b, nil
}

func nonEmptyString(name string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &ValidationError{Parameter: name, Expected: expectString, Value: value}
	}
	if err := checkString(name, s); err != nil {
		return "", err
	}
	return s, nil
}

// checkString rejects empty strings and strings carrying control characters.
func checkString(name, s string) error {
	if s == "" || strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return &ValidationError{Parameter: name, Expected: expectString, Value: s}
	}
	return nil
}

func fqdnValue(name string, value any) (string, error) {
	s, ok := value.(string)
	if !ok || !fqdnRegex.MatchString(s) {
		return "", &ValidationError{Parameter: name, Expected: expectFQDN, Value: value}
	}
	return s, nil
}

func hostValue(name string, value any) (string, error) {
	s, ok := value.(string)
	if !ok || strings.IndexFunc(s, unicode.IsControl) >= 0 {
		return "", &ValidationError{Parameter: name, Expected: expectHost, Value: value}
	}
	if !govalidator.IsIP(s) && !fqdnRegex.MatchString(s) {
		return "", &ValidationError{Parameter: name, Expected: expectHost, Value: value}
	}
	return s, nil
}

func stringOrListValue(name string, value any) ([]string, error) {
	invalid := &ValidationError{Parameter: name, Expected: expectStringOrList, Value: value}

	switch v := value.(type) {
	case string:
		if checkString(name, v) != nil {
			return nil, invalid
		}
		return []string{v}, nil
	case []string:
		if len(v) == 0 {
			return nil, invalid
		}
		for _, s := range v {
			if checkString(name, s) != nil {
				return nil, invalid
			}
		}
		if hasDuplicate(v) {
			return nil, invalid
		}
		return append([]string(nil), v...), nil
	case []any:
		if len(v) == 0 {
			return nil, invalid
		}
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok || checkString(name, s) != nil {
				return nil, invalid
			}
			out = append(out, s)
		}
		if hasDuplicate(out) {
			return nil, invalid
		}
		return out, nil
	default:
		return nil, invalid
	}
}

// hasDuplicate reports whether any name appears twice. Each package name
// becomes a resource identity, so repeats cannot be declared.
func hasDuplicate(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return true
		}
		seen[n] = struct{}{}
	}
	return false
}

func serviceEnsureValue(name string, value any) (ServiceEnsure, error) {
	s, ok := value.(string)
	if !ok {
		return "", &ValidationError{Parameter: name, Expected: expectServiceEnsure, Value: value}
	}
	switch ServiceEnsure(s) {
	case ServiceRunning, ServiceStopped:
		return ServiceEnsure(s), nil
	default:
		return "", &ValidationError{Parameter: name, Expected: expectServiceEnsure, Value: value}
	}
}
