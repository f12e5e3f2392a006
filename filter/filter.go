package filter

import (
	"strings"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Gobd/jsonproc"
)

// Keys matches locations whose object key is one of names. Array
// locations never match.
func Keys(names ...string) jsonproc.ItemFilter {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(_ any, loc jsonproc.Loc) bool {
		k, ok := loc.Key()
		return ok && set[k]
	}
}

// KeyPrefix matches locations whose object key starts with prefix.
func KeyPrefix(prefix string) jsonproc.ItemFilter {
	return func(_ any, loc jsonproc.Loc) bool {
		k, ok := loc.Key()
		return ok && strings.HasPrefix(k, prefix)
	}
}

// Indexes matches locations at the given array positions. Object
// locations never match.
func Indexes(is ...int) jsonproc.ItemFilter {
	set := make(map[int]bool, len(is))
	for _, i := range is {
		set[i] = true
	}
	return func(_ any, loc jsonproc.Loc) bool {
		i, ok := loc.Index()
		return ok && set[i]
	}
}

// JSONString matches string values holding an embedded JSON object or
// array. The usual gate for callbacks that parse stringified JSON back
// into the tree.
func JSONString() jsonproc.ItemFilter {
	return func(v any, _ jsonproc.Loc) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		trimmed := strings.TrimSpace(s)
		if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
			return false
		}
		return govalidator.IsJSON(trimmed)
	}
}

// Email matches string values in email format.
func Email() jsonproc.ItemFilter {
	return stringPredicate(govalidator.IsEmail)
}

// UUID matches string values in UUID format.
func UUID() jsonproc.ItemFilter {
	return stringPredicate(govalidator.IsUUID)
}

// URL matches string values in URL format.
func URL() jsonproc.ItemFilter {
	return stringPredicate(govalidator.IsURL)
}

// Numeric matches string values containing only digits.
func Numeric() jsonproc.ItemFilter {
	return stringPredicate(govalidator.IsNumeric)
}

func stringPredicate(pred func(string) bool) jsonproc.ItemFilter {
	return func(v any, _ jsonproc.Loc) bool {
		s, ok := v.(string)
		return ok && pred(s)
	}
}

// Valid adapts ozzo-validation rules: the filter passes when the value
// satisfies every rule.
//
//	filter.Valid(validation.Required, validation.Length(8, 0))
func Valid(rules ...validation.Rule) jsonproc.ItemFilter {
	return func(v any, _ jsonproc.Loc) bool {
		return validation.Validate(v, rules...) == nil
	}
}

// And passes when every given filter passes.
func And(fs ...jsonproc.ItemFilter) jsonproc.ItemFilter {
	return func(v any, loc jsonproc.Loc) bool {
		for _, f := range fs {
			if !f(v, loc) {
				return false
			}
		}
		return true
	}
}

// Or passes when at least one given filter passes.
func Or(fs ...jsonproc.ItemFilter) jsonproc.ItemFilter {
	return func(v any, loc jsonproc.Loc) bool {
		for _, f := range fs {
			if f(v, loc) {
				return true
			}
		}
		return false
	}
}

// Not inverts a filter.
func Not(f jsonproc.ItemFilter) jsonproc.ItemFilter {
	return func(v any, loc jsonproc.Loc) bool {
		return !f(v, loc)
	}
}
