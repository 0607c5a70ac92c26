package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSetting indicates that a value supplied by some source fails
// the type or constraint of its target field. Unset fields fall back to
// their defaults and never produce this error.
var ErrInvalidSetting = errors.New("invalid setting")

// provenance maps dotted setting keys to a description of the source that
// last supplied them, e.g. "data.batch_size" -> "environment variable
// PRJ_DATA__BATCH_SIZE". Used to name the offender in resolution errors.
type provenance map[string]string

// recordAll registers every leaf key of m under the name produced by label.
func (p provenance) recordAll(m map[string]any, prefix string, label func(key string) string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			p.recordAll(sub, key, label)
			continue
		}
		p[key] = label(key)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the mapstructure key, not the Go field name,
	// so messages line up with YAML keys and environment variable paths.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			return fld.Name
		}
		return tag
	})
	return v
}

// validateSettings checks the merged settings against the field
// constraints. Each violation names the dotted setting key and, when
// known, the source that supplied the value.
func validateSettings(s *Settings, prov provenance) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}

	var errs []error
	for _, fe := range verrs {
		key := settingsKey(fe.Namespace())
		msg := fmt.Sprintf("%s: value %v violates %q", key, fe.Value(), fe.Tag())
		if src, ok := prov[key]; ok {
			msg += " (from " + src + ")"
		}
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidSetting, msg))
	}
	return joinErrors(errs)
}

// settingsKey converts a validator namespace like
// "Settings.data.num_workers" to the dotted key "data.num_workers".
func settingsKey(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// describeDecodeError enriches a decode failure with the source that
// supplied the unparseable value, matched by the quoted key in the decoder
// message.
func describeDecodeError(err error, prov provenance) error {
	msg := err.Error()
	for key, src := range prov {
		if strings.Contains(msg, "'"+key+"'") {
			return fmt.Errorf("%w: %s (from %s): %v", ErrInvalidSetting, key, src, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidSetting, err)
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
