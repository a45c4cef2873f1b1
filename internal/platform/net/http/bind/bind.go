// Package bind binds URL query values into structs and validates them
package bind

import (
	"errors"
	"maps"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"sync"

	perr "workshopdex/internal/platform/errors"
	"workshopdex/internal/platform/logger"
	ptime "workshopdex/internal/platform/time"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and query tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// messages name fields the way callers spell them in the URL
		v.RegisterTagNameFunc(fieldName)

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShortMin(v, trans)
		registerShortMax(v, trans)
		registerDateLike(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// RegisterValidation registers a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// fieldName prefers the query tag, then json, then the Go name
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		tag := fld.Tag.Get(key)
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return fld.Name
}

// ParseQuery binds r's URL query into T and validates it.
// Fields are named by their `query` tag; []string fields take repeated keys and pointer fields
// stay nil when the key is absent. Blank values count as absent and unknown keys are ignored
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	if err := Values(r.URL.Query(), &dst); err != nil {
		var zero T
		return zero, err
	}
	if err := Validate(dst); err != nil {
		var zero T
		return zero, err
	}
	return dst, nil
}

var (
	dOnce   sync.Once
	decoder *form.Decoder
)

func queryDecoder() *form.Decoder {
	dOnce.Do(func() {
		decoder = form.NewDecoder()
		decoder.SetTagName("query")
	})
	return decoder
}

// Values decodes vals into the struct pointed to by dst. A value that does not fit its field
// is an InvalidArgument error naming the key
func Values(vals url.Values, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return perr.Newf(perr.ErrorCodeUnknown, "bind: destination must be a pointer to struct, got %T", dst)
	}
	err := queryDecoder().Decode(dst, present(vals))
	if err == nil {
		return nil
	}
	var derrs form.DecodeErrors
	if !errors.As(err, &derrs) {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "bind: decode %T", dst)
	}
	keys := slices.Sorted(maps.Keys(derrs))
	return perr.WithField(perr.InvalidArgf("%s has an invalid value", keys[0]), keys[0])
}

// present trims every value and drops blank ones, and keys left with nothing
func present(vals url.Values) url.Values {
	out := make(url.Values, len(vals))
	for k, vs := range vals {
		for _, v := range vs {
			if v = strings.TrimSpace(v); v != "" {
				out[k] = append(out[k], v)
			}
		}
	}
	return out
}

// Validate runs struct validation and maps the first failure to a Validation error carrying the field
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.New(perr.ErrorCodeValidation, "validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return "", inv.Error()
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// custom translations with short messages

func registerShortMin(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("min", trans,
		func(ut ut.Translator) error {
			return ut.Add("min", "{0} must be at least {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("min", fe.Field(), fe.Param())
			return msg
		},
	)
}

func registerShortMax(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("max", trans,
		func(ut ut.Translator) error {
			return ut.Add("max", "{0} must be at most {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
}

// datelike accepts anything ptime.ParseDateLike understands
func registerDateLike(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("datelike", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := ptime.ParseDateLike(s)
		return err == nil
	})
	_ = v.RegisterTranslation("datelike", trans,
		func(ut ut.Translator) error {
			return ut.Add("datelike", "{0} must be a date such as 2021-01-01 or 2021-01-01T00:00:00Z", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("datelike", fe.Field())
			return msg
		},
	)
}
