package submission

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ClockLayout is the accepted wall-clock time format.
const ClockLayout = "15:04"

const clockTag = "clock"

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report errors under the JSON field names the client sends.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(clockTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && ValidClock(s)
	})
	_ = validate.RegisterTranslation(clockTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " must be a time in HH:MM format"
		})
}

// ValidClock reports whether s is a 24-hour HH:MM time.
func ValidClock(s string) bool {
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// scalars are the form fields checked by the last gate.
type scalars struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Location    string `json:"location" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Time        string `json:"time" validate:"clock"`
}

// CheckFields validates the scalar fields and returns one FieldError per
// failing field, in declaration order. Values are trimmed first.
func CheckFields(f Fields, clock string) []FieldError {
	in := scalars{
		Title:       strings.TrimSpace(f.Title),
		Location:    strings.TrimSpace(f.Location),
		Description: strings.TrimSpace(f.Description),
		Time:        strings.TrimSpace(clock),
	}
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Error: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Error: fe.Translate(translator)})
	}
	return out
}
