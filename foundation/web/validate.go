package web

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateStruct checks the named fields of s (or all of them if none are
// named) and returns a 400 request error listing the failed fields.
func ValidateStruct(s any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = validatorInstance().StructPartial(s, fields...)
	} else {
		err = validatorInstance().Struct(s)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewRequestError(errors.Wrap(err, "validating request"), http.StatusBadRequest)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}

	return NewRequestError(errors.New(strings.Join(msgs, "; ")), http.StatusBadRequest)
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}
