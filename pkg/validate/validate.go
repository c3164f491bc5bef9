package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// PhonePattern допустимый формат телефона: цифры, пробелы, дефисы, необязательный "+" в начале
var PhonePattern = regexp.MustCompile(`^\+?[0-9\- ]{10,15}$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get возвращает общий экземпляр валидатора с зарегистрированными правилами сервиса
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		instance = v
	})
	return instance
}

// IsPhone проверяет телефон по PhonePattern
func IsPhone(phone string) bool {
	return PhonePattern.MatchString(phone)
}

// Struct валидирует структуру и возвращает читаемое описание первых нарушений
func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "phone":
		return fmt.Sprintf("%s has invalid format", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
