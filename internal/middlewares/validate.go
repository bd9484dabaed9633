package middlewares

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	h "api/internal/helpers"
	"api/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate decodes and validates the JSON request body as T, storing the
// result in the request context for the handler adapters.
func Validate[T any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body T

		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&body); err != nil {
			h.RespondWithError(w, 400, []string{"INVALID_BODY"})
			return
		}

		if err := validate.Struct(body); err != nil {
			h.RespondWithError(w, 400, validationCodes(err))
			return
		}

		ctx := context.WithValue(r.Context(), models.ValidatedBodyKey{}, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ValidateQuery parses URL query parameters into T by json tag and
// validates the result. Supports string, bool, int and *int fields.
func ValidateQuery[T any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params T

		if err := decodeQuery(r, &params); err != nil {
			h.RespondWithError(w, 400, []string{"INVALID_QUERY"})
			return
		}

		if err := validate.Struct(params); err != nil {
			h.RespondWithError(w, 400, validationCodes(err))
			return
		}

		ctx := context.WithValue(r.Context(), models.ValidatedQueryKey{}, params)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validationCodes(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"VALIDATION_FAILED"}
	}

	codes := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		codes = append(codes, "INVALID_"+strings.ToUpper(fieldErr.Field()))
	}
	return codes
}

func decodeQuery(r *http.Request, params any) error {
	values := r.URL.Query()
	structValue := reflect.ValueOf(params).Elem()
	structType := structValue.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}

		raw := values.Get(name)
		if raw == "" {
			continue
		}

		target := structValue.Field(i)
		switch target.Kind() {
		case reflect.String:
			target.SetString(raw)
		case reflect.Bool:
			parsed, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			target.SetBool(parsed)
		case reflect.Int, reflect.Int32, reflect.Int64:
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return err
			}
			target.SetInt(parsed)
		case reflect.Ptr:
			if target.Type().Elem().Kind() == reflect.Int {
				parsed, err := strconv.Atoi(raw)
				if err != nil {
					return err
				}
				target.Set(reflect.ValueOf(&parsed))
			}
		default:
			// Unsupported field kinds are left at their zero value.
		}
	}

	return nil
}
