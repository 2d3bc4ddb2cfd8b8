// Package validation owns the struct validator shared by request binding and
// the document schemas, and turns validator failures into field errors keyed
// by JSON names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/geocoder89/tourneyhub/internal/apperr"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	// tag name shared with gin so one set of struct tags drives both paths
	TagName = "binding"

	RuleDottedDomain = "dotted_domain"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate

	ginOnce sync.Once
)

// Engine returns the process-wide validator with the custom rules registered.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		engine.SetTagName(TagName)
		registerRules(engine)
	})
	return engine
}

// RegisterGin installs the custom rules on gin's binding validator.
func RegisterGin() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerRules(v)
		}
	})
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation(RuleDottedDomain, dottedDomain)
}

// dottedDomain requires local@domain with at least one inner dot in the domain.
func dottedDomain(fl validator.FieldLevel) bool {
	return HasDottedDomain(fl.Field().String())
}

func HasDottedDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}

	return strings.Contains(domain, ".")
}

// Struct validates v and returns an *apperr.ValidationError listing every
// violated field, or nil.
func Struct(v interface{}) error {
	err := Engine().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &apperr.ValidationError{Fields: FieldErrors(BaseStructType(v), verrs)}
	}

	return apperr.Wrap(apperr.KindUnexpected, "validate", err)
}

func FieldErrors(rootType reflect.Type, verrs validator.ValidationErrors) []apperr.FieldError {
	fields := make([]apperr.FieldError, 0, len(verrs))

	for _, fieldError := range verrs {
		rule := fieldError.Tag()
		param := fieldError.Param()

		fields = append(fields, apperr.FieldError{
			Field:   jsonPathFromValidatorError(rootType, fieldError),
			Rule:    rule,
			Param:   param,
			Message: Message(rule, param),
		})
	}

	return fields
}

func BaseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

func jsonPathFromValidatorError(rootType reflect.Type, fieldError validator.FieldError) string {
	// Namespace format is usually "<StructName>.<Field>[.<NestedField>...]".
	namespace := fieldError.StructNamespace()
	if namespace == "" {
		namespace = fieldError.Namespace()
	}

	if namespace == "" {
		return fieldError.Field()
	}

	parts := strings.Split(namespace, ".")
	if len(parts) == 0 {
		return fieldError.Field()
	}

	if rootType != nil && rootType.Name() != "" && parts[0] == rootType.Name() {
		parts = parts[1:]
	}

	path := mapStructPathToJSONPath(rootType, parts)
	if path != "" {
		return path
	}

	return fieldError.Field()
}

// JSONPathFromDotPath maps a Go field path such as "Team.Name" to its JSON form.
func JSONPathFromDotPath(rootType reflect.Type, dotPath string) string {
	dotPath = strings.TrimSpace(dotPath)
	if dotPath == "" {
		return ""
	}

	return mapStructPathToJSONPath(rootType, strings.Split(dotPath, "."))
}

func mapStructPathToJSONPath(rootType reflect.Type, parts []string) string {
	if len(parts) == 0 {
		return ""
	}

	current := rootType
	out := make([]string, 0, len(parts))

	for _, rawPart := range parts {
		if rawPart == "" {
			continue
		}

		fieldName, indexSuffix := splitFieldIndex(rawPart)
		jsonName := fieldName

		nextType := reflect.Type(nil)
		if current != nil {
			for current.Kind() == reflect.Pointer {
				current = current.Elem()
			}

			if current.Kind() == reflect.Struct {
				if sf, ok := current.FieldByName(fieldName); ok {
					jsonName = jsonNameFromStructField(sf)
					nextType = sf.Type
				}
			}
		}

		out = append(out, jsonName+indexSuffix)

		if nextType != nil {
			current = unwindCollection(nextType)
		} else {
			current = nil
		}
	}

	return strings.Join(out, ".")
}

func splitFieldIndex(part string) (string, string) {
	idx := strings.Index(part, "[")
	if idx == -1 {
		return part, ""
	}

	return part[:idx], part[idx:]
}

func jsonNameFromStructField(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return sf.Name
	}

	return name
}

func unwindCollection(t reflect.Type) reflect.Type {
	for t != nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			t = t.Elem()
		default:
			return t
		}
	}

	return nil
}

func Message(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case RuleDottedDomain:
		return "must have a domain containing a dot"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "len":
		return "must be exactly " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	case "type":
		if param != "" {
			return "must be of type " + param
		}
		return "has the wrong type"
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
