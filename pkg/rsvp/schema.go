package rsvp

import (
	"fmt"
	"strconv"

	"github.com/eventease/manager/internal/errdef"
	"github.com/eventease/manager/pkg/model"
)

// Schema validates attendee submissions against the custom field definitions of one event. It is
// built per request since organizers can change the definitions at any time.
type Schema struct {
	fields model.CustomFields
}

// BuildSchema folds a list of custom field definitions into a Schema. A broken definition fails
// the build immediately so it can never half-validate a submission.
func BuildSchema(fields model.CustomFields) (*Schema, error) {
	for _, field := range fields {
		if field.Name == "" {
			return nil, errdef.NewBadRequest("custom field with empty name")
		}
		if !field.Type.Valid() {
			return nil, errdef.NewBadRequest("custom field %q has unsupported type %q", field.Name, field.Type)
		}
	}

	return &Schema{fields: fields}, nil
}

// Validate checks a raw submission against the schema and normalizes the accepted answers into an
// attribute map. Problems are reported per field so the form can highlight the offending inputs.
// Keys the schema does not know are ignored, optional answers without content are dropped.
func (s *Schema) Validate(submission map[string]any) (model.AttributeMap, map[string]string) {
	attributes := model.AttributeMap{}
	problems := map[string]string{}

	for _, field := range s.fields {
		value, err := decode(field, submission[field.Name])
		if err != nil {
			problems[field.Name] = err.Error()
			continue
		}

		if value.IsZero() {
			if field.Required {
				problems[field.Name] = fmt.Sprintf("%s is required", field.Name)
			}
			continue
		}

		attributes[field.Name] = value
	}

	return attributes, problems
}

// decode normalizes one raw answer according to its field definition. Text, number and select
// answers travel as strings, checkbox answers as booleans. Select answers are only checked for
// presence, the form constrains the options client side.
func decode(field model.CustomField, raw any) (model.FieldValue, error) {
	if field.Type == model.FieldTypeCheckbox {
		switch value := raw.(type) {
		case nil:
			return model.FlagValue(false), nil
		case bool:
			return model.FlagValue(value), nil
		default:
			return model.FieldValue{}, fmt.Errorf("%s must be a boolean", field.Name)
		}
	}

	switch value := raw.(type) {
	case nil:
		return model.TextValue(""), nil
	case string:
		return model.TextValue(value), nil
	case float64:
		// older clients submit numbers as JSON numbers rather than strings
		return model.TextValue(strconv.FormatFloat(value, 'f', -1, 64)), nil
	default:
		return model.FieldValue{}, fmt.Errorf("%s must be a string", field.Name)
	}
}
