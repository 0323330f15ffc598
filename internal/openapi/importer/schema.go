package importer

import (
	"math"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/reader"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

// convertProperty maps one property to a field and its constraint records.
// Unsupported property types are skipped.
func (im *Importer) convertProperty(name string, s *openapi3.Schema, required bool) (profile.Field, []profile.Record, bool) {
	var (
		field   = profile.Field{Name: name}
		records []profile.Record
	)

	switch typ := schemaType(s.Type); typ {
	case "integer":
		field.Type = profile.FieldTypeNumeric
		records = append(records, record(name, reader.CodeOfType, reader.TypeInteger))
	case "number":
		field.Type = profile.FieldTypeNumeric
		records = append(records, record(name, reader.CodeOfType, reader.TypeDecimal))
	case "string":
		if s.Format == "date-time" {
			field.Type = profile.FieldTypeDateTime
			records = append(records, record(name, reader.CodeOfType, reader.TypeDateTime))
		} else {
			field.Type = profile.FieldTypeString
			records = append(records, record(name, reader.CodeOfType, reader.TypeString))
		}
	case "boolean":
		field.Type = profile.FieldTypeBoolean
		records = append(records, record(name, reader.CodeOfType, reader.TypeBoolean))
	default:
		im.logger.Debug().Str("property", name).Str("type", typ).Msg("skipping unsupported property type")
		return profile.Field{}, nil, false
	}

	if required && im.options.RequiredMeansNotNull {
		inner := record(name, reader.CodeNull, nil)
		records = append(records, profile.Record{Not: &inner})
	}

	switch field.Type {
	case profile.FieldTypeNumeric:
		records = append(records, im.numericRecords(name, s)...)
	case profile.FieldTypeString:
		records = append(records, im.stringRecords(name, s)...)
	}

	if len(s.Enum) > 0 {
		if field.Type == profile.FieldTypeDateTime {
			im.logger.Debug().Str("property", name).Msg("skipping enum on date-time property")
		} else {
			values := make([]any, 0, len(s.Enum))
			for _, v := range s.Enum {
				if v != nil {
					values = append(values, v)
				}
			}
			if len(values) > 0 {
				records = append(records, profile.Record{Field: name, Is: reader.CodeInSet, Values: values})
			}
		}
	}
	return field, records, true
}

func (im *Importer) numericRecords(name string, s *openapi3.Schema) []profile.Record {
	var out []profile.Record
	if s.Min != nil {
		code := reader.CodeGreaterThanOrEqualTo
		if s.ExclusiveMin {
			code = reader.CodeGreaterThan
		}
		out = append(out, record(name, code, *s.Min))
	}
	if s.Max != nil {
		code := reader.CodeLessThanOrEqualTo
		if s.ExclusiveMax {
			code = reader.CodeLessThan
		}
		out = append(out, record(name, code, *s.Max))
	}
	if s.MultipleOf != nil {
		if step, ok := restrictions.AsDecimal(*s.MultipleOf); ok && scaleOK(step) {
			out = append(out, record(name, reader.CodeGranularTo, *s.MultipleOf))
		} else {
			im.logger.Debug().Str("property", name).Float64("multipleOf", *s.MultipleOf).
				Msg("skipping multipleOf that is not a power of ten")
		}
	}
	return out
}

func (im *Importer) stringRecords(name string, s *openapi3.Schema) []profile.Record {
	var out []profile.Record
	if s.MinLength > 0 && s.MinLength <= restrictions.MaxLengthOperand {
		out = append(out, record(name, reader.CodeLongerThan, int64(s.MinLength)-1))
	}
	if s.MaxLength != nil {
		if *s.MaxLength < math.MaxInt32 {
			out = append(out, record(name, reader.CodeShorterThan, int64(*s.MaxLength)+1))
		} else {
			im.logger.Debug().Str("property", name).Msg("skipping maxLength beyond supported range")
		}
	}
	if strings.TrimSpace(s.Pattern) != "" {
		// JSON Schema patterns are unanchored
		out = append(out, record(name, reader.CodeContainingRegex, s.Pattern))
	}
	switch strings.ToLower(s.Format) {
	case "isin", "sedol", "cusip", "ric":
		out = append(out, record(name, reader.CodeAValid, strings.ToUpper(s.Format)))
	}
	return out
}

func record(field, code string, value any) profile.Record {
	return profile.Record{Field: field, Is: code, Value: value}
}

func scaleOK(step decimal.Decimal) bool {
	_, ok := restrictions.ScaleOf(step)
	return ok
}
