package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/NeurArk/mcp-data-assistant/pkg/models/domain"
)

// ParsePayload decodes a raw JSON report payload into the domain
// payload union, classifying the shape exactly once: an object with a
// "sections" key is structured, everything else is flat. JSON object
// key order is preserved so that flat reports render fields in the
// order the caller wrote them.
func ParsePayload(raw []byte) (domain.Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	value, err := decodeOrdered(dec)
	if err != nil {
		return domain.Payload{}, fmt.Errorf("failed to parse payload: %w", err)
	}

	switch v := value.(type) {
	case domain.Fields:
		if v.Has("sections") {
			structured, err := mapStructured(v)
			if err != nil {
				return domain.Payload{}, err
			}
			return domain.Payload{Kind: domain.PayloadStructured, Structured: structured}, nil
		}
		return domain.Payload{Kind: domain.PayloadFlat, Flat: v}, nil
	case []any:
		// Bare lists become indexed keys so they still render as a table.
		fields := make(domain.Fields, 0, len(v))
		for i, item := range v {
			fields = append(fields, domain.Field{Key: fmt.Sprintf("item_%d", i+1), Value: item})
		}
		return domain.Payload{Kind: domain.PayloadFlat, Flat: fields}, nil
	default:
		return domain.Payload{}, fmt.Errorf("unsupported payload type %T", value)
	}
}

// FlatPayload wraps an ordered field list as a flat payload.
func FlatPayload(fields domain.Fields) domain.Payload {
	return domain.Payload{Kind: domain.PayloadFlat, Flat: fields}
}

func mapStructured(fields domain.Fields) (*domain.StructuredPayload, error) {
	out := &domain.StructuredPayload{
		Title:   stringValue(fields, "title"),
		Summary: stringValue(fields, "summary"),
	}

	if v, ok := fields.Get("insights"); ok {
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("insights must be a list, got %T", v)
		}
		for _, item := range items {
			out.Insights = append(out.Insights, stringify(item))
		}
	}

	if v, ok := fields.Get("cover"); ok {
		if cover, ok := v.(domain.Fields); ok {
			out.Cover = &domain.Cover{LogoPath: stringValue(cover, "logo_path")}
		}
	}

	sectionsVal, _ := fields.Get("sections")
	sections, ok := sectionsVal.([]any)
	if !ok && sectionsVal != nil {
		return nil, fmt.Errorf("sections must be a list, got %T", sectionsVal)
	}
	for i, raw := range sections {
		secFields, ok := raw.(domain.Fields)
		if !ok {
			return nil, fmt.Errorf("section %d must be an object, got %T", i, raw)
		}
		section, err := mapSection(secFields)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		out.Sections = append(out.Sections, section)
	}

	return out, nil
}

func mapSection(fields domain.Fields) (domain.Section, error) {
	section := domain.Section{
		Title: stringValue(fields, "title"),
		Type:  stringValue(fields, "type"),
		Text:  stringValue(fields, "text"),
	}
	if data, ok := fields.Get("data"); ok {
		section.Data = data
	}

	spec, ok := fields.Get("chart_spec")
	if !ok {
		return section, nil
	}
	switch v := spec.(type) {
	case domain.Fields:
		cs, err := mapChartSpec(v)
		if err != nil {
			return section, err
		}
		section.Charts = []domain.ChartSpec{cs}
	case []any:
		for i, item := range v {
			specFields, ok := item.(domain.Fields)
			if !ok {
				return section, fmt.Errorf("chart_spec %d must be an object, got %T", i, item)
			}
			cs, err := mapChartSpec(specFields)
			if err != nil {
				return section, fmt.Errorf("chart_spec %d: %w", i, err)
			}
			section.Charts = append(section.Charts, cs)
		}
	default:
		return section, fmt.Errorf("chart_spec must be an object or list, got %T", spec)
	}
	return section, nil
}

func mapChartSpec(fields domain.Fields) (domain.ChartSpec, error) {
	spec := domain.ChartSpec{
		Type:   stringValue(fields, "chart_type"),
		Color:  stringValue(fields, "color"),
		Width:  intValue(fields, "width"),
		Height: intValue(fields, "height"),
	}

	if v, ok := fields.Get("labels"); ok {
		items, ok := v.([]any)
		if !ok {
			return spec, fmt.Errorf("labels must be a list, got %T", v)
		}
		for _, item := range items {
			spec.Labels = append(spec.Labels, stringify(item))
		}
	}
	if v, ok := fields.Get("values"); ok {
		items, ok := v.([]any)
		if !ok {
			return spec, fmt.Errorf("values must be a list, got %T", v)
		}
		for i, item := range items {
			n, ok := item.(float64)
			if !ok {
				return spec, fmt.Errorf("value %d must be a number, got %T", i, item)
			}
			spec.Values = append(spec.Values, n)
		}
	}
	return spec, nil
}

// decodeOrdered walks the decoder token stream, producing
// domain.Fields for objects (preserving key order), []any for arrays
// and plain Go values for scalars.
func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		// string, float64, bool or nil
		return tok, nil
	}

	switch delim {
	case '{':
		var fields domain.Fields
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key token %v", keyTok)
			}
			value, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			fields = append(fields, domain.Field{Key: key, Value: value})
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, err
		}
		return fields, nil
	case '[':
		items := []any{}
		for dec.More() {
			value, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		if _, err := dec.Token(); err != nil { // consume ']'
			return nil, err
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

func stringValue(fields domain.Fields, key string) string {
	v, ok := fields.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return stringify(v)
}

func intValue(fields domain.Fields, key string) int {
	v, ok := fields.Get(key)
	if !ok {
		return 0
	}
	if n, ok := v.(float64); ok {
		return int(n)
	}
	return 0
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
