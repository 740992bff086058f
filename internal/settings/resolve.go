package settings

// Defaults returns a Values record holding the default of every field.
// Multicheck fields get a sub-mapping covering every option.
func (s *Schema) Defaults() Values {
	out := make(Values, len(s.fields))
	for _, f := range s.fields {
		out[f.Key] = defaultFor(f)
	}
	return out
}

// defaultFor computes the default value of a single field.
func defaultFor(f Field) any {
	switch f.Type {
	case TypeMulticheck:
		def, _ := f.Default.(bool)
		m := make(map[string]bool, len(f.Options))
		for _, o := range f.Options {
			m[o.Key] = def
		}
		return m
	case TypeCheckbox:
		b, _ := f.Default.(bool)
		return b
	case TypeNumber:
		if f.Default == nil {
			return float64(0)
		}
		return toFloat(f.Default)
	}
	if f.Default == nil {
		return ""
	}
	if str, ok := toString(f.Default); ok {
		return str
	}
	return ""
}

// Resolve merges a persisted record onto the schema defaults. Persisted
// values win key by key; multicheck sub-mappings are merged per sub-key so
// options missing from storage keep their default. Values of the wrong
// shape fall back to the default. Bookkeeping keys are carried over.
func (s *Schema) Resolve(persisted Values) Values {
	out := s.Defaults()
	for _, f := range s.fields {
		raw, ok := persisted[f.Key]
		if !ok || raw == nil {
			continue
		}
		if v, ok := coercePersisted(f, raw, out[f.Key]); ok {
			out[f.Key] = v
		}
	}
	if status, ok := persisted[LicenseStatusKey].(string); ok {
		out[LicenseStatusKey] = status
	}
	return out
}

// coercePersisted converts a stored value into the field's Go type. The
// stored blob comes from JSON, so numbers are float64 and multicheck maps
// arrive as map[string]any.
func coercePersisted(f Field, raw, def any) (any, bool) {
	switch f.Type {
	case TypeMulticheck:
		sub := subValues(raw)
		if sub == nil {
			return nil, false
		}
		merged := make(map[string]bool, len(f.Options))
		for k, v := range def.(map[string]bool) {
			merged[k] = v
		}
		for _, o := range f.Options {
			if v, ok := sub[o.Key]; ok {
				if b, isBool := v.(bool); isBool {
					merged[o.Key] = b
				} else {
					merged[o.Key] = truthy(v)
				}
			}
		}
		return merged, true
	case TypeCheckbox:
		if b, ok := raw.(bool); ok {
			return b, true
		}
		return truthy(raw), true
	case TypeNumber:
		return toFloat(raw), true
	case TypeRadio, TypeSelect:
		str, ok := raw.(string)
		if !ok || !f.HasOption(str) {
			return nil, false
		}
		return str, true
	}
	str, ok := toString(raw)
	if !ok {
		return nil, false
	}
	return str, true
}
