package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Reconcile heals a persisted blob against defaults.
//
// Every section present in raw replaces the default section wholesale; absent
// or null sections keep the default. Fields are never merged one by one. The
// features and appFeatures sections additionally get their items backfilled
// from defaults when the persisted section has no items field at all.
//
// The result always carries every section of defaults. A section that cannot
// be decoded keeps its default and is reported in the returned error, which
// joins all such failures; the document is usable either way.
func Reconcile(defaults Document, raw []byte) (Document, error) {
	out := defaults.Clone()

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil
	}

	var persisted map[string]json.RawMessage
	if err := json.Unmarshal(raw, &persisted); err != nil {
		return out, fmt.Errorf("decoding content: %w", err)
	}

	present := func(key string) (json.RawMessage, bool) {
		v, ok := persisted[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return nil, false
		}
		return v, true
	}

	var errs []error
	for _, key := range ScalarSections {
		v, ok := present(string(key))
		if !ok {
			continue
		}
		var fields Fields
		if err := json.Unmarshal(v, &fields); err != nil {
			errs = append(errs, fmt.Errorf("section %s: %w", key, err))
			continue
		}
		if fields == nil {
			fields = Fields{}
		}
		out.Sections[key] = fields
	}

	if v, ok := present(string(SectionGallery)); ok {
		if err := json.Unmarshal(v, &out.Gallery); err != nil {
			out.Gallery = defaults.Gallery.clone()
			errs = append(errs, fmt.Errorf("section %s: %w", SectionGallery, err))
		}
	}
	if v, ok := present(string(SectionFeatures)); ok {
		if err := json.Unmarshal(v, &out.Features); err != nil {
			out.Features = defaults.Features.clone()
			errs = append(errs, fmt.Errorf("section %s: %w", SectionFeatures, err))
		} else if out.Features.Items == nil {
			out.Features.Items = slices.Clone(defaults.Features.Items)
		}
	}
	if v, ok := present(string(SectionAppFeatures)); ok {
		if err := json.Unmarshal(v, &out.AppFeatures); err != nil {
			out.AppFeatures = defaults.AppFeatures.clone()
			errs = append(errs, fmt.Errorf("section %s: %w", SectionAppFeatures, err))
		} else if out.AppFeatures.Items == nil {
			out.AppFeatures.Items = slices.Clone(defaults.AppFeatures.Items)
		}
	}

	if v, ok := present(sectionOrderKey); ok {
		var order []SectionKey
		if err := json.Unmarshal(v, &order); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sectionOrderKey, err))
		} else {
			out.SectionOrder = order
		}
	}

	return out, errors.Join(errs...)
}
