// decoder/json.go
package decoder

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// decodeJSON decodes the Classic API JSON shapes:
//
//	{"computers": [...]}                   or a bare array, for KindComputers
//	{"mobile_devices": [...]}              or a bare array, for KindMobileDevices
//	{"mobile_device": {"general": {...}}}  for KindMobileDeviceDetail
func decodeJSON(kind Kind, data []byte) (Result, *DecodeError) {
	result := newResult(kind)

	doc, err := parseJSON(data)
	if err != nil {
		return result, &DecodeError{Kind: kind, Format: FormatJSON, Reason: "malformed document", Err: err}
	}

	switch kind {
	case KindComputers:
		items, ok := listOf(doc, keyComputers)
		if !ok {
			return result, &DecodeError{Kind: kind, Format: FormatJSON, Reason: "no computers list in document"}
		}
		for _, item := range items {
			result.Computers = append(result.Computers, recordOf(item).computer())
		}
	case KindMobileDevices:
		items, ok := listOf(doc, keyMobileDevices)
		if !ok {
			return result, &DecodeError{Kind: kind, Format: FormatJSON, Reason: "no mobile_devices list in document"}
		}
		for _, item := range items {
			result.MobileDevices = append(result.MobileDevices, recordOf(item).mobileDevice())
		}
	case KindMobileDeviceDetail:
		root, _ := doc.(map[string]any)
		device, _ := root[keyMobileDevice].(map[string]any)
		if general, ok := device[elementGeneral].(map[string]any); ok {
			result.Detail = recordOf(general).mobileDeviceDetail()
		}
	}
	return result, nil
}

// DecodeRaw parses a JSON object into a generic mapping. Numbers are kept as json.Number.
// Invalid JSON and non-object documents are always reported, whatever Options.Strict says.
func (d *Decoder) DecodeRaw(data []byte) (map[string]any, error) {
	doc, err := parseJSON(data)
	if err != nil {
		derr := &DecodeError{Kind: KindMobileDeviceDetail, Format: FormatJSON, Reason: "malformed document", Err: err}
		d.log.LogDecode("decode_raw", KindMobileDeviceDetail.String(), 0, derr)
		return nil, derr
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		derr := &DecodeError{Kind: KindMobileDeviceDetail, Format: FormatJSON, Reason: "document is not a JSON object"}
		d.log.LogDecode("decode_raw", KindMobileDeviceDetail.String(), 0, derr)
		return nil, derr
	}

	d.log.LogDecode("decode_raw", KindMobileDeviceDetail.String(), len(obj), nil)
	return obj, nil
}

// parseJSON decodes exactly one JSON value and rejects trailing data.
func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing data after JSON value")
		}
		return nil, err
	}
	return doc, nil
}

// listOf returns the records of a list document: either a bare array or the array under key.
func listOf(doc any, key string) ([]any, bool) {
	switch v := doc.(type) {
	case []any:
		return v, true
	case map[string]any:
		items, ok := v[key].([]any)
		return items, ok
	}
	return nil, false
}

// recordOf copies the whitelisted scalar members of a JSON object into a scratch record.
func recordOf(item any) record {
	r := record{}
	obj, ok := item.(map[string]any)
	if !ok {
		return r
	}
	for key, value := range obj {
		r.set(key, scalarString(value))
	}
	return r
}

// scalarString renders a JSON scalar the way the XML path sees it. Objects, arrays and null become "".
func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}
