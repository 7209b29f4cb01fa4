// decoder/decoder.go
// Package decoder turns Jamf Pro Classic API response bodies into device records.
//
// XML bodies are walked token by token by a small state machine that collects the
// whitelisted fields of the record currently open and emits a record when the
// record's element closes. JSON bodies of the same three shapes are decoded through
// the same field whitelist, and DecodeRaw exposes a schema-less JSON view of a body.
//
// Decoding is best-effort by default: a malformed document yields the records
// completed before the fault and no error. Options.Strict turns such faults into
// a *DecodeError.
package decoder

import (
	"fmt"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/models"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/response"
)

// Kind selects the shape a body is decoded into.
type Kind int

const (
	KindComputers Kind = iota
	KindMobileDevices
	KindMobileDeviceDetail
)

func (k Kind) String() string {
	switch k {
	case KindComputers:
		return "computers"
	case KindMobileDevices:
		return "mobileDevices"
	case KindMobileDeviceDetail:
		return "mobileDeviceDetail"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Format is the wire format of a body.
type Format int

const (
	FormatXML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "xml"
}

// formatsByMIME maps response MIME types to the decode path. Anything unlisted is treated as XML,
// the Classic API default.
var formatsByMIME = map[string]Format{
	"application/json": FormatJSON,
	"application/xml":  FormatXML,
	"text/xml":         FormatXML,
}

// FormatForContentType picks the decode path from a Content-Type header value.
func FormatForContentType(contentType string) Format {
	mimeType, _ := response.ParseContentTypeHeader(contentType)
	if format, ok := formatsByMIME[mimeType]; ok {
		return format
	}
	return FormatXML
}

// Options tune decoding.
type Options struct {
	// Strict reports malformed documents as *DecodeError instead of returning the partial result.
	Strict bool
}

// Result is the tagged outcome of Decode. Only the field matching Kind is populated.
type Result struct {
	Kind          Kind
	Computers     []models.Computer
	MobileDevices []models.MobileDeviceSummary
	Detail        *models.MobileDeviceDetail
}

// Len returns the number of records in the result.
func (r Result) Len() int {
	switch r.Kind {
	case KindComputers:
		return len(r.Computers)
	case KindMobileDevices:
		return len(r.MobileDevices)
	default:
		if r.Detail != nil {
			return 1
		}
		return 0
	}
}

func newResult(kind Kind) Result {
	r := Result{Kind: kind}
	switch kind {
	case KindComputers:
		r.Computers = []models.Computer{}
	case KindMobileDevices:
		r.MobileDevices = []models.MobileDeviceSummary{}
	}
	return r
}

// DecodeError reports a body that could not be decoded.
type DecodeError struct {
	Kind   Kind
	Format Format
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("decode %s %s: %s", e.Format, e.Kind, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match apierrors.ErrDecode as well as the underlying parser error.
func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{apierrors.ErrDecode}
	}
	return []error{apierrors.ErrDecode, e.Err}
}

// Decoder decodes response bodies. It holds no per-document state and is safe for concurrent use.
type Decoder struct {
	opts Options
	log  logger.Logger
}

// New returns a Decoder with the given options.
func New(opts Options, log logger.Logger) *Decoder {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Decoder{opts: opts, log: log}
}

// Strict reports whether malformed documents are surfaced as errors.
func (d *Decoder) Strict() bool {
	return d.opts.Strict
}

// Decode decodes data of the given format into the shape selected by kind.
// On a *DecodeError the returned Result still holds the records completed before the fault.
func (d *Decoder) Decode(kind Kind, format Format, data []byte) (Result, error) {
	var (
		result Result
		fault  *DecodeError
	)
	switch format {
	case FormatJSON:
		result, fault = decodeJSON(kind, data)
	default:
		result, fault = decodeXML(kind, data)
	}

	if fault == nil && kind == KindMobileDeviceDetail && result.Detail == nil {
		fault = &DecodeError{Kind: kind, Format: format, Reason: "no general section in document"}
	}

	if fault != nil {
		d.log.LogDecode("decode", kind.String(), result.Len(), fault)
		if d.opts.Strict {
			return result, fault
		}
		return result, nil
	}

	d.log.LogDecode("decode", kind.String(), result.Len(), nil)
	return result, nil
}

// DecodeComputers decodes a computer list.
func (d *Decoder) DecodeComputers(format Format, data []byte) ([]models.Computer, error) {
	result, err := d.Decode(KindComputers, format, data)
	return result.Computers, err
}

// DecodeMobileDevices decodes a mobile device list.
func (d *Decoder) DecodeMobileDevices(format Format, data []byte) ([]models.MobileDeviceSummary, error) {
	result, err := d.Decode(KindMobileDevices, format, data)
	return result.MobileDevices, err
}

// DecodeMobileDeviceDetail decodes a single mobile device. The detail is nil when the
// document has no general section.
func (d *Decoder) DecodeMobileDeviceDetail(format Format, data []byte) (*models.MobileDeviceDetail, error) {
	result, err := d.Decode(KindMobileDeviceDetail, format, data)
	return result.Detail, err
}
