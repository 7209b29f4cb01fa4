// decoder/xml.go
package decoder

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// state of the XML machine.
type state int

const (
	stateIdle      state = iota // no computer or mobile_device element open
	stateRecording              // inside a computer or mobile_device element
)

// machine is the pull-based XML state machine. It is fed one token at a time by decodeXML.
type machine struct {
	kind   Kind
	state  state
	open   string          // name of the innermost open element, "" once it closed or a child closed
	text   strings.Builder // character data of open, concatenated across chunks
	fields record
	result Result
}

func newMachine(kind Kind) *machine {
	return &machine{
		kind:   kind,
		fields: record{},
		result: newResult(kind),
	}
}

// step advances the machine by one token.
func (m *machine) step(tok xml.Token) {
	switch t := tok.(type) {
	case xml.StartElement:
		m.start(t.Name.Local)
	case xml.CharData:
		if m.open != "" {
			m.text.Write(t)
		}
	case xml.EndElement:
		m.end(t.Name.Local)
	}
}

func (m *machine) start(name string) {
	// A child element ends the parent's text; what was read so far is kept.
	if m.open != "" {
		m.fields.set(m.open, strings.TrimSpace(m.text.String()))
	}
	if name == elementComputer || name == elementMobileDevice {
		m.fields.reset()
		m.state = stateRecording
	}
	m.open = name
	m.text.Reset()
}

func (m *machine) end(name string) {
	if name == m.open {
		m.fields.set(name, strings.TrimSpace(m.text.String()))
	}
	m.open = ""
	m.text.Reset()

	switch name {
	case elementComputer:
		if m.kind == KindComputers && m.state == stateRecording {
			m.result.Computers = append(m.result.Computers, m.fields.computer())
		}
		m.state = stateIdle
	case elementMobileDevice:
		if m.kind == KindMobileDevices && m.state == stateRecording {
			m.result.MobileDevices = append(m.result.MobileDevices, m.fields.mobileDevice())
		}
		m.state = stateIdle
	case elementGeneral:
		if m.kind == KindMobileDeviceDetail {
			m.result.Detail = m.fields.mobileDeviceDetail()
		}
	}
}

// decodeXML runs the machine over data until the end of the document or the first syntax error.
func decodeXML(kind Kind, data []byte) (Result, *DecodeError) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	m := newMachine(kind)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return m.result, nil
		}
		if err != nil {
			return m.result, &DecodeError{Kind: kind, Format: FormatXML, Reason: "malformed document", Err: err}
		}
		m.step(tok)
	}
}
