// decoder/decoder_test.go
package decoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/logger"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestDecoder(strict bool) *Decoder {
	return New(Options{Strict: strict}, logger.NewNopLogger())
}

func TestDecodeXML_SingleComputer(t *testing.T) {
	body := `<computers><computer><id>1</id><name>Mac1</name><model>MacBook</model><report_date_epoch>1690000000</report_date_epoch><managed>true</managed></computer></computers>`

	got, err := newTestDecoder(false).DecodeComputers(FormatXML, []byte(body))

	require.NoError(t, err)
	want := []models.Computer{{ID: "1", Name: "Mac1", Model: "MacBook", ReportDateEpoch: "1690000000", Managed: "true"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeComputers() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeXML_ComputersInDocumentOrder(t *testing.T) {
	const n = 25
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><computers><size>25</size>`)
	want := make([]models.Computer, 0, n)
	for i := n; i > 0; i-- {
		fmt.Fprintf(&b, `
  <computer>
    <id>%d</id>
    <name>host-%02d</name>
    <managed>%t</managed>
    <username>user%d</username>
    <model>Mac14,2</model>
    <department/>
    <report_date_epoch>16900000%02d000</report_date_epoch>
  </computer>`, i, i, i%2 == 0, i, i)
		want = append(want, models.Computer{
			ID:              fmt.Sprint(i),
			Name:            fmt.Sprintf("host-%02d", i),
			Model:           "Mac14,2",
			ReportDateEpoch: fmt.Sprintf("16900000%02d000", i),
			Managed:         fmt.Sprint(i%2 == 0),
		})
	}
	b.WriteString(`</computers>`)

	got, err := newTestDecoder(true).DecodeComputers(FormatXML, []byte(b.String()))

	require.NoError(t, err)
	require.Len(t, got, n)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeComputers() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeXML_MobileDevices(t *testing.T) {
	body := `<mobile_devices>
	<size>2</size>
	<mobile_device>
		<id>7</id><name>iPad Lager</name><device_name>iPad Lager</device_name>
		<udid>abc</udid><serial_number>DMPX1</serial_number>
		<managed>true</managed><supervised>true</supervised>
		<model>iPad Pro</model><model_identifier>iPad8,1</model_identifier>
		<username>lager</username>
	</mobile_device>
	<mobile_device>
		<id>8</id><name>iPhone Max</name>
		<managed>true</managed><supervised>false</supervised>
		<model>iPhone 15</model>
	</mobile_device>
</mobile_devices>`

	got, err := newTestDecoder(true).DecodeMobileDevices(FormatXML, []byte(body))

	require.NoError(t, err)
	want := []models.MobileDeviceSummary{
		{ID: "7", Name: "iPad Lager", Model: "iPad Pro", Username: "lager", Managed: "true", Supervised: "true"},
		{ID: "8", Name: "iPhone Max", Model: "iPhone 15", Managed: "true", Supervised: "false"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeMobileDevices() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, models.OwnershipCOBO, got[0].Ownership())
	assert.Equal(t, models.OwnershipBYOD, got[1].Ownership())
}

func TestDecodeXML_ScratchResetBetweenRecords(t *testing.T) {
	body := `<mobile_devices>
<mobile_device><id>1</id><name>A</name><username>alice</username></mobile_device>
<mobile_device><id>2</id><name>B</name></mobile_device>
</mobile_devices>`

	got, err := newTestDecoder(true).DecodeMobileDevices(FormatXML, []byte(body))

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "", got[1].Username, "fields of the previous record must not leak")
}

func TestDecodeXML_MobileDeviceDetail(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<mobile_device>
  <general>
    <id>5</id>
    <display_name>iPad Lager</display_name>
    <name>iPad Lager</name>
    <os_version>17.4</os_version>
    <os_build>21E219</os_build>
    <serial_number>DMPX1</serial_number>
    <phone_number></phone_number>
    <model>iPad Pro (11-inch)</model>
    <model_identifier>iPad8,1</model_identifier>
    <model_number>MTXN2LL</model_number>
  </general>
  <location>
    <username>lager</username>
  </location>
</mobile_device>`

	got, err := newTestDecoder(true).DecodeMobileDeviceDetail(FormatXML, []byte(body))

	require.NoError(t, err)
	want := &models.MobileDeviceDetail{
		ID:              "5",
		Name:            "iPad Lager",
		Model:           "iPad Pro (11-inch)",
		OSVersion:       "17.4",
		OSBuild:         "21E219",
		ModelIdentifier: "iPad8,1",
		ModelNumber:     "MTXN2LL",
		SerialNumber:    "DMPX1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeMobileDeviceDetail() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeXML_DetailLastGeneralWins(t *testing.T) {
	body := `<mobile_device><general><id>1</id><name>first</name></general><general><name>second</name></general></mobile_device>`

	got, err := newTestDecoder(true).DecodeMobileDeviceDetail(FormatXML, []byte(body))

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Name)
	assert.Equal(t, "1", got.ID, "scratch carries over until a record element resets it")
}

func TestDecodeXML_FieldsOfOtherShapesIgnored(t *testing.T) {
	body := `<computers><computer><id>1</id><name>Mac</name><os_version>14.5</os_version><serial_number>C02X</serial_number></computer></computers>`

	result, err := newTestDecoder(true).Decode(KindComputers, FormatXML, []byte(body))

	require.NoError(t, err)
	assert.Equal(t, KindComputers, result.Kind)
	assert.Nil(t, result.MobileDevices)
	assert.Nil(t, result.Detail)
	assert.Equal(t, []models.Computer{{ID: "1", Name: "Mac"}}, result.Computers)
}

func TestDecodeXML_KindSelectsOutput(t *testing.T) {
	body := `<mobile_devices><mobile_device><id>1</id><name>A</name></mobile_device></mobile_devices>`

	computers, err := newTestDecoder(true).DecodeComputers(FormatXML, []byte(body))

	require.NoError(t, err)
	assert.Empty(t, computers)
}

func TestDecodeXML_ChunkedCharacterDataIsConcatenated(t *testing.T) {
	body := `<computers><computer><id>4</id><name>Mac<![CDATA[Book]]> Pro &amp; Co</name><model>  MacBook
	</model></computer></computers>`

	got, err := newTestDecoder(true).DecodeComputers(FormatXML, []byte(body))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "MacBook Pro & Co", got[0].Name)
	assert.Equal(t, "MacBook", got[0].Model)
}

func TestDecodeXML_LastNonEmptyValueWins(t *testing.T) {
	body := `<computers><computer><name>first</name><name>second</name><name>   </name><name/></computer></computers>`

	got, err := newTestDecoder(true).DecodeComputers(FormatXML, []byte(body))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].Name)
}

func TestDecodeXML_ParentTextIsNotCaptured(t *testing.T) {
	body := `<computers><computer>stray<id>1</id>text<name>Mac</name></computer></computers>`

	got, err := newTestDecoder(true).DecodeComputers(FormatXML, []byte(body))

	require.NoError(t, err)
	assert.Equal(t, []models.Computer{{ID: "1", Name: "Mac"}}, got)
}

func TestDecodeXML_MixedContentKeepsLeadingText(t *testing.T) {
	body := `<computers><computer><id>1</id><name>Mac<b/>Book</name><model> MacBookPro18,1<x>ignored</x></model></computer></computers>`

	got, err := newTestDecoder(true).DecodeComputers(FormatXML, []byte(body))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "Mac", got[0].Name)
	assert.Equal(t, "MacBookPro18,1", got[0].Model)
}

func TestDecodeXML_EmptyList(t *testing.T) {
	for _, body := range []string{`<computers></computers>`, `<computers/>`, `<computers><size>0</size></computers>`, ``} {
		t.Run(body, func(t *testing.T) {
			got, err := newTestDecoder(true).DecodeComputers(FormatXML, []byte(body))
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestDecodeXML_NonUTF8Charset(t *testing.T) {
	body := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><computers><computer><id>1</id><name>M`), 0xFC) // ü
	body = append(body, []byte(`ller</name></computer></computers>`)...)

	got, err := newTestDecoder(true).DecodeComputers(FormatXML, body)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Müller", got[0].Name)
}

func TestDecodeXML_Idempotent(t *testing.T) {
	body := []byte(`<mobile_devices><mobile_device><id>2</id><name>B</name></mobile_device><mobile_device><id>1</id><name>A</name></mobile_device></mobile_devices>`)
	dec := newTestDecoder(false)

	first, err := dec.Decode(KindMobileDevices, FormatXML, body)
	require.NoError(t, err)
	second, err := dec.Decode(KindMobileDevices, FormatXML, body)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second decode differs (-first +second):\n%s", diff)
	}
}

func TestDecodeXML_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		body      string
		wantCount int
	}{
		{"never closed record", KindComputers, `<computers><computer><id>1</id><name>Mac`, 0},
		{"second record truncated", KindComputers, `<computers><computer><id>1</id><name>Mac</name></computer><computer><id>2`, 1},
		{"mismatched tags", KindMobileDevices, `<mobile_devices><mobile_device><id>1</name></mobile_device></mobile_devices>`, 0},
		{"detail truncated", KindMobileDeviceDetail, `<mobile_device><general><id>1</id>`, 0},
		{"not xml", KindComputers, `{"computers":[]}<`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/best-effort", func(t *testing.T) {
			result, err := newTestDecoder(false).Decode(tt.kind, FormatXML, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, result.Len())
		})
		t.Run(tt.name+"/strict", func(t *testing.T) {
			result, err := newTestDecoder(true).Decode(tt.kind, FormatXML, []byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, apierrors.ErrDecode)
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tt.kind, decodeErr.Kind)
			assert.Equal(t, tt.wantCount, result.Len(), "partial result is still returned")
		})
	}
}

func TestDecodeXML_DetailWithoutGeneral(t *testing.T) {
	body := []byte(`<mobile_device><location><username>x</username></location></mobile_device>`)

	detail, err := newTestDecoder(false).DecodeMobileDeviceDetail(FormatXML, body)
	assert.NoError(t, err)
	assert.Nil(t, detail)

	detail, err = newTestDecoder(true).DecodeMobileDeviceDetail(FormatXML, body)
	assert.ErrorIs(t, err, apierrors.ErrDecode)
	assert.Nil(t, detail)
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		body string
		want Result
	}{
		{
			name: "computers object",
			kind: KindComputers,
			body: `{"computers":[{"id":1,"name":"Mac1","model":"MacBook","report_date_epoch":1690000000000,"managed":true,"udid":"x"}]}`,
			want: Result{Kind: KindComputers, Computers: []models.Computer{
				{ID: "1", Name: "Mac1", Model: "MacBook", ReportDateEpoch: "1690000000000", Managed: "true"},
			}},
		},
		{
			name: "computers bare array",
			kind: KindComputers,
			body: `[{"id":"2","name":" Mac2 ","managed":false},{"id":3,"name":null}]`,
			want: Result{Kind: KindComputers, Computers: []models.Computer{
				{ID: "2", Name: "Mac2", Managed: "false"},
				{ID: "3"},
			}},
		},
		{
			name: "empty computers",
			kind: KindComputers,
			body: `{"computers":[]}`,
			want: Result{Kind: KindComputers, Computers: []models.Computer{}},
		},
		{
			name: "empty bare array",
			kind: KindMobileDevices,
			body: `[]`,
			want: Result{Kind: KindMobileDevices, MobileDevices: []models.MobileDeviceSummary{}},
		},
		{
			name: "mobile devices",
			kind: KindMobileDevices,
			body: `{"mobile_devices":[{"id":7,"name":"iPad","username":"lager","managed":true,"supervised":false,"model":"iPad Pro","location":{"username":"other"}}]}`,
			want: Result{Kind: KindMobileDevices, MobileDevices: []models.MobileDeviceSummary{
				{ID: "7", Name: "iPad", Model: "iPad Pro", Username: "lager", Managed: "true", Supervised: "false"},
			}},
		},
		{
			name: "detail",
			kind: KindMobileDeviceDetail,
			body: `{"mobile_device":{"general":{"id":5,"name":"iPad","os_version":"17.4","os_build":"21E219","serial_number":"DMPX1","model_number":"MTXN2LL"}}}`,
			want: Result{Kind: KindMobileDeviceDetail, Detail: &models.MobileDeviceDetail{
				ID: "5", Name: "iPad", OSVersion: "17.4", OSBuild: "21E219", SerialNumber: "DMPX1", ModelNumber: "MTXN2LL",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestDecoder(true).Decode(tt.kind, FormatJSON, []byte(tt.body))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		body string
	}{
		{"truncated", KindComputers, `{"computers":[{"id":1`},
		{"wrong key", KindComputers, `{"mobile_devices":[]}`},
		{"trailing data", KindMobileDevices, `[] []`},
		{"detail without general", KindMobileDeviceDetail, `{"mobile_device":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newTestDecoder(false).Decode(tt.kind, FormatJSON, []byte(tt.body))
			assert.NoError(t, err)
			assert.Equal(t, 0, result.Len())

			_, err = newTestDecoder(true).Decode(tt.kind, FormatJSON, []byte(tt.body))
			assert.ErrorIs(t, err, apierrors.ErrDecode)
		})
	}
}

func TestDecodeRaw(t *testing.T) {
	dec := newTestDecoder(false)

	got, err := dec.DecodeRaw([]byte(`{"mobile_device":{"general":{"id":5,"battery_level":87.5,"managed":true,"name":"iPad"}}}`))

	require.NoError(t, err)
	general := got["mobile_device"].(map[string]any)["general"].(map[string]any)
	assert.Equal(t, json.Number("5"), general["id"])
	assert.Equal(t, json.Number("87.5"), general["battery_level"])
	assert.Equal(t, true, general["managed"])
	assert.Equal(t, "iPad", general["name"])
}

func TestDecodeRaw_Errors(t *testing.T) {
	for _, body := range []string{``, `{"a":`, `[1,2]`, `"text"`, `{} {}`, `<mobile_device/>`} {
		t.Run(body, func(t *testing.T) {
			got, err := newTestDecoder(false).DecodeRaw([]byte(body))
			assert.Nil(t, got)
			assert.ErrorIs(t, err, apierrors.ErrDecode)
		})
	}
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &DecodeError{Kind: KindComputers, Format: FormatXML, Reason: "malformed document", Err: cause}

	assert.Equal(t, "decode xml computers: malformed document: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, apierrors.ErrDecode)
}

func TestFormatForContentType(t *testing.T) {
	tests := map[string]Format{
		"application/json":               FormatJSON,
		"application/json;charset=UTF-8": FormatJSON,
		"application/xml":                FormatXML,
		"text/xml; charset=utf-8":        FormatXML,
		"text/html":                      FormatXML,
		"":                               FormatXML,
	}
	for contentType, want := range tests {
		assert.Equal(t, want, FormatForContentType(contentType), contentType)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "computers", KindComputers.String())
	assert.Equal(t, "mobileDevices", KindMobileDevices.String())
	assert.Equal(t, "mobileDeviceDetail", KindMobileDeviceDetail.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestDecode_LogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dec := New(Options{}, logger.NewLogger(zap.New(core), logger.LogLevelDebug))

	_, err := dec.Decode(KindComputers, FormatXML, []byte(`<computers><computer><id>1</id></computer></computers>`))
	require.NoError(t, err)
	_, err = dec.Decode(KindComputers, FormatXML, []byte(`<computers><computer>`))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, int64(1), entries[0].ContextMap()["records"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
