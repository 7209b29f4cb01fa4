// httpclient/devices.go
package httpclient

import (
	"net/http"
	"slices"
	"strings"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/apiintegrations/jamfpro"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/decoder"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/models"
)

const (
	opListComputers            = "ListComputers"
	opListMobileDevices        = "ListMobileDevices"
	opGetMobileDeviceDetail    = "GetMobileDeviceDetail"
	opGetMobileDeviceDetailRaw = "GetMobileDeviceDetailRaw"
)

// ListComputers fetches the computer inventory, sorts it by name and replaces the stored list.
// On any failure the stored list is left as it was.
func (c *Client) ListComputers() ([]models.Computer, error) {
	resp, body, err := c.doRequest(request{
		op:             opListComputers,
		method:         http.MethodGet,
		path:           jamfpro.ComputersEndpoint,
		accept:         c.apiHandler.GetAcceptHeader(jamfpro.ComputersEndpoint),
		expectedStatus: http.StatusOK,
		failureKind:    apierrors.ErrUnexpectedStatus,
	})
	if err != nil {
		return nil, err
	}

	computers, err := c.decoder.DecodeComputers(formatOf(resp), body)
	if err != nil {
		return nil, decodeFailure(opListComputers, resp, err)
	}

	sortByName(computers, func(computer models.Computer) string { return computer.Name })
	c.Store.SetComputers(computers)
	return computers, nil
}

// ListMobileDevices fetches the mobile device inventory, sorts it by name and replaces the stored list.
// On any failure the stored list is left as it was.
func (c *Client) ListMobileDevices() ([]models.MobileDeviceSummary, error) {
	resp, body, err := c.doRequest(request{
		op:             opListMobileDevices,
		method:         http.MethodGet,
		path:           jamfpro.MobileDevicesEndpoint,
		accept:         c.apiHandler.GetAcceptHeader(jamfpro.MobileDevicesEndpoint),
		expectedStatus: http.StatusOK,
		failureKind:    apierrors.ErrUnexpectedStatus,
	})
	if err != nil {
		return nil, err
	}

	devices, err := c.decoder.DecodeMobileDevices(formatOf(resp), body)
	if err != nil {
		return nil, decodeFailure(opListMobileDevices, resp, err)
	}

	sortByName(devices, func(device models.MobileDeviceSummary) string { return device.Name })
	c.Store.SetMobileDevices(devices)
	return devices, nil
}

// GetMobileDeviceDetail fetches one mobile device. The stored detail is replaced only when the
// response held one; a document without a general section yields nil and leaves the store alone.
func (c *Client) GetMobileDeviceDetail(id string) (*models.MobileDeviceDetail, error) {
	path, pathErr := jamfpro.MobileDeviceEndpoint(id)
	resp, body, err := c.doRequest(request{
		op:             opGetMobileDeviceDetail,
		method:         http.MethodGet,
		path:           path,
		pathErr:        pathErr,
		accept:         jamfpro.AcceptXML,
		expectedStatus: http.StatusOK,
		failureKind:    apierrors.ErrUnexpectedStatus,
	})
	if err != nil {
		return nil, err
	}

	detail, err := c.decoder.DecodeMobileDeviceDetail(formatOf(resp), body)
	if err != nil {
		return nil, decodeFailure(opGetMobileDeviceDetail, resp, err)
	}

	if detail != nil {
		c.Store.SetMobileDeviceDetail(*detail)
	}
	return detail, nil
}

// GetMobileDeviceDetailRaw fetches one mobile device as JSON and keeps it as a generic mapping.
func (c *Client) GetMobileDeviceDetailRaw(id string) (map[string]any, error) {
	path, pathErr := jamfpro.MobileDeviceEndpoint(id)
	resp, body, err := c.doRequest(request{
		op:             opGetMobileDeviceDetailRaw,
		method:         http.MethodGet,
		path:           path,
		pathErr:        pathErr,
		accept:         c.apiHandler.GetAcceptHeaderFor(path, true),
		expectedStatus: http.StatusOK,
		failureKind:    apierrors.ErrUnexpectedStatus,
	})
	if err != nil {
		return nil, err
	}

	raw, err := c.decoder.DecodeRaw(body)
	if err != nil {
		return nil, decodeFailure(opGetMobileDeviceDetailRaw, resp, err)
	}

	c.Store.SetMobileDeviceDetailRaw(raw)
	return raw, nil
}

// formatOf picks the decode path from the response Content-Type.
func formatOf(resp *http.Response) decoder.Format {
	return decoder.FormatForContentType(resp.Header.Get("Content-Type"))
}

func decodeFailure(op string, resp *http.Response, err error) error {
	return apierrors.New(op, apierrors.ErrDecode, err).WithURL(requestURL(resp)).WithStatus(resp.StatusCode)
}

// sortByName orders records by name, byte-wise ascending. Equal names keep their document order.
func sortByName[T any](records []T, name func(T) string) {
	slices.SortStableFunc(records, func(a, b T) int {
		return strings.Compare(name(a), name(b))
	})
}
