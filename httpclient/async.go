// httpclient/async.go
package httpclient

import (
	"github.com/deploymenttheory/go-jamfpro-mdm-client/authenticationhandler"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/models"
)

// Result is the single value delivered by an asynchronous operation.
type Result[T any] struct {
	Value T
	Err   error
}

// runAsync runs fn on its own goroutine. The returned channel receives exactly one Result and is then closed.
func runAsync[T any](fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		value, err := fn()
		ch <- Result[T]{Value: value, Err: err}
	}()
	return ch
}

// AuthenticateAsync runs Authenticate in the background.
func (c *Client) AuthenticateAsync() <-chan Result[authenticationhandler.Token] {
	return runAsync(c.Authenticate)
}

// LogoutAsync runs Logout in the background.
func (c *Client) LogoutAsync() <-chan Result[struct{}] {
	return runAsync(func() (struct{}, error) {
		return struct{}{}, c.Logout()
	})
}

// ListComputersAsync runs ListComputers in the background.
func (c *Client) ListComputersAsync() <-chan Result[[]models.Computer] {
	return runAsync(c.ListComputers)
}

// ListMobileDevicesAsync runs ListMobileDevices in the background.
func (c *Client) ListMobileDevicesAsync() <-chan Result[[]models.MobileDeviceSummary] {
	return runAsync(c.ListMobileDevices)
}

// GetMobileDeviceDetailAsync runs GetMobileDeviceDetail in the background.
func (c *Client) GetMobileDeviceDetailAsync(id string) <-chan Result[*models.MobileDeviceDetail] {
	return runAsync(func() (*models.MobileDeviceDetail, error) {
		return c.GetMobileDeviceDetail(id)
	})
}

// GetMobileDeviceDetailRawAsync runs GetMobileDeviceDetailRaw in the background.
func (c *Client) GetMobileDeviceDetailRawAsync(id string) <-chan Result[map[string]any] {
	return runAsync(func() (map[string]any, error) {
		return c.GetMobileDeviceDetailRaw(id)
	})
}

// SendCommandAsync runs SendCommand in the background. Err is always nil; failures are reported in Value.
func (c *Client) SendCommandAsync(id string, name string) <-chan Result[models.CommandResult] {
	return runAsync(func() (models.CommandResult, error) {
		return c.SendCommand(id, name), nil
	})
}
