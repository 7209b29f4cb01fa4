// httpclient/commands.go
package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/deploymenttheory/go-jamfpro-mdm-client/apierrors"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/apiintegrations/jamfpro"
	"github.com/deploymenttheory/go-jamfpro-mdm-client/models"
)

const opSendCommand = "SendCommand"

// SendCommand issues the management command name (e.g. jamfpro.CommandRestartDevice) to the
// mobile device id. Failures are folded into the result; the server accepts a command with 201.
func (c *Client) SendCommand(id string, name string) models.CommandResult {
	statusCode, err := c.sendCommand(id, name)
	result := commandResult(name, err)
	c.Logger.LogCommand("device_command", id, name, statusCode, result.Success)
	return result
}

func (c *Client) sendCommand(id string, name string) (int, error) {
	path, pathErr := jamfpro.MobileDeviceCommandPath(name, id)
	resp, _, err := c.doRequest(request{
		op:             opSendCommand,
		method:         http.MethodPost,
		path:           path,
		pathErr:        pathErr,
		accept:         jamfpro.AcceptXML,
		expectedStatus: http.StatusCreated,
		failureKind:    apierrors.ErrCommandFailed,
	})
	if resp == nil {
		return 0, err
	}
	return resp.StatusCode, err
}

// commandResult renders the outcome of a command for the operator.
func commandResult(name string, err error) models.CommandResult {
	if err == nil {
		return models.CommandResult{Success: true, Message: fmt.Sprintf("%s wurde durchgeführt", name)}
	}

	var opErr *apierrors.OperationError
	if errors.Is(err, apierrors.ErrTransport) && errors.As(err, &opErr) && opErr.Err != nil {
		return models.CommandResult{Message: fmt.Sprintf("Error %s device: %v", name, opErr.Err)}
	}

	return models.CommandResult{Message: apierrors.UserMessage(err)}
}
