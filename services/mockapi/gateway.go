package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// gatewayAPI fakes the WhatsApp instance gateway. Connect flips the
// instance into "connecting" with a scannable QR code; the next status
// poll reports it connected, mimicking a scan.
type gatewayAPI struct{ data *dataset }

func registerGatewayAPI(g *echo.Group, ds *dataset) {
	api := &gatewayAPI{data: ds}
	g.GET("/status", api.status)
	g.POST("/connect", api.connect)
	g.POST("/disconnect", api.disconnect)
}

func (api *gatewayAPI) instance() map[string]interface{} {
	status := "disconnected"
	if api.data.gatewayConnected {
		status = "connected"
	} else if api.data.gatewayConnecting {
		status = "connecting"
	}
	return map[string]interface{}{
		"id":          "mock-instance",
		"token":       api.data.gatewayToken,
		"status":      status,
		"paircode":    "",
		"qrcode":      api.data.gatewayQRCode,
		"name":        "Escola Modelo",
		"profileName": "Eleve.ia",
		"owner":       "5511987654321",
	}
}

func (api *gatewayAPI) status(ctx echo.Context) error {
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	if api.data.gatewayConnecting {
		// the pretend phone scanned the code between polls
		api.data.gatewayConnecting = false
		api.data.gatewayConnected = true
		api.data.gatewayQRCode = ""
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"instance": api.instance(),
		"status": map[string]interface{}{
			"connected": api.data.gatewayConnected,
			"jid":       nil,
			"loggedIn":  api.data.gatewayConnected,
		},
	})
}

func (api *gatewayAPI) connect(ctx echo.Context) error {
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	if !api.data.gatewayConnected {
		api.data.gatewayConnecting = true
		api.data.gatewayQRCode = "data:image/png;base64,bW9jay1xcmNvZGU="
	}
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"connected": api.data.gatewayConnected,
		"instance":  api.instance(),
		"jid":       nil,
		"loggedIn":  api.data.gatewayConnected,
	})
}

func (api *gatewayAPI) disconnect(ctx echo.Context) error {
	api.data.mu.Lock()
	defer api.data.mu.Unlock()
	api.data.gatewayConnected = false
	api.data.gatewayConnecting = false
	api.data.gatewayQRCode = ""
	return ctx.JSON(http.StatusOK, map[string]interface{}{
		"connected": false,
		"instance":  api.instance(),
		"jid":       nil,
		"loggedIn":  false,
	})
}
