package gateway

import "github.com/volatiletech/null/v8"

// instanceData is the gateway's own instance record; only the fields the
// dashboard reads are kept.
type instanceData struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	Status      string `json:"status"` // connecting | connected | disconnected
	Paircode    string `json:"paircode"`
	QRCode      string `json:"qrcode"`
	Name        string `json:"name"`
	ProfileName string `json:"profileName"`
	Owner       string `json:"owner"`
}

type statusResponse struct {
	Instance instanceData `json:"instance"`
	Status   struct {
		Connected bool        `json:"connected"`
		JID       null.String `json:"jid"`
		LoggedIn  bool        `json:"loggedIn"`
	} `json:"status"`
}

type connectResponse struct {
	Connected bool         `json:"connected"`
	Instance  instanceData `json:"instance"`
	JID       null.String  `json:"jid"`
	LoggedIn  bool         `json:"loggedIn"`
}

// Status is the normalized instance state the dashboard renders: either
// connected, or connecting with a QR code to scan, or neither.
type Status struct {
	Connected  bool
	Connecting bool
	QRCode     string
	Paircode   string
	LoggedIn   bool
}

func (d instanceData) toStatus(connected, loggedIn bool) Status {
	return Status{
		Connected:  connected,
		Connecting: d.Status == "connecting",
		QRCode:     d.QRCode,
		Paircode:   d.Paircode,
		LoggedIn:   loggedIn,
	}
}
