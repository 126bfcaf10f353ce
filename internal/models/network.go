package models

// NetworkParameters is a validated access-point configuration, consumed once
// by the bring-up sequence. Values come out of wifi.Validate; anything built
// by hand bypasses the length and channel checks.
type NetworkParameters struct {
	SSID       string `json:"ssid"`
	Passphrase string `json:"-"` // empty means open network
	Channel    int    `json:"channel"`
	Hidden     bool   `json:"hidden"`
	MaxClients int    `json:"max_clients"`
}

// Open reports whether the access point runs without a passphrase.
func (p NetworkParameters) Open() bool { return p.Passphrase == "" }

// LinkInfo describes the network interface once the access point is up.
type LinkInfo struct {
	IP      string `json:"ip"`
	SSID    string `json:"ssid"`
	Channel int    `json:"channel"`
	Open    bool   `json:"open"`
}
