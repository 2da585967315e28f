package models

// StoreInfo holds the shop's display details. All fields are optional; empty
// fields simply leave the corresponding page region untouched.
type StoreInfo struct {
	Name      string `json:"name,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Whatsapp  string `json:"whatsapp,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// MarketStatus drives the two-state open/closed indicator.
type MarketStatus struct {
	IsOpen bool `json:"is_open"`
}
