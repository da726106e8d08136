package model

// InspirationResponse lists short lines shown on the landing page.
type InspirationResponse struct {
	Success  bool     `json:"success"`
	Shayaris []string `json:"shayaris"`
	Count    int      `json:"count"`
}
