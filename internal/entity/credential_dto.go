package entity

type PutCredentialRequest struct {
	Provider Provider `json:"provider"`
	APIKey   string   `json:"api_key"`
	Model    string   `json:"model,omitempty"`
}

// CredentialStatusResponse never carries the key itself, only its presence.
type CredentialStatusResponse struct {
	Configured bool     `json:"configured"`
	Provider   Provider `json:"provider,omitempty"`
	Model      string   `json:"model,omitempty"`
}

type DeleteCredentialResponse struct {
	Status string `json:"status"`
}
