package domain

import "crypto/rsa"

// ServiceAccountType is the only credential type the relay accepts.
const ServiceAccountType = "service_account"

// ServiceAccount is a parsed service-account key file.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`

	// Raw holds the file contents as read, for SDKs that parse it themselves.
	Raw []byte `json:"-"`
	// Key is the decoded signing key.
	Key *rsa.PrivateKey `json:"-"`
}
