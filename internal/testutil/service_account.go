// Package testutil builds throwaway service-account credentials for tests.
package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
)

// TestClientEmail is the client_email written by ServiceAccountJSON.
const TestClientEmail = "relay@arena-test.iam.gserviceaccount.com"

// TestPrivateKeyID is the private_key_id written by ServiceAccountJSON.
const TestPrivateKeyID = "0123456789abcdef"

// TestProjectID is the project_id written by ServiceAccountJSON.
const TestProjectID = "arena-test"

// RSAKey generates a 2048-bit key.
func RSAKey(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	return key
}

// PKCS8PEM encodes key as a PEM "PRIVATE KEY" block, the format
// service-account files use.
func PKCS8PEM(t testing.TB, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal pkcs8: %v", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// ServiceAccountJSON returns a valid service-account document for key.
func ServiceAccountJSON(t testing.TB, key *rsa.PrivateKey) []byte {
	t.Helper()
	doc := map[string]string{
		"type":           "service_account",
		"project_id":     TestProjectID,
		"private_key_id": TestPrivateKeyID,
		"private_key":    PKCS8PEM(t, key),
		"client_email":   TestClientEmail,
		"client_id":      "1234567890",
		"token_uri":      "https://oauth2.googleapis.com/token",
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal service account: %v", err)
	}
	return data
}

// WriteServiceAccountFile writes ServiceAccountJSON to a temp file and
// returns its path along with the key used.
func WriteServiceAccountFile(t testing.TB) (string, *rsa.PrivateKey) {
	t.Helper()
	key := RSAKey(t)
	path := filepath.Join(t.TempDir(), "service-account.json")
	if err := os.WriteFile(path, ServiceAccountJSON(t, key), 0o600); err != nil {
		t.Fatalf("write service account: %v", err)
	}
	return path, key
}
