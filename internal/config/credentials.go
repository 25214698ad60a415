package config

import (
	"os"

	"github.com/joho/godotenv"

	dserrors "github.com/Aman-CERP/docsearch/internal/errors"
)

// Credentials are the index service secrets, supplied via environment.
type Credentials struct {
	AppID     string
	APIKey    string
	IndexName string
}

// LoadCredentials reads index credentials from the environment, loading a
// local .env file first when present. A missing .env is not an error; the
// variables may already be set in the environment (CI).
func LoadCredentials() (Credentials, error) {
	_ = godotenv.Load()

	creds := Credentials{
		AppID:     os.Getenv("DOCSEARCH_APP_ID"),
		APIKey:    os.Getenv("DOCSEARCH_API_KEY"),
		IndexName: os.Getenv("DOCSEARCH_INDEX"),
	}

	if creds.AppID == "" || creds.APIKey == "" || creds.IndexName == "" {
		return creds, dserrors.New(dserrors.ErrCodeMissingCreds,
			"index credentials are not configured", nil).
			WithSuggestion("set DOCSEARCH_APP_ID, DOCSEARCH_API_KEY, and DOCSEARCH_INDEX (a .env file works)")
	}

	return creds, nil
}
