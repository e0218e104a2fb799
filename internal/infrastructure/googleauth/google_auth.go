package googleauth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Credentials reads a credentials JSON (service account or authorized user)
// and scopes it for creating Drive files.
func Credentials(ctx context.Context, credPath string) (*google.Credentials, error) {
	b, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, b, gdrive.DriveFileScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file: %w", err)
	}
	return creds, nil
}

// BuildDriveService loads credentials from credPath and returns a Drive client.
// base, when non-nil, carries both the token exchange and the API calls.
func BuildDriveService(ctx context.Context, credPath string, base *http.Client) (*gdrive.Service, error) {
	creds, err := Credentials(ctx, credPath)
	if err != nil {
		return nil, err
	}
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	client := oauth2.NewClient(ctx, creds.TokenSource)
	srv, err := gdrive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}
	return srv, nil
}
