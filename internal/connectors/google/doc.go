// Package google provides shared infrastructure for the Google API connectors.
//
// This package contains common utilities used by the drive and sheets
// connectors including:
//   - TokenSource adapter to bridge Dealsync's TokenProvider to oauth2.TokenSource
//   - Service factories for creating Google API clients
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
// Each Google connector (drive, sheets) uses this package to create
// authenticated API clients:
//
//	ts := google.NewTokenSource(ctx, tokenProvider)
//	svc, err := google.NewDriveService(ctx, ts)
//
// # OAuth2 Scopes
//
// Google connectors use these scopes:
//   - https://www.googleapis.com/auth/userinfo.email (non-sensitive)
//   - https://www.googleapis.com/auth/drive (restricted; file search and rename)
//   - https://www.googleapis.com/auth/spreadsheets (sensitive; audit log)
//
// For user-created internal apps, restricted scopes don't require verification.
package google
