// Package integration holds end-to-end tests that drive the library against
// the real Google Slides and Drive APIs.
//
// The tests are skipped by default. Enable them with:
//
//	INTEGRATION_TEST=1 go test -v ./internal/integration/...
//
// # Required Environment Variables
//
//   - INTEGRATION_TEST: set to "1" to enable the tests
//   - GSLIDES_CREDENTIALS_FILE: service account or authorized-user JSON, or
//   - GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET / GOOGLE_REFRESH_TOKEN: an
//     OAuth2 refresh-token trio used instead of a credentials file
//   - TEST_PRESENTATION_ID: (optional) existing presentation for read-only
//     tests; it is never deleted
//   - GOOGLE_PROJECT_ID / FIRESTORE_EMULATOR_HOST: (optional) enable the
//     Firestore token store test against the emulator
//
// Presentations created by the tests are tracked and deleted through Drive
// when each test finishes.
package integration
