// Package collectednotes provides a typed client for the Collected Notes
// REST API (https://collectednotes.com).
//
// Public notes and sites can be read without credentials; everything else
// requires the account email plus the API token from the account settings
// page. Every method maps to exactly one HTTP endpoint: the package does no
// retrying, caching, or pagination on the caller's behalf.
package collectednotes
