// Package connection provides the hub client for telemetry-cli.
//
// HubClient posts canonical command documents to <hub-url>/command and maps
// the response status onto the domain error taxonomy:
//
//	200           success
//	401           domain.ErrHubUnauthorized
//	other 4xx     domain.ErrHubClientError (body attached)
//	5xx           domain.ErrHubServerError (body attached)
//	anything else domain.ErrHubUnexpectedStatus
//
// Requests that never produce a response yield domain.ErrHubUnreachable.
package connection
