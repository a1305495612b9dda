// Package marketdata is the HTTP client for the dashboard backend.
//
// The backend serves price series as a JSON array of records at
// /api/data/{series}/{symbol}. Records are kept untyped (Row) so that any
// field the backend sends is rendered exactly as received.
package marketdata
