// Package flowapi provides an HTTP client for the workflow automation
// management API.
//
// # Overview
//
// The client covers the resources the dashboard shows: environments, flows,
// runs, trigger histories and connections. List endpoints return the
// {"value": [...]} envelope and are decoded into loosely typed records so the
// grid can resolve any dotted accessor against them. A few typed views
// (Flow, Run) are available through Decode for code that needs to act on a
// record.
//
// # Client Usage
//
//	client, err := flowapi.NewClient(flowapi.Options{
//		BaseURL: cfg.APIBase,
//		Token:   raw,
//	})
//	if err != nil {
//		return err
//	}
//	flows, err := client.ListFlows(ctx, envName)
//
// # Request Handling
//
// All requests:
//   - Are rooted at /providers/Microsoft.ProcessSimple
//   - Carry the api-version query parameter
//   - Send the Authorization header exactly as configured
//   - Set Accept: application/json and User-Agent: flowdeck/0.1
//
// # Error Handling
//
// Responses with status >= 400 become *APIError. The service error body
// {"error":{"code":..,"message":..}} is decoded when present; otherwise the
// HTTP status code and text are used. APIError exposes ErrorCode and
// ErrorMessage so the alert queue renders it as "code: message".
//
// # Thread Safety
//
// Client is safe for concurrent use.
package flowapi
