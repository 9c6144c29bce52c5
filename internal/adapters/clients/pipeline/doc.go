// Package pipeline builds outgoing Ask Kodiak requests.
//
// Every request issued by clients.Client passes through a Pipeline before it
// reaches the network. The built-in steps run in a fixed order:
//
//  1. base query encoding (url.Values.Encode, done by the endpoint binding)
//  2. QueryEncoder restores application-level "+" delimiters
//  3. EditionInjector pins the NAICS edition on edition-aware endpoints
//  4. the configured auth step (BasicAuth for the hosted API)
//  5. caller steps, in registration order
//
// A Pipeline is immutable once built and may be shared by concurrent requests.
package pipeline
