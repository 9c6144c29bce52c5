// Package acl is the anti-corruption layer between the gateway and the
// Ask Kodiak v2 REST API.
//
// Ask Kodiak payloads (field spellings such as "decendants", epoch-millisecond
// timestamps, geos encoded as a set) stay inside this package; callers only
// see domain types.
//
// # Errors
//
// Every method returns one of three error shapes:
//
//   - *pipeline.ConstructionError: a pipeline step refused the request and
//     nothing was sent.
//   - *NormalizedError: the API answered with a non-2xx status. The message is
//     the body's "message", else its "code", else the HTTP reason phrase.
//     It unwraps to the domain sentinel for its status:
//     404 → [domain.ErrNotFound], 400/422 → [domain.ErrValidation],
//     401/403 → [domain.ErrForbidden], 409 → [domain.ErrConflict],
//     429/5xx → [domain.ErrUnavailable].
//   - *domain.UnavailableError: no response (circuit open, retries exhausted,
//     undecodable body).
//
// # Query parameters
//
// Multi-valued filters are packed with pipeline.JoinValues and sent as a
// single "+"-delimited parameter; see [EligibleQuery].
package acl
