// Package openapi exposes the contracts for reading component field sets out
// of OpenAPI documents. Loader and parser implementations live under
// internal/openapi to keep kin-openapi types out of the public API.
package openapi
