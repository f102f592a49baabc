// Package api exposes the ledger service over HTTP with JSON bodies.
//
// Routes:
//
//	POST /donor                      register a donor
//	POST /recipient                  register a recipient and try to match it
//	GET  /ledger/{name}              every block of a ledger
//	GET  /ledger/{name}/search?term= blocks whose payload contains term
//	GET  /ledger/{name}/verify       hash chain check
//
// Field validation happens here, before records reach the service.
package api
