// Package restapi is the HTTP client for the OctoFit REST API.
//
// The client implements resource.Gateway for the collection endpoints and
// adds the login and registration calls that produce an identity. Every
// call is authorized with "Authorization: Token {key}" when the context
// carries an identity.
package restapi
