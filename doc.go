// Package main provides the entry point for the authgate identity and
// session gateway. It initializes and runs a web server using the Fiber
// framework that offers local password authentication with first-run admin
// bootstrap, OAuth2/OIDC federation against configurable providers, license
// agreement gating and JWT session issuance through a REST API. The
// application uses gorm for data persistence.
package main
