// Package oauth holds the third-party sign-in configuration and the
// Google OAuth client used to authenticate users without a password.
package oauth
