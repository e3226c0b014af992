// Package auth implements account registration, password and Google
// sign-in, profile management and Ludopedia account linking.
package auth
