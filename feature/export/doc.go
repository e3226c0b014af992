// Package export renders a user's for-sale games as shareable text for
// WhatsApp, Instagram, Facebook and email.
package export
