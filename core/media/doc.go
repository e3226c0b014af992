// Package media provides S3-compatible object storage for user media.
//
// It stores user avatars (uploaded through the auth feature) and cached game
// cover images under a single bucket. The Client interface wraps the Minio
// SDK so services can be tested against the mocks subpackage.
package media
