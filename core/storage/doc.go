// Package storage provides the object storage client used for clip thumbnails.
//
// It wraps the Minio SDK behind a narrow Client interface so services and
// tests depend on the operations the catalog actually needs (put, get, stat,
// remove, bucket management) rather than the full SDK surface.
//
// The mocks subpackage contains a testify-based mock of the Client interface.
package storage
