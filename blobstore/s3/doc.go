// Package s3 implements blobstore.BlobStore for Amazon S3 using the AWS
// SDK for Go v2. Whole-blob reads use the transfer manager for parallel
// ranged downloads.
package s3
