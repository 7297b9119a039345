// Package file provides read access to template sources kept on the local filesystem or in
// Amazon S3 (and S3-compatible services such as MinIO).
//
// Both backends expose the same three operations: list keys, read content and read
// metadata. Keys are storage-relative paths whose segments are joined with KeySeparator
// (":") instead of the filesystem separator, so "auth/reset.tmpl" is addressed as
// "auth:reset.tmpl". Keys are returned sorted and can be filtered by file extension.
//
// # Local storage
//
//	store, err := file.NewLocalStorage("./emails", file.WithExtensions(".tmpl"))
//	keys, err := store.Keys(ctx)
//	src, err := store.Content(ctx, "auth:reset.tmpl")
//
// All paths are resolved inside the base directory; keys that escape it fail with
// ErrInvalidPath. Creation time is read from the file birth time where the platform
// records one and falls back to the change time.
//
// # S3 storage
//
//	store, err := file.NewS3Storage(ctx, file.S3Config{
//	    Bucket: "emails",
//	    Region: "eu-central-1",
//	    Prefix: "templates/",
//	})
//
// S3 errors are classified into the sentinel errors of this package (ErrFileNotFound,
// ErrAccessDenied, ErrBucketNotFound and so on) so callers can react without depending on
// the AWS SDK.
package file
