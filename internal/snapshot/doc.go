// Package snapshot renders applications to static HTML and stores the result.
//
// A snapshot is produced by mounting an application on an in-memory surface
// behind a surface.Recorder: the serialized body becomes an HTML document and
// the journaled writes are kept alongside it in msgpack form, so a client
// can rebuild the same tree op by op.
//
// Snapshots are written to a Store. DiskStore writes to a local directory;
// S3Store writes to a bucket through aws-sdk-go-v2:
//
//	store := snapshot.NewS3Store(snapshot.NewS3Client(snapshot.S3Config{
//	    Region: "eu-west-1",
//	}), "my-bucket", "previews/")
//	exp := snapshot.NewExporter(store)
//	locations, err := exp.Export(ctx, snaps)
package snapshot
