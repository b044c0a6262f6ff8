package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/internal/config"
	"github.com/vango-dev/krow/internal/demo"
	"github.com/vango-dev/krow/internal/errors"
	"github.com/vango-dev/krow/internal/snapshot"
)

func (c *cli) exportCmd() *cobra.Command {
	var (
		dir      string
		bucket   string
		region   string
		endpoint string
		prefix   string
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "export [demo...]",
		Short: "Export HTML snapshots of the demos",
		Long: `Render demos and store each as <name>.html plus <name>.ops, the
msgpack-encoded surface writes that built it. With no arguments every demo
is exported.

Snapshots go to S3 when a bucket is configured and to a local directory
otherwise. S3 credentials are read from AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.

Examples:
  krow export
  krow export counter todos --dir=public
  krow export --bucket=previews --region=eu-west-1 --prefix=krow/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			exp := &c.cfg.Export
			if flags.Changed("dir") {
				exp.Dir = dir
			}
			if flags.Changed("bucket") {
				exp.Bucket = bucket
			}
			if flags.Changed("region") {
				exp.Region = region
			}
			if flags.Changed("endpoint") {
				exp.Endpoint = endpoint
			}
			if flags.Changed("prefix") {
				exp.Prefix = prefix
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = demo.Names()
			}
			snaps := make([]*snapshot.Snapshot, 0, len(names))
			for _, name := range names {
				d, err := lookupDemo(name)
				if err != nil {
					return err
				}
				snap, err := snapshot.Render(cmd.Context(), d.Name, d.New, krow.WithLogger(c.logger))
				if err != nil {
					return errors.New("K302").WithDetail(d.Name).Wrap(err)
				}
				snaps = append(snaps, snap)
			}

			store, err := c.openStore(c.cfg)
			if err != nil {
				return errors.New("K301").Wrap(err)
			}
			locations, err := snapshot.NewExporter(store,
				snapshot.WithLogger(c.logger),
				snapshot.WithJobs(jobs),
			).Export(cmd.Context(), snaps)
			if err != nil {
				return errors.New("K301").Wrap(err)
			}

			w := cmd.OutOrStdout()
			for _, loc := range locations {
				success(w, "%s", loc)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "o", "", "Output directory (default from krow.toml)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket to upload to")
	cmd.Flags().StringVar(&region, "region", "", "S3 region")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "S3-compatible endpoint, e.g. http://localhost:9000")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Concurrent uploads")

	return cmd
}

func (c *cli) openStore(cfg *config.Config) (snapshot.Store, error) {
	if cfg.UseS3() {
		client := snapshot.NewS3Client(snapshot.S3Config{
			Region:   cfg.Export.Region,
			Endpoint: cfg.Export.Endpoint,
		})
		c.logger.Debug("exporting to s3", "bucket", cfg.Export.Bucket, "prefix", cfg.Export.Prefix)
		return snapshot.NewS3Store(client, cfg.Export.Bucket, cfg.Export.Prefix), nil
	}
	c.logger.Debug("exporting to directory", "dir", cfg.Export.Dir)
	return snapshot.NewDiskStore(cfg.Export.Dir)
}
