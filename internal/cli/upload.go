package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"catalogadmin.cl/app/internal/storage"
	"catalogadmin.cl/app/pkg/logger"
)

func newUploadCmd() *cobra.Command {
	var (
		prefix string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a product image to the configured storage",
		Long:  "Upload a product image with STORAGE_DRIVER settings and print the public URL.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			st, err := storage.FromEnv(ctx)
			if err != nil {
				return err
			}
			log := logger.New(logger.Options{Service: "catalogctl", Level: "warn", Output: cmd.ErrOrStderr()})
			up := storage.NewUploader(st.Storage, st.Driver, prefix, log)

			out := cmd.OutOrStdout()
			name := filepath.Base(args[0])
			res, err := up.Upload(ctx, storage.Attachment{
				Filename:    name,
				ContentType: mime.TypeByExtension(filepath.Ext(name)),
				Size:        info.Size(),
				Body:        f,
			}, func(p storage.Progress) {
				if !quiet {
					fmt.Fprintf(out, "%3.0f%% (%d/%d bytes)\n", p.Percent, p.Transferred, p.Total)
				}
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", res.URL)
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", defaults().UploadPrefix, "object key prefix")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the URL")
	return cmd
}
