package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/spf13/cobra"

	"github.com/scenescope/scenescope/internal/logger"
	"github.com/scenescope/scenescope/pkg/shared/files"
)

type UploadOptions struct {
	InputFile string
	Bucket    string
	Key       string
}

var allUploadOptions UploadOptions

var execExampleUpload = `  # Upload a validation report to the configured bucket
  scenescope upload -i ~/.scenescope/results/episode/scenescope-report-lint.json

  # Upload a storyboard to an explicit bucket and key
  scenescope upload -i /tmp/episode-storyboard.json -b my-bucket -k storyboards/episode.json`

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:                   "upload -i /path/to/report.json [-b BUCKET] [-k KEY]",
	Short:                 "Upload a report or storyboard to object storage",
	Example:               execExampleUpload,
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger(AppConfig, "core-upload")

		if allUploadOptions.InputFile == "" {
			return fmt.Errorf("the 'input' flag must be specified")
		}
		if err := files.ValidatePath(allUploadOptions.InputFile); err != nil {
			return fmt.Errorf("invalid input file: %w", err)
		}

		bucket := allUploadOptions.Bucket
		if bucket == "" {
			bucket = AppConfig.Storage.Bucket
		}
		if bucket == "" {
			return fmt.Errorf("no bucket configured: set storage.bucket or pass --bucket")
		}

		key := allUploadOptions.Key
		if key == "" {
			key = filepath.Base(allUploadOptions.InputFile)
		}

		awsConfig := &aws.Config{}
		if AppConfig.Storage.Region != "" {
			awsConfig.Region = aws.String(AppConfig.Storage.Region)
		}
		if AppConfig.Storage.Endpoint != "" {
			awsConfig.Endpoint = aws.String(AppConfig.Storage.Endpoint)
			awsConfig.S3ForcePathStyle = aws.Bool(true)
		}

		sess, err := session.NewSession(awsConfig)
		if err != nil {
			return fmt.Errorf("failed to create storage session: %w", err)
		}
		uploader := s3manager.NewUploader(sess)

		f, err := os.Open(allUploadOptions.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open file %q: %w", allUploadOptions.InputFile, err)
		}
		defer f.Close()

		result, err := uploader.Upload(&s3manager.UploadInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   f,
		})
		if err != nil {
			return fmt.Errorf("failed to upload %q: %w", allUploadOptions.InputFile, err)
		}

		log.Info("uploaded", "bucket", bucket, "key", key, "location", result.Location)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&allUploadOptions.InputFile, "input", "i", "", "file to upload")
	uploadCmd.Flags().StringVarP(&allUploadOptions.Bucket, "bucket", "b", "", "bucket name (defaults to storage.bucket from config)")
	uploadCmd.Flags().StringVarP(&allUploadOptions.Key, "key", "k", "", "object key (defaults to the input file name)")
}
