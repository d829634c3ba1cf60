package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"mediaup/internal/authorize"
	"mediaup/internal/config"
	"mediaup/internal/credential"
	"mediaup/internal/domain"
	"mediaup/internal/preprocess"
	"mediaup/internal/transport"
	"mediaup/internal/uploader"
	"mediaup/internal/validate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		filePath     = flag.String("file", "", "path of the media file to upload")
		bucketName   = flag.String("bucket", string(domain.BucketPostImage), "bucket class for the upload")
		videoUpload  = flag.Bool("video", false, "treat the file as a video upload")
		noPreprocess = flag.Bool("no-preprocess", false, "upload the image as-is without fitting")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		return fmt.Errorf("missing -file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.API.Token == "" {
		return fmt.Errorf("MEDIAUP_API_TOKEN is not set")
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *filePath, err)
	}
	asset := domain.NewMediaAsset(data, mime.TypeByExtension(filepath.Ext(*filePath)), filepath.Base(*filePath))
	bucket := domain.BucketClass(*bucketName)

	validator := validate.New()
	creds := credential.NewManager(credential.NewStaticStore(cfg.API.Token))

	// Primary path: authorize against the API, then PUT straight to storage.
	direct := transport.NewDirectRoute(
		authorize.NewClient(cfg.API.BaseURL, cfg.API.AuthorizeTimeout),
		transport.NewEngine(),
	)
	coordinator := uploader.NewCoordinator(creds, direct,
		cfg.Retry.MaxAttempts, cfg.Retry.BackoffBase, cfg.Retry.BackoffCap, cfg.API.MinTokenValidity)

	// Fallback path: server-proxied multipart upload.
	proxy := transport.NewProxyRoute(cfg.API.BaseURL, validator)
	routed := uploader.NewRouter(coordinator, proxy, creds)

	video := preprocess.NewVideoProcessor(cfg.Preprocess.FFmpegBin, cfg.Preprocess.FFprobeBin)
	up := uploader.NewUploader(validator, routed, video, cfg.Preprocess.JPEGQuality)

	opts := uploader.Options{
		SkipPreprocess: *noPreprocess,
		Progress: func(ev domain.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "\rsent %d/%d bytes", ev.Sent, ev.Total)
			if ev.Sent >= ev.Total {
				fmt.Fprintln(os.Stderr)
			}
		},
	}

	ctx := context.Background()
	if *videoUpload {
		result, err := up.UploadVideo(ctx, bucket, asset, opts)
		if err != nil {
			return err
		}
		fmt.Println(result.Video.PublicURL)
		if result.Thumbnail != nil {
			fmt.Println(result.Thumbnail.PublicURL)
		}
		return nil
	}

	result, err := up.Upload(ctx, bucket, asset, opts)
	if err != nil {
		return err
	}
	fmt.Println(result.PublicURL)
	return nil
}
