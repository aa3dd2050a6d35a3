package library

// Config holds configuration for the media library reconciliation.
type Config struct {
	// RootFolder is the default media folder scanned when a request does
	// not name one.
	RootFolder string `mapstructure:"root_folder" default:""`
	// FFprobeBinary is the ffprobe executable used for metadata probing.
	FFprobeBinary string `mapstructure:"ffprobe_binary" default:"ffprobe"`
	// FFmpegBinary is the ffmpeg executable used for thumbnail generation.
	FFmpegBinary string `mapstructure:"ffmpeg_binary" default:"ffmpeg"`
	// ThumbnailPrefix is the object key prefix for stored thumbnails.
	ThumbnailPrefix string `mapstructure:"thumbnail_prefix" default:"thumbs"`
}
