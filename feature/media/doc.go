// Package media wraps the ffmpeg tool family behind small collaborator types.
//
// FFProbe resolves a video file's title and duration through ffprobe's JSON
// output. Thumbnailer extracts a single scaled frame through ffmpeg and
// uploads it to the thumbnail bucket.
//
// Both are best-effort collaborators from the library sync's point of view:
// their failures degrade an add (default title, missing thumbnail) but never
// fail it.
package media
