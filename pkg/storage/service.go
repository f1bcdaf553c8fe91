package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"igspyglass/pkg/config"
	"igspyglass/pkg/instagram"
	"igspyglass/pkg/logger"
)

// DownloadService downloads media for resolved content and records each
// success. Per success exactly one history record is written; recorder
// failures are logged and otherwise ignored so a broken history file never
// blocks downloads.
type DownloadService struct {
	pipeline *Pipeline
	recorder Recorder
	folder   string
	logger   logger.Logger
}

// NewDownloadService wires a pipeline and a recorder.
func NewDownloadService(pipeline *Pipeline, recorder Recorder, cfg *config.Config, log logger.Logger) *DownloadService {
	if log == nil {
		log = logger.GetLogger()
	}
	return &DownloadService{
		pipeline: pipeline,
		recorder: recorder,
		folder:   cfg.Download.Folder,
		logger:   log,
	}
}

// DownloadPost downloads a post's media. Videos prefer the video URL; photos
// use the display URL. Returns the destination path, or "" on failure.
func (s *DownloadService) DownloadPost(username string, item instagram.ContentItem) string {
	sourceURL := item.DisplayURL
	ext := ".jpg"
	if item.IsVideo && item.VideoURL != "" {
		sourceURL = item.VideoURL
		ext = ".mp4"
	}
	return s.download("post", username, sourceURL, item.Shortcode, ext)
}

// DownloadStory downloads a story item.
func (s *DownloadService) DownloadStory(username string, item instagram.ContentItem) string {
	sourceURL := item.DisplayURL
	ext := ".jpg"
	if item.IsVideo && item.VideoURL != "" {
		sourceURL = item.VideoURL
		ext = ".mp4"
	}
	return s.download("story", username, sourceURL, item.ID, ext)
}

// DownloadProfilePicture downloads a profile's picture.
func (s *DownloadService) DownloadProfilePicture(profile *instagram.NormalizedProfile) string {
	if profile == nil || profile.ProfilePicURL == "" {
		return ""
	}
	return s.download("profile_pic", profile.Username, profile.ProfilePicURL, "", ".jpg")
}

func (s *DownloadService) download(mediaType, username, sourceURL, stem, ext string) string {
	if sourceURL == "" {
		s.logger.WarnWithFields("no source URL for media", map[string]interface{}{
			"type":     mediaType,
			"username": username,
		})
		return ""
	}

	destPath := UniquePath(filepath.Join(s.folder, username, s.filename(mediaType, stem, ext)))
	if !s.pipeline.Download(sourceURL, destPath) {
		return ""
	}

	rec := Record{
		Type:     mediaType,
		Username: username,
		MediaURL: sourceURL,
		FilePath: destPath,
		FileSize: FileSize(destPath),
		Status:   "completed",
	}
	if s.recorder != nil {
		if err := s.recorder.LogDownload(rec); err != nil {
			s.logger.WithError(err).Warn("failed to record download")
		}
	}
	return destPath
}

// filename builds a collision-resistant file name. The uuid suffix keeps
// repeated downloads of the same media from overwriting each other.
func (s *DownloadService) filename(mediaType, stem, ext string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	if stem == "" {
		return fmt.Sprintf("%s_%s%s", mediaType, suffix, ext)
	}
	return fmt.Sprintf("%s_%s_%s%s", mediaType, stem, suffix, ext)
}
