package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var submissionExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".zip":  true,
}

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AllowedSubmissionExtension reports whether the filename carries an extension
// on the submission allow-list.
func AllowedSubmissionExtension(name string) bool {
	return submissionExtensions[strings.ToLower(filepath.Ext(name))]
}

// AllowedPhotoExtension reports whether the filename carries an extension on
// the profile photo allow-list.
func AllowedPhotoExtension(name string) bool {
	return photoExtensions[strings.ToLower(filepath.Ext(name))]
}

// StoredFile describes a file written below the uploads root. RelPath is the
// path under the public /uploads prefix.
type StoredFile struct {
	Name    string
	RelPath string
}

// FileInfo describes one stored file for listings.
type FileInfo struct {
	Name    string
	RelPath string
	Size    int64
	ModTime time.Time
}

// UploadStore writes and lists uploaded files under a single root directory.
// Directories are created lazily on first write.
type UploadStore struct {
	root string
}

func NewUploadStore(root string) *UploadStore {
	return &UploadStore{root: root}
}

// Root returns the uploads root directory, creating it if needed.
func (s *UploadStore) Root() (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads root: %w", err)
	}
	return s.root, nil
}

func (s *UploadStore) submissionDir(taskID uint64) string {
	return filepath.Join(s.root, "task-submissions", strconv.FormatUint(taskID, 10))
}

func (s *UploadStore) photoDir(userID uint64) string {
	return filepath.Join(s.root, "profile-photos", strconv.FormatUint(userID, 10))
}

// SaveSubmission streams an uploaded submission into the task's directory.
// The stored name keeps the sanitized original base name and appends a short
// random suffix so repeated uploads of the same file never collide.
func (s *UploadStore) SaveSubmission(taskID, userID uint64, originalName string, r io.Reader) (StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := sanitizeBaseName(strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName)))
	if base == "" {
		base = "submission"
	}

	dir := s.submissionDir(taskID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("failed to create submission directory: %w", err)
	}

	storedName := fmt.Sprintf("%s_%d_%s_%s%s",
		time.Now().UTC().Format("20060102150405"),
		userID,
		base,
		uuid.NewString()[:8],
		ext,
	)

	if err := writeFile(filepath.Join(dir, storedName), r); err != nil {
		return StoredFile{}, err
	}

	return StoredFile{
		Name:    storedName,
		RelPath: fmt.Sprintf("task-submissions/%d/%s", taskID, storedName),
	}, nil
}

// ListSubmissions lists a task's stored submissions, newest first. A missing
// directory yields an empty list.
func (s *UploadStore) ListSubmissions(taskID uint64) ([]FileInfo, error) {
	files, err := listDir(s.submissionDir(taskID), fmt.Sprintf("task-submissions/%d", taskID))
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// RemoveSubmissions deletes a task's submission directory, if present.
func (s *UploadStore) RemoveSubmissions(taskID uint64) error {
	return os.RemoveAll(s.submissionDir(taskID))
}

// SaveProfilePhoto replaces the user's stored photos with the uploaded one.
func (s *UploadStore) SaveProfilePhoto(userID uint64, originalName string, r io.Reader) (StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))

	dir := s.photoDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("failed to create photo directory: %w", err)
	}

	old, err := os.ReadDir(dir)
	if err != nil {
		return StoredFile{}, fmt.Errorf("failed to read photo directory: %w", err)
	}
	for _, entry := range old {
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return StoredFile{}, fmt.Errorf("failed to remove old photo: %w", err)
		}
	}

	storedName := fmt.Sprintf("avatar_%s%s", time.Now().UTC().Format("20060102150405"), ext)

	if err := writeFile(filepath.Join(dir, storedName), r); err != nil {
		return StoredFile{}, err
	}

	return StoredFile{
		Name:    storedName,
		RelPath: fmt.Sprintf("profile-photos/%d/%s", userID, storedName),
	}, nil
}

// LatestProfilePhoto returns the most recent photo for a user, or false when
// none is stored.
func (s *UploadStore) LatestProfilePhoto(userID uint64) (FileInfo, bool, error) {
	files, err := listDir(s.photoDir(userID), fmt.Sprintf("profile-photos/%d", userID))
	if err != nil {
		return FileInfo{}, false, err
	}
	if len(files) == 0 {
		return FileInfo{}, false, nil
	}

	latest := files[0]
	for _, f := range files[1:] {
		if f.ModTime.After(latest.ModTime) {
			latest = f
		}
	}
	return latest, true, nil
}

func writeFile(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func listDir(dir, relPrefix string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []FileInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		files = append(files, FileInfo{
			Name:    entry.Name(),
			RelPath: relPrefix + "/" + entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

func sanitizeBaseName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ". ")
}
