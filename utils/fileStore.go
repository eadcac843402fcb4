package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/therossee/thesis-proposals-sub001/config"

	"github.com/google/uuid"
)

// Upload directory names under the configured upload root, one per
// workflow stage. Permanent filenames are deterministic per student so
// a resubmission replaces the previous file at the same slot.
const (
	conclusionRequestDir = "thesis_conclusion_request"
	conclusionDraftDir   = "thesis_conclusion_draft"
	finalThesisDir       = "final_thesis"
	tempDir              = "tmp"
)

// ConclusionRequestDir returns the per-student permanent directory for
// conclusion-request uploads.
func ConclusionRequestDir(studentID uint) string {
	return filepath.Join(config.AppConfig.UploadRoot, conclusionRequestDir, fmt.Sprintf("%d", studentID))
}

// DraftDir returns the per-student directory for draft uploads.
func DraftDir(studentID uint) string {
	return filepath.Join(config.AppConfig.UploadRoot, conclusionDraftDir, fmt.Sprintf("%d", studentID))
}

// FinalThesisDir returns the per-student directory for final uploads.
func FinalThesisDir(studentID uint) string {
	return filepath.Join(config.AppConfig.UploadRoot, finalThesisDir, fmt.Sprintf("%d", studentID))
}

func ThesisFileName(studentID uint) string {
	return fmt.Sprintf("thesis_%d.pdf", studentID)
}

func ResumeFileName(studentID uint) string {
	return fmt.Sprintf("resume_%d.pdf", studentID)
}

func AdditionalZipFileName(studentID uint) string {
	return fmt.Sprintf("additional_%d.zip", studentID)
}

func FinalThesisFileName(studentID uint) string {
	return fmt.Sprintf("final_thesis_%d.pdf", studentID)
}

func FinalResumeFileName(studentID uint) string {
	return fmt.Sprintf("final_resume_%d.pdf", studentID)
}

func FinalAdditionalZipFileName(studentID uint) string {
	return fmt.Sprintf("final_additional_%d.zip", studentID)
}

// EnsureDir creates the directory if it does not exist
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// MoveFile moves src to dst, replacing any previous file at dst.
// Rename is attempted first; a copy+remove fallback covers moves
// across devices.
func MoveFile(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// Fallback: copy then remove the source
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}

// DeleteIfExists removes the file at path if present. A missing file
// is not an error.
func DeleteIfExists(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// SaveTempUpload writes a multipart file into the temporary upload
// area under a unique name and returns its path. Callers must clean
// up the temp file on every failure path.
func SaveTempUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(config.AppConfig.UploadRoot, tempDir)
	if err := EnsureDir(dir); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	tempPath := filepath.Join(dir, uuid.NewString()+ext)

	dst, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tempPath)
		return "", err
	}

	return tempPath, nil
}

// SaveUploadedFile stores a multipart file under destDir keeping the
// original filename, replacing any previous file with the same name.
// Used for draft uploads, which are not renamed to slot names.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := EnsureDir(destDir); err != nil {
		return "", err
	}

	filePath := filepath.Join(destDir, filepath.Base(file.Filename))

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// RelativeUploadPath strips the upload root from an absolute stored
// path so the database keeps root-independent locations.
func RelativeUploadPath(path string) string {
	rel, err := filepath.Rel(config.AppConfig.UploadRoot, path)
	if err != nil {
		return path
	}
	return rel
}
