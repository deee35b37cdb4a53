package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ninja-fellowship/internal/domain"
)

// Keep header order EXACT; downstream imports map columns by position.
var directoryHeader = []string{
	"EMAIL",
	"NAME",
	"OFFICE",
	"PORTRAIT_URL",
	"LINKEDIN_URL",
	"GITHUB_URL",
	"TWITTER_URL",
}

// WriteDirectoryCSV writes one row per employee in the given order.
func WriteDirectoryCSV(w io.Writer, emps []domain.Employee) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(directoryHeader); err != nil {
		return err
	}
	for _, e := range emps {
		if err := cw.Write(toDirectoryRow(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toDirectoryRow(e domain.Employee) []string {
	return []string{
		e.Email,
		e.Name,
		e.OfficeLabel(),
		e.ImagePortraitURL,
		e.Link(domain.LinkLinkedIn),
		e.Link(domain.LinkGitHub),
		e.Link(domain.LinkTwitter),
	}
}

// WriteDirectoryCSVFile writes the CSV to path, creating parent directories.
func WriteDirectoryCSVFile(path string, emps []domain.Employee) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDirectoryCSV(f, emps); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
