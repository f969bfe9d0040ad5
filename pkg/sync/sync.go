package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/notion-mirror/pkg/chunk"
	"github.com/sidkik/notion-mirror/pkg/errors"
	"github.com/sidkik/notion-mirror/pkg/notion"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// Report summarizes what a run did. Skipped entries are failures that were
// isolated to one entry (and its subtree) rather than aborting the run.
type Report struct {
	PagesCreated   int
	EntriesSkipped int
	BlocksAppended int
}

// Syncer mirrors a local directory tree into a Notion page tree.
type Syncer struct {
	client notion.Client
	opts   Options
	log    *logrus.Logger

	textExtensions map[string]bool
	report         Report
}

// New returns a Syncer that creates pages through client.
func New(client notion.Client, opts Options, log *logrus.Logger) *Syncer {
	textExtensions := map[string]bool{}
	for _, ext := range opts.TextExtensions {
		textExtensions[strings.ToLower(ext)] = true
	}

	return &Syncer{
		client:         client,
		opts:           opts,
		log:            log,
		textExtensions: textExtensions,
	}
}

// Run mirrors the tree rooted at folder under the existing Notion page
// parentID. Individual entry failures are logged and skipped; the returned
// error is non-nil only for run-level failures (invalid root, unreadable
// root listing, or cancellation).
func (s *Syncer) Run(ctx context.Context, folder, parentID string) (Report, error) {
	info, err := fs.Stat(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return Report{}, errors.FileNotFound{Path: folder}
		}
		return Report{}, errors.WithContext(err, "stat folder")
	}
	if !info.IsDir() {
		return Report{}, errors.NewFriendlyError(
			"%q is not a directory. Please point --folder at the root of "+
				"the tree to mirror.", folder)
	}

	s.report = Report{}
	s.log.WithFields(logrus.Fields{
		"folder": folder,
		"page":   parentID,
	}).Info("Starting sync")

	if err := s.syncDir(ctx, folder, parentID); err != nil {
		return s.report, err
	}

	s.log.WithFields(logrus.Fields{
		"pagesCreated":   s.report.PagesCreated,
		"blocksAppended": s.report.BlocksAppended,
		"entriesSkipped": s.report.EntriesSkipped,
	}).Info("Sync complete")
	return s.report, nil
}

// syncDir mirrors the entries of dir under the page parentID. The returned
// error is non-nil only if the listing itself failed or the run was
// cancelled; per-entry failures are consumed by syncEntry.
func (s *Syncer) syncDir(ctx context.Context, dir, parentID string) error {
	// afero.ReadDir returns entries sorted by filename, which keeps the
	// order of remote calls reproducible across runs.
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return errors.WithContext(err, "list directory")
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.opts.HiddenPrefix != "" &&
			strings.HasPrefix(entry.Name(), s.opts.HiddenPrefix) {
			s.log.WithField("name", entry.Name()).Debug("Skipping hidden entry")
			continue
		}

		if err := s.syncEntry(ctx, dir, entry, parentID); err != nil {
			return err
		}
	}
	return nil
}

// syncEntry mirrors a single directory entry. Failures are reported and
// isolated here: the entry (and, for directories, its whole subtree) is
// skipped, and a nil error is returned so that sibling entries still
// proceed. Only cancellation propagates.
func (s *Syncer) syncEntry(ctx context.Context, dir string, entry os.FileInfo,
	parentID string) error {

	path := filepath.Join(dir, entry.Name())
	kind := Classify(entry.Name(), entry.IsDir(), s.textExtensions)
	s.log.WithFields(logrus.Fields{
		"path": path,
		"kind": kind,
	}).Debug("Processing entry")

	switch kind {
	case Container:
		pageID, err := s.createPage(ctx, parentID, entry.Name(), path)
		if err != nil {
			s.skip(path, err)
			return nil
		}

		if err := s.syncDir(ctx, path, pageID); err != nil {
			if ctx.Err() != nil {
				return err
			}
			// The directory couldn't be listed. Its page stays empty, and
			// sibling entries still proceed.
			s.skip(path, err)
		}
	case TextLeaf:
		s.syncTextFile(ctx, path, entry.Name(), parentID)
	case OpaqueLeaf:
		s.syncOpaqueFile(ctx, path, entry.Name(), parentID)
	}
	return nil
}

// syncTextFile creates a page for the text file and fills it with the file's
// contents, chunked and appended batch by batch.
func (s *Syncer) syncTextFile(ctx context.Context, path, name, parentID string) {
	text, err := s.readText(path, name)
	if err != nil {
		// Degrade rather than abort: the page is still created, holding a
		// placeholder that names the unreadable file.
		s.log.WithError(err).WithField("path", path).Warn(
			"Failed to read file. Its page will hold placeholder text instead.")
	}

	pageID, err := s.createPage(ctx, parentID, pageTitle(name), path)
	if err != nil {
		s.skip(path, err)
		return
	}

	var blocks []notion.Block
	for _, segment := range chunk.Split(text, s.opts.MaxChunkLength) {
		blocks = append(blocks, notion.Paragraph(segment))
	}

	for _, batch := range chunk.Group(blocks, s.opts.MaxBlocksPerCall) {
		if err := s.client.AppendBlocks(ctx, pageID, batch); err != nil {
			// Remaining batches are abandoned, so the page may be left with
			// partial content. We don't delete pages, so it stays that way.
			s.skip(path, errors.WithContext(err, "append content"))
			return
		}
		s.report.BlocksAppended += len(batch)
	}
}

// syncOpaqueFile creates a page for the file and appends a single block
// referencing it by a placeholder URL.
func (s *Syncer) syncOpaqueFile(ctx context.Context, path, name, parentID string) {
	pageID, err := s.createPage(ctx, parentID, pageTitle(name), path)
	if err != nil {
		s.skip(path, err)
		return
	}

	url := s.opts.ExternalURLBase + "/" + name
	batch := []notion.Block{notion.ExternalFile(url)}
	if err := s.client.AppendBlocks(ctx, pageID, batch); err != nil {
		s.skip(path, errors.WithContext(err, "append file reference"))
		return
	}
	s.report.BlocksAppended++
}

func (s *Syncer) createPage(ctx context.Context, parentID, title, path string) (string, error) {
	pageID, err := s.client.CreatePage(ctx, parentID, title)
	if err != nil {
		return "", errors.WithContext(err, "create page")
	}

	s.report.PagesCreated++
	s.log.WithFields(logrus.Fields{
		"title": title,
		"path":  path,
	}).Info("Created page")
	return pageID, nil
}

// readText returns the file's contents, or placeholder text naming the file
// when it can't be read.
func (s *Syncer) readText(path, name string) (string, error) {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Sprintf("Could not parse file %s", name), err
	}
	return string(contents), nil
}

func (s *Syncer) skip(path string, err error) {
	s.report.EntriesSkipped++
	s.log.WithError(err).WithField("path", path).Warn("Skipped entry")
}

// pageTitle strips the extension from a file name, matching how directories
// and files are titled on the remote side.
func pageTitle(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
