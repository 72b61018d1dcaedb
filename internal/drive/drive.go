// Package drive syncs the three data files with a Google Drive folder.
//
// Only two operations exist: pull the latest remote version of a file by
// name, and push the local file back, overwriting the remote copy by id.
// The reconciliation core never touches this package; sync is an explicit
// operator action that replaces whole files before or after a session.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// ErrRemoteNotFound indicates no remote file with the requested name.
var ErrRemoteNotFound = errors.New("no remote file with that name")

// Service is a thin client over the Drive API. It caches name-to-id
// resolutions so a push after a pull overwrites the same remote file.
type Service struct {
	files  *driveapi.FilesService
	ids    map[string]string
	logger *slog.Logger
}

// NewService builds a Drive client from a credentials file, restricted to
// files this tool created or opened.
func NewService(ctx context.Context, credentialsPath string, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	svc, err := driveapi.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(driveapi.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("initialize drive client: %w", err)
	}
	return &Service{
		files:  svc.Files,
		ids:    make(map[string]string),
		logger: logger,
	}, nil
}

// resolve finds the id of the most recently modified remote file with the
// given name. Results are cached for the lifetime of the Service.
func (s *Service) resolve(ctx context.Context, name string) (string, error) {
	if id, ok := s.ids[name]; ok {
		return id, nil
	}

	list, err := s.files.List().
		Q(fmt.Sprintf("name = '%s' and trashed = false", name)).
		OrderBy("modifiedTime desc").
		PageSize(10).
		Fields("files(id, name, modifiedTime)").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("list remote files named %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%q: %w", name, ErrRemoteNotFound)
	}

	// Pushes historically created fresh files rather than updating, so
	// several versions can coexist; the newest wins.
	newest := list.Files[0]
	s.logger.Debug("resolved remote file",
		"name", name, "id", newest.Id, "modified", newest.ModifiedTime,
		"candidates", len(list.Files))
	s.ids[name] = newest.Id
	return newest.Id, nil
}

// Pull downloads the latest remote version of name into destPath,
// overwriting any local copy.
func (s *Service) Pull(ctx context.Context, name, destPath string) error {
	id, err := s.resolve(ctx, name)
	if err != nil {
		return err
	}

	resp, err := s.files.Get(id).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("download %q: %w", name, err)
	}
	defer resp.Body.Close()

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", destPath, err)
	}
	n, err := io.Copy(f, resp.Body)
	if err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}

	s.logger.Info("pulled file", "name", name, "bytes", n, "dest", destPath)
	return nil
}

// Push uploads srcPath as name. A known remote file is overwritten in
// place; otherwise a new remote file is created and its id cached.
func (s *Service) Push(ctx context.Context, name, srcPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer f.Close()

	id, err := s.resolve(ctx, name)
	switch {
	case errors.Is(err, ErrRemoteNotFound):
		created, err := s.files.Create(&driveapi.File{Name: name}).
			Media(f).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("upload %q: %w", name, err)
		}
		s.ids[name] = created.Id
		s.logger.Info("pushed new file", "name", name, "id", created.Id)
		return nil
	case err != nil:
		return err
	}

	if _, err := s.files.Update(id, &driveapi.File{}).Media(f).Context(ctx).Do(); err != nil {
		return fmt.Errorf("overwrite %q: %w", name, err)
	}
	s.logger.Info("pushed file", "name", name, "id", id)
	return nil
}
