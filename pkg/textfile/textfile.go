// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package textfile reads a target file whole and writes it back in place.
package textfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultBackupSuffix is appended to the target path when a backup is kept
const DefaultBackupSuffix = ".orig"

const defaultMode os.FileMode = 0644

// 📖 Load reads the whole file at path
func Load(ctx context.Context, path string) ([]byte, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("loaded file")
	return data, nil
}

// 💾 Write replaces the contents of path. The data goes to a temporary file in
// the same directory first and is renamed over the target, so a failed write
// leaves the previous contents in place. The target's mode is kept.
func Write(ctx context.Context, path string, content []byte) (err error) {
	logger := zerolog.Ctx(ctx)

	mode := defaultMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(statErr) {
		return errors.Errorf("checking %s: %w", path, statErr)
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return errors.Errorf("writing temp file %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Errorf("syncing temp file %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("closing temp file %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, mode); err != nil {
		return errors.Errorf("setting mode on %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return errors.Errorf("replacing %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

// 🗂️ Backup stores original next to path with the given suffix and returns
// the backup path. An empty suffix means DefaultBackupSuffix.
func Backup(ctx context.Context, path string, original []byte, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	backupPath := path + suffix

	if err := Write(ctx, backupPath, original); err != nil {
		return "", errors.Errorf("writing backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", backupPath).Msg("wrote backup")
	return backupPath, nil
}
