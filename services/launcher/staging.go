package launcher

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/utils"
)

// StageDirectory copies src into dst. Entries named in ignore are skipped
// at every depth, symbolic links are followed, dangling links are skipped
// and existing destination trees are overwritten in place.
func StageDirectory(src, dst string, ignore []string) error {
	s := &stager{ignore: ignore, active: map[string]bool{}}
	if err := s.copyDir(src, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrStagingFailed, err)
	}
	logx.Log.Info().Str("source", src).Str("destination", dst).Int("files", s.files).Msg("staged working directory")
	return nil
}

type stager struct {
	ignore []string
	// resolved directories currently being copied; guards symlink cycles
	active map[string]bool
	files  int
}

func (s *stager) copyDir(src, dst string) error {
	real, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	if s.active[real] {
		logx.Log.Debug().Str("path", src).Msg("skipping symlink cycle")
		return nil
	}
	s.active[real] = true
	defer delete(s.active, real)

	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if utils.StringInSlice(entry.Name(), s.ignore) {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		// follows links; a dangling link fails here and is skipped
		target, err := os.Stat(srcPath)
		if err != nil {
			if entry.Type()&os.ModeSymlink != 0 && os.IsNotExist(err) {
				logx.Log.Debug().Str("path", srcPath).Msg("skipping dangling symlink")
				continue
			}
			return err
		}

		switch {
		case target.IsDir():
			if err := s.copyDir(srcPath, dstPath); err != nil {
				return err
			}
		case target.Mode().IsRegular():
			if err := copyFile(srcPath, dstPath, target); err != nil {
				return err
			}
			s.files++
		default:
			logx.Log.Debug().Str("path", srcPath).Msg("skipping special file")
		}
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	// a link left over from an earlier staging would otherwise be written through
	if existing, err := os.Lstat(dst); err == nil && existing.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
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
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
