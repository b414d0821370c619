package host

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotup/pkg/errors"
)

// AppendLineIfAbsent appends line to the file at path unless an
// identical line is already present. The match is on the exact trimmed
// line, so rerunning the bootstrap never duplicates profile or registry
// entries. The file and its parent directories are created when
// missing. Returns whether the line was added.
func AppendLineIfAbsent(filesystem FS, path, line string) (bool, error) {
	line = strings.TrimRight(line, "\n")

	content, err := filesystem.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}

	if err == nil && containsLine(content, line) {
		return false, nil
	}

	if err := filesystem.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create parent of %s", path)
	}

	var buf bytes.Buffer
	buf.Write(content)
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(line)
	buf.WriteByte('\n')

	perm := filePerm(filesystem, path)
	if err := filesystem.WriteFile(path, buf.Bytes(), perm); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	return true, nil
}

// ContainsLine reports whether the file at path contains line as an
// exact line match
func ContainsLine(filesystem FS, path, line string) (bool, error) {
	content, err := filesystem.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
	}
	return containsLine(content, strings.TrimRight(line, "\n")), nil
}

func containsLine(content []byte, line string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		if strings.TrimRight(scanner.Text(), "\r") == line {
			return true
		}
	}
	return false
}

// filePerm preserves the permission of an existing file, defaulting to
// 0644 for new ones
func filePerm(filesystem FS, path string) fs.FileMode {
	if info, err := filesystem.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
