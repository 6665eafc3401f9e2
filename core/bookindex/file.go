package bookindex

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/ulikunitz/xz"

	dberrors "github.com/FocuswithJustin/DailyBread/core/errors"
)

// MaxDatasetSize caps the decompressed dataset size (256 MB).
const MaxDatasetSize = 256 << 20

// Load reads and parses a dataset file. Files ending in .gz or .xz are
// decompressed transparently.
func Load(path string) (*Index, error) {
	data, err := readDataset(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

func readDataset(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &dberrors.NotFoundError{Resource: "dataset", ID: path, Err: dberrors.NewIO("open", path, err)}
		}
		return nil, dberrors.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".xz"):
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, dberrors.NewIO("decompress", path, err)
		}
		r = xzr
	case strings.HasSuffix(path, ".gz"):
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, dberrors.NewIO("decompress", path, err)
		}
		defer gzr.Close()
		r = gzr
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxDatasetSize+1))
	if err != nil {
		return nil, dberrors.NewIO("read", path, err)
	}
	if len(data) > MaxDatasetSize {
		return nil, dberrors.NewValidation("dataset", path, "dataset exceeds maximum size")
	}
	return data, nil
}

// WriteJSON writes the index as indented JSON, compressing when path ends in
// .xz. The file is replaced atomically.
func (idx *Index) WriteJSON(path string) error {
	data, err := json.MarshalIndent(idx.Books, "", "  ")
	if err != nil {
		return dberrors.Wrap(err, "encode index")
	}

	if strings.HasSuffix(path, ".xz") {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return dberrors.NewIO("compress", path, err)
		}
		if _, err := w.Write(data); err != nil {
			return dberrors.NewIO("compress", path, err)
		}
		if err := w.Close(); err != nil {
			return dberrors.NewIO("compress", path, err)
		}
		data = buf.Bytes()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return dberrors.NewIO("create directory", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".bible-*")
	if err != nil {
		return dberrors.NewIO("create temp file", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return dberrors.NewIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return dberrors.NewIO("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return dberrors.NewIO("rename", path, err)
	}
	return nil
}
