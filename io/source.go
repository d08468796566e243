package io

import (
	"context"
	"encoding/json"
	stdio "io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Source opens named assets relative to some root.
type Source interface {
	Open(ctx context.Context, name string) (stdio.ReadCloser, error)
}

// DirSource reads assets from a local directory.
type DirSource struct {
	Root string
}

func (s DirSource) Open(ctx context.Context, name string) (stdio.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.Root, filepath.FromSlash(name)))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open asset %s", name)
	}
	return f, nil
}

// MeshLister is a Source that can enumerate the meshes it holds.
type MeshLister interface {
	ListMeshes(ctx context.Context) ([]string, error)
}

// MeshListPath is where an asset server publishes its mesh list as a JSON
// array of names.
const MeshListPath = "meshes"

// ListMeshes returns the slash-separated, sorted names of every mesh file
// under Root.
func (s DirSource) ListMeshes(ctx context.Context) ([]string, error) {
	meshes := []string{}
	err := fs.WalkDir(os.DirFS(s.Root), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && IsMeshFile(p) {
			meshes = append(meshes, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list meshes in %s", s.Root)
	}
	sort.Strings(meshes)
	return meshes, nil
}

// HTTPSource fetches assets from a static file server such as cmd/assetserver.
type HTTPSource struct {
	Base   *url.URL
	Client *http.Client
}

func NewHTTPSource(base string) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid asset url %s", base)
	}
	return &HTTPSource{Base: u, Client: http.DefaultClient}, nil
}

func (s *HTTPSource) Open(ctx context.Context, name string) (stdio.ReadCloser, error) {
	u := *s.Base
	u.Path = path.Join("/", u.Path, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", name)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch asset %s", name)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Errorf("failed to fetch asset %s: %s", name, resp.Status)
	}
	return resp.Body, nil
}

// ListMeshes fetches the server's mesh list.
func (s *HTTPSource) ListMeshes(ctx context.Context) ([]string, error) {
	r, err := s.Open(ctx, MeshListPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var meshes []string
	if err := json.NewDecoder(r).Decode(&meshes); err != nil {
		return nil, errors.Wrap(err, "failed to decode mesh list")
	}
	return meshes, nil
}

// NewSource picks an HTTPSource for http(s) URLs and a DirSource otherwise.
func NewSource(location string) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location)
	}
	return DirSource{Root: location}, nil
}
