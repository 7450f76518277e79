// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"errors"
	"sort"
	"strings"

	"github.com/Plastique812375255/FUKMKD/internal/restool/interfaces"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files map[string][]byte
	Dirs  map[string]bool
	Error error
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// FileExists はファイルが存在するか確認します
func (fs *MockFileSystem) FileExists(filename string) bool {
	_, exists := fs.Files[filename]
	return exists
}

// ReadFile はファイルを読み込みます
func (fs *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	data, exists := fs.Files[filename]
	if !exists {
		return nil, errors.New("file not found")
	}
	return data, nil
}

// WriteFile はファイルを書き込みます
func (fs *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Files[filename] = data
	return nil
}

// WriteFileAtomic はファイルを書き込みます（モックでは通常書き込みと同じ）
func (fs *MockFileSystem) WriteFileAtomic(filename string, data []byte, perm uint32) error {
	return fs.WriteFile(filename, data, perm)
}

// MkdirAll はディレクトリを作成します
func (fs *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if fs.Error != nil {
		return fs.Error
	}
	fs.Dirs[path] = true
	return nil
}

// Stat はファイル情報を取得します
func (fs *MockFileSystem) Stat(name string) (interfaces.FileInfo, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}
	if data, exists := fs.Files[name]; exists {
		return &mockFileInfo{name: name, size: int64(len(data))}, nil
	}
	if fs.Dirs[name] {
		return &mockFileInfo{name: name, isDir: true}, nil
	}
	return nil, errors.New("file not found")
}

// ReadDir はディレクトリ直下のファイルを列挙します
func (fs *MockFileSystem) ReadDir(dirname string) ([]interfaces.DirEntry, error) {
	if fs.Error != nil {
		return nil, fs.Error
	}

	prefix := strings.TrimSuffix(dirname, "/") + "/"
	var names []string
	for path := range fs.Files {
		if strings.HasPrefix(path, prefix) && !strings.Contains(path[len(prefix):], "/") {
			names = append(names, path[len(prefix):])
		}
	}
	sort.Strings(names)

	entries := make([]interfaces.DirEntry, len(names))
	for i, name := range names {
		entries[i] = &mockDirEntry{name: name}
	}
	return entries, nil
}

// mockFileInfo はテスト用のファイル情報
type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (fi *mockFileInfo) Name() string { return fi.name }
func (fi *mockFileInfo) IsDir() bool  { return fi.isDir }
func (fi *mockFileInfo) Size() int64  { return fi.size }

// mockDirEntry はテスト用のディレクトリエントリ
type mockDirEntry struct {
	name  string
	isDir bool
}

func (de *mockDirEntry) Name() string { return de.name }
func (de *mockDirEntry) IsDir() bool  { return de.isDir }
