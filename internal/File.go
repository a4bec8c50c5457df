/*
Copyright 2011-2025 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package internal

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	pathSeparator = string([]byte{os.PathSeparator})
)

// FileData describes one discovered input file: a FASTA/FASTX record batch
// source for the construction pipeline's reader stage.
type FileData struct {
	FullPath string
	Path     string
	Name     string
	Size     int64
}

// NewFileData creates an instance of FileData from a file path and size
func NewFileData(fullPath string, size int64) *FileData {
	this := &FileData{}
	this.FullPath = fullPath
	this.Size = size
	this.Path, this.Name = filepath.Split(fullPath)
	return this
}

// FileCompare is a sort.Interface ordering FileData by full path.
// CreateFileList does not use it: its order is the one os.ReadDir or
// filepath.Walk yields, both of which are lexical by name.
type FileCompare struct {
	data []FileData
}

func NewFileCompare(data []FileData) *FileCompare {
	this := &FileCompare{}
	this.data = data
	return this
}

// Len returns the size of the internal file data buffer
func (this FileCompare) Len() int {
	return len(this.data)
}

// Swap swaps two file data in the internal buffer
func (this FileCompare) Swap(i, j int) {
	this.data[i], this.data[j] = this.data[j], this.data[i]
}

// Less orders files by full path, lexically, so directory ingestion is
// reproducible across runs and hosts.
func (this FileCompare) Less(i, j int) bool {
	return strings.Compare(this.data[i].FullPath, this.data[j].FullPath) < 0
}

// CreateFileList discovers FASTA/FASTX input files under target (a single
// file or a directory, optionally walked recursively), skipping dotfiles
// when requested. Used by the `build` subcommand to turn a directory
// argument into an ordered batch source list.
func CreateFileList(target string, fileList []FileData, isRecursive, ignoreDotFiles bool) ([]FileData, error) {
	fi, err := os.Stat(target)

	if err != nil {
		return fileList, err
	}

	if ignoreDotFiles == true {
		shortName := target

		if len(shortName) > 1 {
			if idx := strings.LastIndex(shortName, pathSeparator); idx > 0 {
				shortName = shortName[idx+1:]
			}

			if shortName[0] == '.' {
				return fileList, nil
			}
		}
	}

	if fi.Mode().IsRegular() {
		fileList = append(fileList, *NewFileData(target, fi.Size()))
		return fileList, nil
	}

	if isRecursive {
		if target[len(target)-1] != os.PathSeparator {
			target = target + pathSeparator
		}

		err = filepath.Walk(target, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if ignoreDotFiles == true {
				shortName := path

				if idx := strings.LastIndex(shortName, pathSeparator); idx > 0 {
					shortName = shortName[idx+1:]
				}

				if len(shortName) > 0 && shortName[0] == '.' {
					return nil
				}
			}

			if fi.Mode().IsRegular() {
				fileList = append(fileList, *NewFileData(path, fi.Size()))
			}

			return err
		})
	} else {
		var files []fs.DirEntry
		files, err = os.ReadDir(target)

		if err == nil {
			for _, de := range files {
				if de.Type().IsRegular() {
					var fi fs.FileInfo

					if fi, err = de.Info(); err != nil {
						break
					}

					if ignoreDotFiles == true {
						shortName := de.Name()

						if len(shortName) > 0 && shortName[0] == '.' {
							continue
						}
					}

					fileList = append(fileList, *NewFileData(target+de.Name(), fi.Size()))
				}
			}
		}
	}

	return fileList, err
}
