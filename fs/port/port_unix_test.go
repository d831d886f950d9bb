// +build darwin linux

/*
 * port_unix_test.go
 *
 * Copyright 2010-2013 Lei Xu <eddyxu@gmail.com>
 */
/*
 * This file is part of Fuseutils.
 *
 * It is licensed under the Apache License, Version 2.0. The full license
 * text can be found in the License.txt file at the root of this project.
 */

package port

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/billziss-gh/cgofuse/fuse"
)

func TestErrno(t *testing.T) {
	if 0 != Errno(nil) {
		t.Errorf("Errno(nil): %v", Errno(nil))
	}
	if -int(syscall.ENOENT) != Errno(syscall.ENOENT) {
		t.Errorf("Errno(ENOENT): %v", Errno(syscall.ENOENT))
	}
	if -fuse.EIO != Errno(errors.New("no errno here")) {
		t.Errorf("Errno(non-errno): %v", Errno(errors.New("no errno here")))
	}
}

func TestOpenPreadPwrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "port_test")
	if nil != err {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "f")

	errc, fd := Open(path, syscall.O_CREAT|syscall.O_RDWR, 0644)
	if 0 != errc {
		t.Fatalf("Open: errc %v", errc)
	}

	if n := Pwrite(fd, []byte("data"), 0); 4 != n {
		t.Fatalf("Pwrite: n %v", n)
	}
	stat := fuse.Stat_t{}
	if errc = Fstat(fd, &stat); 0 != errc || 4 != stat.Size {
		t.Fatalf("Fstat: errc %v size %v", errc, stat.Size)
	}
	buf := make([]byte, 4)
	if n := Pread(fd, buf, 0); 4 != n || "data" != string(buf) {
		t.Fatalf("Pread: n %v buf %q", n, buf)
	}
	if errc = Close(fd); 0 != errc {
		t.Fatalf("Close: errc %v", errc)
	}

	if errc = Lstat(path, &stat); 0 != errc || 4 != stat.Size {
		t.Errorf("Lstat: errc %v size %v", errc, stat.Size)
	}

	errc, _ = Open(filepath.Join(dir, "nonesuch"), syscall.O_RDONLY, 0)
	if -fuse.ENOENT != errc {
		t.Errorf("Open missing: errc %v", errc)
	}
}

func TestReaddirStream(t *testing.T) {
	dir, err := ioutil.TempDir("", "port_test")
	if nil != err {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	for _, name := range []string{"a", "b"} {
		if err := ioutil.WriteFile(filepath.Join(dir, name), nil, 0644); nil != err {
			t.Fatal(err)
		}
	}

	errc, fd := Opendir(dir)
	if 0 != errc {
		t.Fatalf("Opendir: errc %v", errc)
	}
	defer Closedir(fd)

	enumerate := func() map[string]bool {
		names := map[string]bool{}
		errc := Readdir(fd, func(name string, stat *fuse.Stat_t, ofst int64) bool {
			names[name] = true
			return true
		})
		if 0 != errc {
			t.Fatalf("Readdir: errc %v", errc)
		}
		return names
	}

	names := enumerate()
	if !names["a"] || !names["b"] || names["."] || names[".."] {
		t.Errorf("Readdir: names %v", names)
	}

	if errc = Rewinddir(fd); 0 != errc {
		t.Fatalf("Rewinddir: errc %v", errc)
	}
	names = enumerate()
	if !names["a"] || !names["b"] {
		t.Errorf("Readdir after rewind: names %v", names)
	}
}
